package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vdobler/chartmeta"
)

func writeCorpus(t *testing.T, dir string, names []string, frames []frame) {
	t.Helper()
	for i, name := range names {
		err := os.WriteFile(filepath.Join(dir, name), []byte(frames[i].markup()), 0o644)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func shiftedFrame(i int) frame {
	f := testFrame()
	// Move the marker a bit per frame so recovered points differ.
	f.polygon = fmt.Sprintf("%d,240 %d,240 %d,270", 290+10*i, 310+10*i, 300+10*i)
	return f
}

func TestRecoverBatchResilience(t *testing.T) {
	dir := t.TempDir()
	names := make([]string, 5)
	frames := make([]frame, 5)
	for i := range names {
		names[i] = fmt.Sprintf("uncertainty_map_step_%03d.svg", i)
		frames[i] = shiftedFrame(i)
	}
	// One artifact lacks any tick marks or labels: it is skipped, the
	// batch still succeeds.
	frames[2] = frame{polygon: "290,240 310,240 300,270"}
	writeCorpus(t, dir, names, frames)

	// A file that does not follow the naming scheme is ignored entirely.
	if err := os.WriteFile(filepath.Join(dir, "uncertainty_map_step_xx.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Recover(dir, chartmeta.DemoPlan())
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if got := report.Processed(); got != 4 {
		t.Errorf("processed = %d, want 4", got)
	}
	if got := report.SkippedCount(); got != 1 {
		t.Errorf("skipped = %d, want 1", got)
	}
	m := report.Mapping()
	if len(m) != 4 {
		t.Fatalf("mapping has %d entries, want 4", len(m))
	}
	if _, ok := m["2"]; ok {
		t.Error("skipped frame 2 must not appear in the mapping")
	}
	if _, ok := m["3"]; !ok {
		t.Error(`mapping is keyed by the decimal frame index, missing "3"`)
	}
}

func TestRecoverDuplicateFrameIndex(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir,
		[]string{"a_step_001.svg", "b_step_001.svg"},
		[]frame{shiftedFrame(0), shiftedFrame(5)})

	report, err := Recover(dir, chartmeta.DemoPlan())
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	// The collision is flagged as a skip, never silently overwritten.
	if got := report.Processed(); got != 1 {
		t.Errorf("processed = %d, want 1", got)
	}
	if got := report.SkippedCount(); got != 1 {
		t.Errorf("skipped = %d, want 1", got)
	}
	want := shiftedPoint(t, 0)
	if got := report.Mapping()["1"]; !equal64(got.X1, want.X1) {
		t.Errorf("first occurrence must win: got %+v, want %+v", got, want)
	}
}

func shiftedPoint(t *testing.T, i int) Point {
	t.Helper()
	pt, err := RecoverFrame(shiftedFrame(i).markup(), chartmeta.DemoPlan())
	if err != nil {
		t.Fatal(err)
	}
	return pt
}

func TestRecoverMissingCorpus(t *testing.T) {
	_, err := Recover(filepath.Join(t.TempDir(), "no-such-dir"), chartmeta.DemoPlan())
	if err == nil {
		t.Fatal("Recover on a missing directory must fail")
	}
}

func TestWriteJSONStable(t *testing.T) {
	dir := t.TempDir()
	mapping := map[string]Point{
		"10": {X1: 0.25, X2: -1.5},
		"2":  {X1: 1, X2: 0},
		"7":  {X1: -0.125, X2: 0.5},
	}

	p1 := filepath.Join(dir, "a.json")
	p2 := filepath.Join(dir, "b.json")
	if err := WriteJSON(p1, mapping); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(p2, mapping); err != nil {
		t.Fatal(err)
	}
	b1, _ := os.ReadFile(p1)
	b2, _ := os.ReadFile(p2)
	if string(b1) != string(b2) {
		t.Error("repeated writes of the same mapping differ")
	}
	if len(b1) == 0 || b1[len(b1)-1] != '\n' {
		t.Error("output must end in a newline")
	}
	// Keys sort as strings: "10" before "2".
	want := "{\n  \"10\": {\n    \"x1\": 0.25,\n    \"x2\": -1.5\n  },\n  \"2\": {\n    \"x1\": 1,\n    \"x2\": 0\n  },\n  \"7\": {\n    \"x1\": -0.125,\n    \"x2\": 0.5\n  }\n}\n"
	if string(b1) != want {
		t.Errorf("unexpected JSON:\n%s\nwant:\n%s", b1, want)
	}
}

func TestNextChoices(t *testing.T) {
	dir := t.TempDir()
	mk := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mk("expected_info_gain_step_001.svg", "<svg><text x='10' y='20'>NEXT: ad A</text></svg>")
	mk("expected_info_gain_step_002.svg", "<svg><text x='10' y='20'>NEXT: ad B</text></svg>")
	mk("expected_info_gain_step_003.svg", "<svg></svg>") // control frame, no label

	m, err := NextChoices(dir, "expected_info_gain_step_*.svg")
	if err != nil {
		t.Fatalf("NextChoices: %v", err)
	}
	if len(m) != 2 || m["1"] != "A" || m["2"] != "B" {
		t.Errorf("mapping = %v, want 1:A 2:B", m)
	}
}
