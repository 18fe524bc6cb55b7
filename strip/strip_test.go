package strip

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const infoGainFrame = `<svg xmlns='http://www.w3.org/2000/svg'>
<rect x='70' y='80' width='500' height='380' fill='#fafafa' />
<polygon points='290,240 310,240 300,270' fill='#ffd92f' /><rect x='448.2' y='80' width='121.8' height='76.0' fill='white' fill-opacity='0.9' stroke='#333' stroke-width='1' />
<circle cx='462.2' cy='97.0' r='3' fill='#2a6' />
<circle cx='120.0' cy='97.0' r='3' fill='#2a6' />
<text x='472.2' y='100.0' font-size='10'>sale (y=1)</text>
<text x='100' y='30' font-size='12'>NEXT: ad B</text>
</svg>
`

func TestLegends(t *testing.T) {
	out, changed := Legends(infoGainFrame, "expected_info_gain")
	if !changed {
		t.Fatal("legend removal reported no change")
	}
	for _, gone := range []string{
		"x='448.2'",     // legend background panel
		"cx='462.2'",    // legend swatch
		"sale (y=1)",    // legend caption
	} {
		if strings.Contains(out, gone) {
			t.Errorf("legend element %q survived", gone)
		}
	}
	// Data elements stay: the marker polygon and the data point circle
	// at a different coordinate.
	for _, keep := range []string{"polygon points=", "cx='120.0'", "NEXT: ad B"} {
		if !strings.Contains(out, keep) {
			t.Errorf("non-legend element %q was removed", keep)
		}
	}
}

func TestLegendsUnknownSeries(t *testing.T) {
	out, changed := Legends(infoGainFrame, "colorbar")
	if changed || out != infoGainFrame {
		t.Error("unknown series must not be edited")
	}
}

func TestNextLabel(t *testing.T) {
	out, changed := NextLabel(infoGainFrame)
	if !changed {
		t.Fatal("NEXT label not removed")
	}
	if strings.Contains(out, "NEXT:") {
		t.Error("NEXT label survived")
	}
	if !strings.Contains(out, "polygon points=") {
		t.Error("marker polygon was removed")
	}

	if _, changed := NextLabel("<svg></svg>\n"); changed {
		t.Error("change reported for markup without the label")
	}
}

func TestTree(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "expected_info_gain")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	touched := write("expected_info_gain_step_001.svg", infoGainFrame)
	write("expected_info_gain_step_002.svg", "<svg></svg>\n") // nothing to strip

	// A file outside any known series directory is not considered.
	if err := os.WriteFile(filepath.Join(root, "overview.svg"), []byte(infoGainFrame), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Tree(root, Legends, true)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if report.Considered != 2 || report.Touched != 1 {
		t.Errorf("report = %+v, want considered 2, touched 1", report)
	}
	text, err := os.ReadFile(touched)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(text), "x='448.2'") {
		t.Error("file not rewritten in place")
	}

	// The NEXT label pass covers every SVG, series or not.
	report, err = Tree(root, func(text, _ string) (string, bool) { return NextLabel(text) }, false)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if report.Considered != 3 {
		t.Errorf("considered = %d, want 3", report.Considered)
	}
}

func TestSeries(t *testing.T) {
	got := Series()
	want := []string{"decision_map", "expected_info_gain", "uncertainty_map"}
	if len(got) != len(want) {
		t.Fatalf("Series() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Series() = %v, want %v", got, want)
		}
	}
}
