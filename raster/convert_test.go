package raster

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// stubConverter writes a shell script that touches the -o argument, in
// place of rsvg-convert.
func stubConverter(t *testing.T, exitCode string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub")
	}
	path := filepath.Join(t.TempDir(), "rsvg-stub")
	script := "#!/bin/sh\ntouch \"$4\"\nexit " + exitCode + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertTree(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "uncertainty_map")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"uncertainty_map_step_001.svg", "uncertainty_map_step_002.svg"} {
		if err := os.WriteFile(filepath.Join(sub, name), []byte("<svg/>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// One PNG already newer than its SVG: must be skipped.
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "uncertainty_map_step_002.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := Converter{Cmd: stubConverter(t, "0"), Width: 1600}
	report, err := c.ConvertTree(root)
	if err != nil {
		t.Fatalf("ConvertTree: %v", err)
	}
	if report.Total != 2 || report.Converted != 1 || report.Skipped != 1 {
		t.Errorf("report = %+v, want total 2, converted 1, skipped 1", report)
	}
	if _, err := os.Stat(filepath.Join(sub, "uncertainty_map_step_001.png")); err != nil {
		t.Errorf("PNG not written next to the SVG: %v", err)
	}
}

func TestConvertFailureIsPerFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := Converter{Cmd: stubConverter(t, "3"), Width: 800}
	report, err := c.ConvertTree(root)
	if err != nil {
		t.Fatalf("a failed conversion must not fail the batch: %v", err)
	}
	if len(report.Errors) != 1 || report.Converted != 0 {
		t.Errorf("report = %+v, want 1 error, 0 converted", report)
	}
}

func TestConvertTreeMissingRoot(t *testing.T) {
	c := Converter{Width: 800}
	_, err := c.ConvertTree(filepath.Join(t.TempDir(), "plots"))
	if !errors.Is(err, ErrMissingTree) {
		t.Errorf("err = %v, want ErrMissingTree", err)
	}
}
