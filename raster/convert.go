// Package raster handles the raster side of the plot corpus: driving the
// external SVG renderer and trimming whitespace from the produced PNGs.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrMissingTree is returned when the directory to convert does not exist.
var ErrMissingTree = errors.New("raster: missing plot directory")

// DefaultConverter is the external renderer; librsvg is fast and produces
// consistent output.
const DefaultConverter = "rsvg-convert"

// A Converter renders SVG files to PNG through an external process.
type Converter struct {
	Cmd   string // renderer binary, DefaultConverter if empty
	Width int    // output PNG width in pixels
}

func (c Converter) cmd() string {
	if c.Cmd == "" {
		return DefaultConverter
	}
	return c.Cmd
}

// Convert renders one SVG to a PNG at the sibling path (same basename)
// and returns the PNG path. A non-zero exit of the renderer is a hard
// failure of this one conversion.
func (c Converter) Convert(svgPath string) (string, error) {
	pngPath := strings.TrimSuffix(svgPath, ".svg") + ".png"
	cmd := exec.Command(c.cmd(), "-w", strconv.Itoa(c.Width), "-o", pngPath, svgPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("raster: convert %s: %v: %s", filepath.Base(svgPath), err, msg)
		}
		return "", fmt.Errorf("raster: convert %s: %v", filepath.Base(svgPath), err)
	}
	return pngPath, nil
}

// A TreeReport sums up one ConvertTree run.
type TreeReport struct {
	Converted, Skipped, Total int
	Errors                    []error
}

// ConvertTree renders every *.svg below root, writing PNGs next to the
// SVGs. Files whose PNG is already newer than the SVG are skipped. A
// failed conversion is recorded and the walk continues; only a missing
// root directory is fatal.
func (c Converter) ConvertTree(root string) (TreeReport, error) {
	var report TreeReport
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return report, fmt.Errorf("%w: %s", ErrMissingTree, root)
	}

	var svgs []string
	err := filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && strings.HasSuffix(path, ".svg") {
			svgs = append(svgs, path)
		}
		return nil
	})
	if err != nil {
		return report, err
	}
	sort.Strings(svgs)

	report.Total = len(svgs)
	for _, svgPath := range svgs {
		if upToDate(svgPath) {
			report.Skipped++
			continue
		}
		if _, err := c.Convert(svgPath); err != nil {
			report.Errors = append(report.Errors, err)
			continue
		}
		report.Converted++
	}
	return report, nil
}

func upToDate(svgPath string) bool {
	pngPath := strings.TrimSuffix(svgPath, ".svg") + ".png"
	pfi, err := os.Stat(pngPath)
	if err != nil {
		return false
	}
	sfi, err := os.Stat(svgPath)
	if err != nil {
		return false
	}
	return !pfi.ModTime().Before(sfi.ModTime())
}
