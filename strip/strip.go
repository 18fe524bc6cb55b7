// Package strip performs very targeted text edits on generated plot SVGs:
// removing the embedded legend boxes that cover part of the heatmaps, and
// the redundant per-frame NEXT label. The removals are fixed
// pattern/replacement pairs keyed by plot series; nothing else in the
// markup (axes, colorbars, points, heatmap rectangles) is touched.
package strip

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrMissingTree is returned when the directory to edit does not exist.
var ErrMissingTree = errors.New("strip: missing plot directory")

// A Sub is one fixed substitution applied to the whole file text.
// Some generated SVGs place multiple tags on a single long line, so
// substitutions are global over the text, not line-based.
type Sub struct {
	Pattern *regexp.Regexp
	Repl    string
}

func sub(pattern string) Sub {
	return Sub{Pattern: regexp.MustCompile(pattern), Repl: ""}
}

// legendText removes a legend caption, matched by its content to stay
// resilient against attribute changes.
func legendText(content string) Sub {
	return sub(`\s*<text\b[^>]*>\s*` + content + `\s*</text>`)
}

// legendSubs holds the per-series removals. Shapes are matched by their
// exact legend coordinates so data points with the same style survive.
var legendSubs = map[string][]Sub{
	"decision_map": {
		// Legend background panel.
		sub(`\s*<rect x='447\.8' y='80' width='232\.2' height='104\.0' fill='white' fill-opacity='0\.88' stroke='#333' stroke-width='1'\s*/>`),
		// Legend swatches and boundary samples.
		sub(`\s*<rect x='457\.8' y='91\.0' width='10' height='10'[^>]*/>`),
		sub(`\s*<rect x='457\.8' y='105\.0' width='10' height='10'[^>]*/>`),
		sub(`\s*<rect x='457\.8' y='119\.0' width='10' height='10'[^>]*/>`),
		sub(`\s*<rect x='457\.8' y='133\.0' width='10' height='10'[^>]*/>`),
		sub(`\s*<line x1='457\.8' y1='151\.0' x2='475\.8' y2='151\.0'[^>]*/>`),
		sub(`\s*<line x1='457\.8' y1='165\.0' x2='475\.8' y2='165\.0'[^>]*/>`),
		legendText(`True optimal: A`),
		legendText(`True optimal: B`),
		legendText(`Disagree: true A, learned B`),
		legendText(`Disagree: true B, learned A`),
		legendText(`Boundary \(learned\)`),
		legendText(`Boundary \(true\)`),
	},
	"uncertainty_map": {
		sub(`\s*<rect x='305\.8' y='80' width='264\.2' height='90\.0' fill='white' fill-opacity='0\.9' stroke='#333' stroke-width='1'\s*/>`),
		legendText(`Uncertainty = 1 − \|2·P\(A better\) − 1\|`),
		legendText(`sale \(y=1\)`),
		legendText(`no sale \(y=0\)`),
		legendText(`ad A \(z=0\)`),
		legendText(`ad B \(z=1\)`),
		sub(`\s*<circle cx='319\.8' cy='111\.0' r='3'[^>]*/>`),
		sub(`\s*<circle cx='319\.8' cy='125\.0' r='3'[^>]*/>`),
		sub(`\s*<circle cx='319\.8' cy='139\.0' r='3'[^>]*/>`),
		sub(`\s*<rect x='316\.8' y='150\.0' width='6' height='6'[^>]*/>`),
	},
	"expected_info_gain": {
		sub(`\s*<rect x='448\.2' y='80' width='121\.8' height='76\.0' fill='white' fill-opacity='0\.9' stroke='#333' stroke-width='1'\s*/>`),
		legendText(`sale \(y=1\)`),
		legendText(`no sale \(y=0\)`),
		legendText(`ad A \(z=0\)`),
		legendText(`ad B \(z=1\)`),
		sub(`\s*<circle cx='462\.2' cy='97\.0' r='3'[^>]*/>`),
		sub(`\s*<circle cx='462\.2' cy='111\.0' r='3'[^>]*/>`),
		sub(`\s*<circle cx='462\.2' cy='125\.0' r='3'[^>]*/>`),
		sub(`\s*<rect x='459\.2' y='136\.0' width='6' height='6'[^>]*/>`),
	},
}

// Series returns the plot series with legend removal rules, sorted.
func Series() []string {
	names := make([]string, 0, len(legendSubs))
	for name := range legendSubs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Legends applies the series' legend removals to text and reports whether
// anything changed. Unknown series are left untouched.
func Legends(text, series string) (string, bool) {
	out := text
	for _, s := range legendSubs[series] {
		out = s.Pattern.ReplaceAllString(out, s.Repl)
	}
	return out, out != text
}

// nextLabelRe matches a whole line carrying the per-frame NEXT label.
var nextLabelRe = regexp.MustCompile(`^\s*<text\b[^>]*>\s*NEXT:\s*ad\s*[AB]\s*</text>\s*$`)

// NextLabel removes the per-frame "NEXT: ad A/B" text line and reports
// whether anything changed.
func NextLabel(text string) (string, bool) {
	lines := strings.SplitAfter(text, "\n")
	kept := lines[:0]
	changed := false
	for _, line := range lines {
		if nextLabelRe.MatchString(strings.TrimSuffix(line, "\n")) {
			changed = true
			continue
		}
		kept = append(kept, line)
	}
	if !changed {
		return text, false
	}
	return strings.Join(kept, ""), true
}

// A TreeReport sums up one tree rewrite.
type TreeReport struct {
	Touched, Considered int
}

// Edit is a whole-file text transform.
type Edit func(text, series string) (string, bool)

// Tree applies edit to every *.svg below root, rewriting changed files in
// place (whole-file writes, all-or-nothing per file). With seriesOnly set,
// files whose parent directory is not a known series are left alone.
func Tree(root string, edit Edit, seriesOnly bool) (TreeReport, error) {
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

	for _, path := range svgs {
		series := filepath.Base(filepath.Dir(path))
		if _, known := legendSubs[series]; seriesOnly && !known {
			continue
		}
		report.Considered++
		text, err := os.ReadFile(path)
		if err != nil {
			return report, err
		}
		out, changed := edit(string(text), series)
		if !changed {
			continue
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return report, err
		}
		report.Touched++
	}
	return report, nil
}
