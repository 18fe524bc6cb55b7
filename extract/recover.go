package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/vdobler/chartmeta"
)

// ErrMissingCorpus is returned when the expected artifact directory does
// not exist. There is nothing to do, so the whole run fails.
var ErrMissingCorpus = errors.New("extract: missing artifact directory")

// frameRe extracts the zero-padded step index from an artifact name.
var frameRe = regexp.MustCompile(`_step_(\d{3})\.svg$`)

// FrameIndex parses the step index embedded in an artifact's file name.
func FrameIndex(name string) (int, bool) {
	m := frameRe.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// A Point is the recovered data-space position of one frame's marker.
type Point struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
}

// A Result records the outcome for a single artifact: either a recovered
// point or the reason the artifact was skipped.
type Result struct {
	File  string
	Frame int
	Point Point
	Err   error
}

// Skipped reports whether the artifact was excluded from the output.
func (r Result) Skipped() bool { return r.Err != nil }

// A Report aggregates the per-artifact results of one batch run.
type Report struct {
	Results []Result
}

// Processed returns the number of artifacts with a recovered point.
func (rp *Report) Processed() int { return len(rp.Results) - rp.SkippedCount() }

// SkippedCount returns the number of skipped artifacts.
func (rp *Report) SkippedCount() int {
	n := 0
	for _, r := range rp.Results {
		if r.Skipped() {
			n++
		}
	}
	return n
}

// Mapping returns the recovered points keyed by the decimal string form of
// their frame index, as written to the metadata file.
func (rp *Report) Mapping() map[string]Point {
	m := make(map[string]Point, len(rp.Results))
	for _, r := range rp.Results {
		if r.Skipped() {
			continue
		}
		m[strconv.Itoa(r.Frame)] = r.Point
	}
	return m
}

// Recover processes every artifact of one series directory in sorted name
// order and recovers the marker's data coordinates per frame. A single
// artifact's extraction failure is recorded and skipped, never aborting
// the batch: some frames legitimately lack the marker. Only a missing
// corpus directory is fatal.
func Recover(dir string, plan *chartmeta.Plan) (*Report, error) {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingCorpus, dir)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*_step_*.svg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	report := &Report{}
	seen := make(map[int]string)
	for _, path := range paths {
		name := filepath.Base(path)
		frame, ok := FrameIndex(name)
		if !ok {
			continue // not an artifact of this naming scheme
		}
		res := Result{File: name, Frame: frame}
		if prev, dup := seen[frame]; dup {
			res.Err = fmt.Errorf("duplicate frame index %d: %s collides with %s", frame, name, prev)
			report.Results = append(report.Results, res)
			continue
		}
		seen[frame] = name

		text, err := os.ReadFile(path)
		if err != nil {
			res.Err = err
			report.Results = append(report.Results, res)
			continue
		}
		pt, err := RecoverFrame(string(text), plan)
		if err != nil {
			res.Err = err
		} else {
			res.Point = pt
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// WriteJSON writes v as 2-space-indented JSON with sorted keys and a
// trailing newline. Writing the same mapping twice produces byte-identical
// output, keeping diffs of the exported metadata stable.
func WriteJSON(path string, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf, 0o644)
}
