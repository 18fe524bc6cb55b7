package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// nextRe matches the per-frame recommendation label embedded in a plot,
// e.g. <text ...>NEXT: ad A</text>.
var nextRe = regexp.MustCompile(`>\s*NEXT:\s*ad\s*([AB])\s*<`)

// NextChoices scans the artifacts matched by pattern (relative to dir) for
// the per-step recommended choice letter and returns a mapping keyed by
// the frame index's string form. Frames without the label are left out.
func NextChoices(dir, pattern string) (map[string]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", ErrMissingCorpus, filepath.Join(dir, pattern))
	}
	sort.Strings(paths)

	mapping := make(map[string]string)
	for _, path := range paths {
		frame, ok := FrameIndex(filepath.Base(path))
		if !ok {
			continue
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		m := nextRe.FindSubmatch(text)
		if m == nil {
			continue
		}
		mapping[strconv.Itoa(frame)] = string(m[1])
	}
	return mapping, nil
}
