// Nextad extracts the per-step NEXT recommended choice (A/B) from the
// plot SVGs and writes a small JSON mapping frame index -> letter.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vdobler/chartmeta/extract"
)

func main() {
	root := flag.String("root", ".", "project root")
	pattern := flag.String("glob", "plots/expected_info_gain/expected_info_gain_step_*.svg",
		"which SVGs to parse")
	out := flag.String("out", "plots/next_choice.json",
		"output JSON path, relative to root unless absolute")
	flag.Parse()

	if err := run(*root, *pattern, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(root, pattern, out string) error {
	mapping, err := extract.NextChoices(root, pattern)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(root, out)
	}
	if err := extract.WriteJSON(out, mapping); err != nil {
		return err
	}
	fmt.Printf("Wrote %s with %d steps\n", out, len(mapping))
	return nil
}
