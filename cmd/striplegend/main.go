// Striplegend removes the embedded legend boxes from the plot SVGs under
// ./plots/** in place. The plots were generated with legend panels inside
// the viewport which cover part of the heatmap; the demo UI renders the
// legend in HTML below the image instead. With -next the redundant
// per-frame "NEXT: ad A/B" text label is removed as well.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vdobler/chartmeta/strip"
)

func main() {
	root := flag.String("root", ".", "project root")
	next := flag.Bool("next", false, "also strip the per-frame NEXT label")
	flag.Parse()

	if err := run(*root, *next); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(root string, next bool) error {
	plots := filepath.Join(root, "plots")

	report, err := strip.Tree(plots, strip.Legends, true)
	if err != nil {
		return err
	}
	fmt.Printf("Legends stripped: %d / %d considered\n", report.Touched, report.Considered)

	if !next {
		return nil
	}
	report, err = strip.Tree(plots, func(text, _ string) (string, bool) {
		return strip.NextLabel(text)
	}, false)
	if err != nil {
		return err
	}
	fmt.Printf("NEXT labels stripped: %d / %d considered\n", report.Touched, report.Considered)
	return nil
}
