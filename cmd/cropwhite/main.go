// Cropwhite trims the bottom whitespace from series PNGs in place. The
// info-gain and uncertainty plots carry large blank margins below the
// x-axis while the decision map is cropped tighter; trimming only the
// bottom makes the three views the same shape. Full width and top are
// always kept.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vdobler/chartmeta/raster"
)

// Only these series need the trim.
var patterns = []string{
	"plots/expected_info_gain/expected_info_gain_step_*.png",
	"plots/uncertainty_map/uncertainty_map_step_*.png",
}

func main() {
	root := flag.String("root", ".", "project root")
	margin := flag.Int("margin", raster.DefaultMargin, "whitespace kept below the content, in pixels")
	dryRun := flag.Bool("dry-run", false, "analyse only, do not rewrite files")
	flag.Parse()

	if err := run(*root, *margin, *dryRun); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(root string, margin int, dryRun bool) error {
	var paths []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pat))
		if err != nil {
			return err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		fmt.Println("No PNGs to crop.")
		return nil
	}

	cropped := 0
	for _, res := range raster.CropFiles(paths, margin, dryRun) {
		switch {
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
		case res.Cropped:
			cropped++
			fmt.Printf("%s: %d -> %d rows\n", filepath.Base(res.Path), res.OldH, res.NewH)
		}
	}
	verb := "Cropped"
	if dryRun {
		verb = "Would crop"
	}
	fmt.Printf("%s %d of %d PNGs\n", verb, cropped, len(paths))
	return nil
}
