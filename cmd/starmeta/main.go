// Starmeta recovers the per-frame star marker coordinates from a plot
// series and writes them as a JSON mapping keyed by frame index.
//
// The plots contain a star marker drawn as a polygon with the fill color
// reserved for it; axis tick positions and labels give the affine map
// from SVG pixels back to data coordinates.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vdobler/chartmeta"
	"github.com/vdobler/chartmeta/extract"
)

func main() {
	root := flag.String("root", ".", "project root")
	series := flag.String("series", "expected_info_gain",
		"plot series to parse: expected_info_gain, uncertainty_map or decision_map")
	out := flag.String("out", "plots/star_points.json",
		"output JSON path, relative to root unless absolute")
	flag.Parse()

	if err := run(*root, *series, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(root, series, out string) error {
	switch series {
	case "expected_info_gain", "uncertainty_map", "decision_map":
	default:
		return fmt.Errorf("unknown series %q", series)
	}

	dir := filepath.Join(root, "plots", series)
	report, err := extract.Recover(dir, chartmeta.DemoPlan())
	if err != nil {
		return err
	}
	for _, r := range report.Results {
		if r.Skipped() {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", r.File, r.Err)
		}
	}

	if !filepath.IsAbs(out) {
		out = filepath.Join(root, out)
	}
	if err := extract.WriteJSON(out, report.Mapping()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s with %d entries (skipped %d of %d artifacts)\n",
		out, report.Processed(), report.SkippedCount(), len(report.Results))
	return nil
}
