// Svg2png converts the plot SVGs under ./plots/** to PNGs for faster
// flipping in the demo UI. PNGs are written next to the SVGs; files that
// are already up to date are skipped.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vdobler/chartmeta/raster"
)

func main() {
	root := flag.String("root", ".", "project root")
	width := flag.Int("width", 1600, "output PNG width in pixels")
	rsvg := flag.String("rsvg", raster.DefaultConverter, "path to rsvg-convert")
	flag.Parse()

	if err := run(*root, *width, *rsvg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(root string, width int, rsvg string) error {
	c := raster.Converter{Cmd: rsvg, Width: width}
	report, err := c.ConvertTree(filepath.Join(root, "plots"))
	if err != nil {
		return err
	}
	for _, convErr := range report.Errors {
		fmt.Fprintln(os.Stderr, convErr)
	}
	if report.Total == 0 {
		fmt.Println("No SVGs found under plots/.")
		return nil
	}
	fmt.Printf("Converted: %d  Skipped: %d  Failed: %d  Total SVGs: %d\n",
		report.Converted, report.Skipped, len(report.Errors), report.Total)
	return nil
}
