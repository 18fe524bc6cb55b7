// Partitionfig generates the partition-kernel pullback figure as an SVG:
// a standard normal density partitioned into bins, its pullback to a
// uniform density under u = Φ(x), and the distribution of the induced
// coarse variable.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vdobler/chartmeta/figure"
)

func main() {
	out := flag.String("out", "partition_kernel_pullback.svg", "output SVG path")
	flag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out string) error {
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := figure.WritePartition(f, figure.DefaultPartition()); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	return f.Close()
}
