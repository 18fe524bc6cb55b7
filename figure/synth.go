// Package figure synthesises exact 2-D drawing coordinates from
// closed-form statistical functions: sampled curves, partitions of the
// real line with per-bin probabilities, and the partition-pullback
// illustration built from them.
package figure

import (
	"fmt"
	"math"

	"github.com/vdobler/chartmeta"
	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// StdNormalPDF is the standard normal density.
func StdNormalPDF(x float64) float64 { return stdNormal.Prob(x) }

// StdNormalCDF is the standard normal cumulative distribution function.
func StdNormalCDF(x float64) float64 { return stdNormal.CDF(x) }

// A Point is one (x, f(x)) sample in data space.
type Point struct {
	X, Y float64
}

// SampleCurve evaluates f at n evenly spaced points across domain,
// including both endpoints. The endpoints are taken exactly from the
// domain, not re-derived from the step width, so adjacent samplings of
// touching domains meet without gaps. n below 2 is raised to 2; n controls
// fidelity only, never correctness.
func SampleCurve(f func(float64) float64, domain chartmeta.Interval, n int) []Point {
	if n < 2 {
		n = 2
	}
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		x := domain.Min + domain.Length()*float64(i)/float64(n-1)
		if i == n-1 {
			x = domain.Max
		}
		pts[i] = Point{X: x, Y: f(x)}
	}
	return pts
}

// HighlightPath returns the closed sub-path bounding f over [lo, hi]:
// down from (lo, 0), along the sampled curve, back down to (hi, 0). The
// first and last curve samples land exactly on lo and hi so the sub-path
// nests inside the full curve without gaps at the interval boundary.
func HighlightPath(f func(float64) float64, lo, hi float64, n int) []Point {
	curve := SampleCurve(f, chartmeta.Interval{Min: lo, Max: hi}, n)
	pts := make([]Point, 0, len(curve)+2)
	pts = append(pts, Point{X: lo, Y: 0})
	pts = append(pts, curve...)
	pts = append(pts, Point{X: hi, Y: 0})
	return pts
}

// ----------------------------------------------------------------------------
// Bins

// A Bin is one element of a partition of the real line: half-open
// [Lower, Upper), except for the two unbounded tail bins.
type Bin struct {
	Lower, Upper         float64
	OpenLower, OpenUpper bool
}

// Probability returns the bin's mass under the distribution given by cdf:
// a CDF difference for inner bins, the one-sided CDF or its complement
// for the tails.
func (b Bin) Probability(cdf func(float64) float64) float64 {
	switch {
	case b.OpenLower:
		return cdf(b.Upper)
	case b.OpenUpper:
		return 1 - cdf(b.Lower)
	default:
		return cdf(b.Upper) - cdf(b.Lower)
	}
}

// Label returns a short display label for the bin; the unbounded tails
// are elided.
func (b Bin) Label() string {
	if b.OpenLower || b.OpenUpper {
		return "…"
	}
	return fmt.Sprintf("X ∈ [%.1f,%.1f)", b.Lower, b.Upper)
}

// Bins builds the partition of the real line with the given inner edges:
// one open bin per tail plus the contiguous half-open bins between
// adjacent edges. len(edges)+1 bins; no edges yields no bins.
func Bins(edges []float64) []Bin {
	if len(edges) == 0 {
		return nil
	}
	bins := make([]Bin, 0, len(edges)+1)
	bins = append(bins, Bin{Upper: edges[0], OpenLower: true})
	for i := 0; i+1 < len(edges); i++ {
		bins = append(bins, Bin{Lower: edges[i], Upper: edges[i+1]})
	}
	bins = append(bins, Bin{Lower: edges[len(edges)-1], OpenUpper: true})
	return bins
}

// PartitionProbs returns one probability per bin of Bins(edges). For a
// proper distribution the values sum to 1 up to floating-point error.
func PartitionProbs(cdf func(float64) float64, edges []float64) []float64 {
	bins := Bins(edges)
	probs := make([]float64, len(bins))
	for i, b := range bins {
		probs[i] = b.Probability(cdf)
	}
	return probs
}

// BinEdges returns the multiples of delta inside [min, max], anchored at
// zero. An empty or inverted range has no edges. Edges are rounded to 10
// decimals so that a nominal boundary like 1.2 compares equal against the
// same literal elsewhere.
func BinEdges(min, max, delta float64) []float64 {
	kmin := int(math.Ceil(min / delta))
	kmax := int(math.Floor(max / delta))
	if kmax < kmin {
		return nil
	}
	edges := make([]float64, 0, kmax-kmin+1)
	for k := kmin; k <= kmax; k++ {
		edges = append(edges, round10(delta*float64(k)))
	}
	return edges
}

func round10(x float64) float64 {
	return math.Round(x*1e10) / 1e10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
