// Package extract recovers data-space coordinates from rendered chart
// markup. The artifacts are self-generated SVGs with fixed formatting, so
// markup is treated as text matched by narrow patterns derived from the
// figure family's layout plan, not parsed as a document tree.
package extract

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vdobler/chartmeta"
)

var (
	// ErrInsufficientTicks is returned when fewer than two labeled ticks
	// are found on an axis. Two points are needed to fit the affine map.
	ErrInsufficientTicks = errors.New("extract: not enough axis ticks")

	// ErrMarkerNotFound is returned when no shape with the marker's fill
	// signature exists in the markup.
	ErrMarkerNotFound = errors.New("extract: marker polygon not found")

	// ErrEmptyVertexList is returned when the marker shape carries no
	// usable vertices.
	ErrEmptyVertexList = errors.New("extract: marker has no usable vertices")
)

// Axis selects the horizontal or vertical axis of an artifact.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// A TickPoint correlates one pixel coordinate along an axis with the
// data-space value printed on its tick label.
type TickPoint struct {
	Pixel, Value float64
}

// markPairTol is the maximum pixel distance between a tick mark and a tick
// label that still counts as the same tick.
const markPairTol = 0.5

// tickPatterns builds the mark and label patterns of one axis from the
// plan's tick geometry. Pixel offsets are formatted exactly as the
// producer writes them, so the geometry constants drive both sides.
func tickPatterns(g chartmeta.TickGeom, axis Axis) (mark, label *regexp.Regexp) {
	q := func(v float64) string {
		return regexp.QuoteMeta(strconv.FormatFloat(v, 'f', -1, 64))
	}
	const px = `(-?[0-9.]+)`
	switch axis {
	case AxisX:
		// Go's regexp has no backreferences; x1 and x2 are captured
		// separately and compared by the caller.
		mark = regexp.MustCompile(`<line\s+x1='` + px + `'\s+y1='` + q(g.XMarkY0) +
			`'\s+x2='` + px + `'\s+y2='` + q(g.XMarkY1) + `'`)
		label = regexp.MustCompile(`<text\s+x='` + px + `'\s+y='` + q(g.XLabelY) +
			`'[^>]*>` + px + `</text>`)
	default:
		mark = regexp.MustCompile(`<line\s+x1='` + q(g.YMarkX0) + `'\s+y1='` + px +
			`'\s+x2='` + q(g.YMarkX1) + `'\s+y2='` + px + `'`)
		label = regexp.MustCompile(`<text\s+x='` + q(g.YLabelX) + `'\s+y='` + px +
			`'[^>]*>` + px + `</text>`)
	}
	return mark, label
}

// Ticks scans markup for the labeled ticks of one axis and returns them
// sorted by pixel coordinate. Tick labels are the source of truth; when
// the markup still contains tick marks the labels are paired against them
// and unpaired labels dropped (artifacts may have had their marks
// stripped, in which case labels alone are accepted).
func Ticks(markup string, axis Axis, plan *chartmeta.Plan) ([]TickPoint, error) {
	markRe, labelRe := tickPatterns(plan.Ticks, axis)

	var marks []float64
	for _, m := range markRe.FindAllStringSubmatch(markup, -1) {
		// Both segment endpoints must share the tick's pixel coordinate.
		if m[1] != m[2] {
			continue
		}
		px, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		marks = append(marks, px)
	}

	var ticks []TickPoint
	for _, m := range labelRe.FindAllStringSubmatch(markup, -1) {
		px, err1 := strconv.ParseFloat(m[1], 64)
		val, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if len(marks) > 0 && !nearAny(px, marks) {
			continue
		}
		ticks = append(ticks, TickPoint{Pixel: px, Value: val})
	}

	if len(ticks) < 2 {
		return nil, fmt.Errorf("%w: %d labeled ticks on %s axis", ErrInsufficientTicks, len(ticks), axis)
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Pixel < ticks[j].Pixel })
	return ticks, nil
}

func nearAny(px float64, marks []float64) bool {
	for _, m := range marks {
		if math.Abs(px-m) <= markPairTol {
			return true
		}
	}
	return false
}

// FitAxis fits the pixel-to-value affine map from the two extremal ticks.
// The producer places ticks on an exact linear grid, so the extremal pair
// minimises rounding error from closely spaced intermediate ticks.
func FitAxis(ticks []TickPoint) (chartmeta.Affine1D, error) {
	if len(ticks) < 2 {
		return chartmeta.Affine1D{}, fmt.Errorf("%w: %d ticks", ErrInsufficientTicks, len(ticks))
	}
	lo, hi := ticks[0], ticks[len(ticks)-1]
	return chartmeta.FitAffine(lo.Pixel, lo.Value, hi.Pixel, hi.Value)
}

// A Marker is the pixel-space centroid of the uniquely styled marker shape.
type Marker struct {
	X, Y float64
}

// FindMarker locates the first polygon whose fill attribute equals the
// given signature exactly and returns the centroid of its vertex list.
// The centroid (not the bounding-box center) is robust to asymmetric
// marker shapes.
func FindMarker(markup, fill string) (Marker, error) {
	re := regexp.MustCompile(`(?i)<polygon\s+points='([^']+)'[^>]*\sfill='` +
		regexp.QuoteMeta(fill) + `'[^>]*/>`)
	m := re.FindStringSubmatch(markup)
	if m == nil {
		return Marker{}, fmt.Errorf("%w: fill %s", ErrMarkerNotFound, fill)
	}

	var sx, sy float64
	n := 0
	// The points attribute may contain newlines and repeated spaces;
	// malformed tokens are skipped, not fatal.
	for _, token := range strings.Fields(m[1]) {
		xs, ys, ok := cut(token, ",")
		if !ok {
			continue
		}
		x, err1 := strconv.ParseFloat(xs, 64)
		y, err2 := strconv.ParseFloat(ys, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		sx += x
		sy += y
		n++
	}
	if n == 0 {
		return Marker{}, ErrEmptyVertexList
	}
	return Marker{X: sx / float64(n), Y: sy / float64(n)}, nil
}

func cut(s, sep string) (before, after string, found bool) {
	i := strings.Index(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// RecoverFrame recovers the marker's data-space coordinates from one
// artifact's markup: both axis maps are fitted independently from the
// labeled ticks and applied to the marker centroid.
func RecoverFrame(markup string, plan *chartmeta.Plan) (Point, error) {
	xticks, err := Ticks(markup, AxisX, plan)
	if err != nil {
		return Point{}, err
	}
	yticks, err := Ticks(markup, AxisY, plan)
	if err != nil {
		return Point{}, err
	}
	xmap, err := FitAxis(xticks)
	if err != nil {
		return Point{}, err
	}
	// The SVG y axis increases downward; the fitted map reflects that
	// naturally through a negative slope.
	ymap, err := FitAxis(yticks)
	if err != nil {
		return Point{}, err
	}
	marker, err := FindMarker(markup, plan.MarkerFill)
	if err != nil {
		return Point{}, err
	}
	return Point{X1: xmap.Apply(marker.X), X2: ymap.Apply(marker.Y)}, nil
}
