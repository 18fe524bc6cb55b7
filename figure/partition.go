package figure

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/vdobler/chartmeta"
	"gonum.org/v1/plot"
)

// Fixed layout of the partition-pullback figure. The bar panel minimum is
// an empirical threshold tuned to this figure family.
const (
	canvasW = 980.0
	canvasH = 680.0

	marginLeft   = 64.0
	marginRight  = 40.0
	marginTop    = 42.0
	marginBottom = 80.0
	panelGap     = 78.0
	topPanelH    = 264.0
	middleGap    = 120.0

	MinBarPanelHeight = 160.0

	// Fixed vertical scales of the three panels.
	MaxGaussPDF   = 0.42
	MaxUniformPDF = 1.2
	MaxBarProb    = 0.18

	curveSamples     = 241
	highlightSamples = 81
	barGap           = 4.0
)

// Figure colors, also referenced by the stable CSS class signatures below.
const (
	inkColor    = "#1f2a37"
	mutedColor  = "#5b6673"
	accentColor = "#8b3a3a"
)

// PartitionConfig parameterises the partition-pullback figure. All values
// are in standard deviation units.
type PartitionConfig struct {
	XRange       chartmeta.Interval // domain of the gaussian panel
	UniformRange chartmeta.Interval // wider edge range for the uniform panel
	Delta        float64            // bin width
	Highlight    chartmeta.Interval // the highlighted bin; endpoints must be bin edges
}

// DefaultPartition returns the configuration of the published figure: bins
// of width 0.4 anchored at the mean, one highlighted bin on the right tail.
func DefaultPartition() PartitionConfig {
	return PartitionConfig{
		XRange:       chartmeta.Interval{Min: -3, Max: 3},
		UniformRange: chartmeta.Interval{Min: -6, Max: 6},
		Delta:        0.4,
		Highlight:    chartmeta.Interval{Min: 1.2, Max: 1.6},
	}
}

// PartitionPlan computes the figure's layout plan: the gaussian x-space
// panel, the uniform u-space panel next to it and the coarse-variable bar
// panel below. It fails with ErrLayout before any drawing when the fixed
// margins leave a degenerate panel.
func PartitionPlan(cfg PartitionConfig) (*chartmeta.Plan, error) {
	plotW := (canvasW - marginLeft - marginRight - panelGap) / 2
	barH := canvasH - marginTop - marginBottom - topPanelH - middleGap
	if barH < MinBarPanelHeight {
		return nil, fmt.Errorf("%w: bar panel height %g below %g", chartmeta.ErrLayout, barH, MinBarPanelHeight)
	}
	yBar := marginTop + topPanelH + middleGap

	var gaussTicks []plot.Tick
	for t := math.Ceil(cfg.XRange.Min); t <= cfg.XRange.Max; t++ {
		gaussTicks = append(gaussTicks, plot.Tick{Value: t, Label: strconv.Itoa(int(t))})
	}

	pl := &chartmeta.Plan{
		Width:  canvasW,
		Height: canvasH,
		Panels: []*chartmeta.Panel{
			{
				Name:   "gauss",
				Rect:   chartmeta.Rect{X: marginLeft, Y: marginTop, W: plotW, H: topPanelH},
				X:      cfg.XRange,
				Y:      chartmeta.Interval{Min: 0, Max: MaxGaussPDF},
				XTicks: gaussTicks,
				YTicks: []plot.Tick{{Value: 0.2, Label: "0.2"}, {Value: 0.4, Label: "0.4"}},
			},
			{
				Name: "uniform",
				Rect: chartmeta.Rect{X: marginLeft + plotW + panelGap, Y: marginTop, W: plotW, H: topPanelH},
				X:    chartmeta.Interval{Min: 0, Max: 1},
				Y:    chartmeta.Interval{Min: 0, Max: MaxUniformPDF},
				XTicks: []plot.Tick{
					{Value: 0, Label: "0"}, {Value: 0.5, Label: "0.5"}, {Value: 1, Label: "1"},
				},
				YTicks: []plot.Tick{{Value: 1, Label: "1"}},
			},
			{
				Name: "bars",
				Rect: chartmeta.Rect{X: marginLeft, Y: yBar, W: canvasW - marginLeft - marginRight, H: barH},
				X:    chartmeta.Interval{Min: 0, Max: 1}, // bar positions are laid out discretely
				Y:    chartmeta.Interval{Min: 0, Max: MaxBarProb},
				YTicks: []plot.Tick{
					{Value: 0.05, Label: "0.05"}, {Value: 0.1, Label: "0.10"}, {Value: 0.15, Label: "0.15"},
				},
			},
		},
	}
	if err := pl.Validate(); err != nil {
		return nil, err
	}
	return pl, nil
}

func partitionCSS() string {
	return fmt.Sprintf(`text { font-family: 'Crimson Pro', 'Times New Roman', serif; fill: %[2]s; }
.label { font-size: 13px; }
.small { font-size: 12px; }
.axis { stroke: %[1]s; stroke-opacity: 0.35; stroke-width: 1.2; }
.grid { stroke: %[1]s; stroke-opacity: 0.12; stroke-width: 1; }
.curve { stroke: %[1]s; stroke-width: 2.2; fill: none; }
.bin { stroke: %[3]s; stroke-opacity: 0.35; stroke-width: 1.6; }
.bin-strong { stroke: %[3]s; stroke-opacity: 0.75; stroke-width: 2.1; }
.fill { fill: %[3]s; fill-opacity: 0.32; stroke: none; }
.bar { fill: none; stroke: %[3]s; stroke-opacity: 0.65; stroke-width: 1.2; }
.bar-highlight { fill: %[3]s; fill-opacity: 0.32; stroke: %[3]s; stroke-opacity: 0.85; stroke-width: 1.4; }`,
		inkColor, mutedColor, accentColor)
}

// pathD renders data-space points through the panel transforms into an
// SVG path description.
func pathD(p *chartmeta.Panel, pts []Point) string {
	var b strings.Builder
	for i, pt := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s %.2f,%.2f ", cmd, p.PixelX(pt.X), p.PixelY(pt.Y))
	}
	return strings.TrimRight(b.String(), " ")
}

func isEdge(x, edge float64) bool {
	return math.Abs(x-edge) < 1e-9
}

// WritePartition writes the partition-pullback figure as SVG: a standard
// normal pdf partitioned into bins of width Delta, its pullback u = Φ(x)
// to a uniform density, and the distribution of the induced coarse
// variable as bars. One bin is highlighted across all three panels.
func WritePartition(w io.Writer, cfg PartitionConfig) error {
	plan, err := PartitionPlan(cfg)
	if err != nil {
		return err
	}
	gauss := plan.Panel("gauss")
	unif := plan.Panel("uniform")
	bars := plan.Panel("bars")

	edges := BinEdges(cfg.XRange.Min, cfg.XRange.Max, cfg.Delta)
	// The uniform panel shows edges further into the tails; they crowd
	// towards u=0 and u=1 under the pullback.
	edgesWide := BinEdges(cfg.UniformRange.Min, cfg.UniformRange.Max, cfg.Delta)

	hl := cfg.Highlight
	if !containsEdge(edges, hl.Min) || !containsEdge(edges, hl.Max) {
		return fmt.Errorf("figure: highlight %v does not coincide with bin boundaries", hl)
	}
	uLo, uHi := StdNormalCDF(hl.Min), StdNormalCDF(hl.Max)

	bins := Bins(edges)
	probs := PartitionProbs(StdNormalCDF, edges)

	canvas := svg.New(w)
	canvas.Decimals = 2
	canvas.Start(canvasW, canvasH)
	canvas.Title("Partition kernel on a Gaussian and its pullback to a uniform")
	canvas.Style("text/css", partitionCSS())
	canvas.Rect(0, 0, canvasW, canvasH, `fill="#ffffff"`)

	// Panel titles.
	canvas.Text(gauss.Rect.X, gauss.Rect.Y-18, "Gaussian pdf (x-space)",
		`class="label" fill="`+inkColor+`"`)
	canvas.Text(unif.Rect.X, unif.Rect.Y-18, "Uniform pdf (u-space)",
		`class="label" fill="`+inkColor+`"`)

	// Arrow between the panels, labeled with the pullback map.
	canvas.Def()
	canvas.Marker("arrowhead", 8, 3.5, 10, 7, `orient="auto"`)
	canvas.Polygon([]float64{0, 10, 0}, []float64{0, 3.5, 7}, `fill="`+mutedColor+`"`)
	canvas.MarkerEnd()
	canvas.DefEnd()
	arrowY := marginTop - 22
	arrowX1 := gauss.Rect.X + gauss.Rect.W + 12
	arrowX2 := unif.Rect.X - 12
	canvas.Line(arrowX1, arrowY, arrowX2, arrowY,
		`stroke="`+mutedColor+`" stroke-width="1.4" marker-end="url(#arrowhead)" opacity="0.7"`)
	canvas.Text((arrowX1+arrowX2)/2-28, arrowY-6, "u = Φ(x)", `class="small"`)

	// Panel frames and axes.
	for _, p := range []*chartmeta.Panel{gauss, unif} {
		canvas.Rect(p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H,
			`fill="none" stroke="#000000" stroke-opacity="0.05"`)
		bottom := p.Rect.Y + p.Rect.H
		canvas.Line(p.Rect.X, bottom, p.Rect.X+p.Rect.W, bottom, `class="axis"`)
		canvas.Line(p.Rect.X, p.Rect.Y, p.Rect.X, bottom, `class="axis"`)
	}

	// Horizontal grid lines and their value labels.
	for _, tk := range gauss.TicksY() {
		y := gauss.PixelY(tk.Value)
		canvas.Line(gauss.Rect.X, y, gauss.Rect.X+gauss.Rect.W, y, `class="grid"`)
		canvas.Text(gauss.Rect.X-28, y+4, tk.Label, `class="small"`)
	}
	canvas.Text(gauss.Rect.X-18, gauss.PixelY(0)+4, "0", `class="small"`)
	for _, tk := range unif.TicksY() {
		y := unif.PixelY(tk.Value)
		canvas.Line(unif.Rect.X, y, unif.Rect.X+unif.Rect.W, y, `class="grid"`)
		canvas.Text(unif.Rect.X-18, y+4, tk.Label, `class="small"`)
	}
	canvas.Text(unif.Rect.X-18, unif.PixelY(0)+4, "0", `class="small"`)

	// X ticks.
	for _, tk := range gauss.TicksX() {
		x := gauss.PixelX(tk.Value)
		bottom := gauss.Rect.Y + gauss.Rect.H
		canvas.Line(x, bottom, x, bottom+6, `class="axis"`)
		canvas.Text(x-6, bottom+24, tk.Label, `class="small"`)
	}
	canvas.Text(gauss.Rect.X+gauss.Rect.W/2-54, gauss.Rect.Y+gauss.Rect.H+44,
		"x (σ units)", `class="small"`)
	for _, tk := range unif.TicksX() {
		x := unif.PixelX(tk.Value)
		bottom := unif.Rect.Y + unif.Rect.H
		canvas.Line(x, bottom, x, bottom+6, `class="axis"`)
		canvas.Text(x-7, bottom+24, tk.Label, `class="small"`)
	}
	canvas.Text(unif.Rect.X+unif.Rect.W/2-8, unif.Rect.Y+unif.Rect.H+44, "u", `class="small"`)

	// Highlighted bin: filled sub-path under the gaussian, filled band in
	// the uniform panel.
	canvas.Path(pathD(gauss, HighlightPath(StdNormalPDF, hl.Min, hl.Max, highlightSamples))+" Z",
		`class="fill"`)
	canvas.Rect(unif.PixelX(uLo), unif.PixelY(1),
		unif.PixelX(uHi)-unif.PixelX(uLo), unif.PixelY(0)-unif.PixelY(1), `class="fill"`)

	// Bin boundary lines.
	for _, x := range edges {
		class := `class="bin"`
		if isEdge(x, hl.Min) || isEdge(x, hl.Max) {
			class = `class="bin-strong"`
		}
		canvas.Line(gauss.PixelX(x), gauss.PixelY(0), gauss.PixelX(x), gauss.PixelY(StdNormalPDF(x)), class)
	}
	for _, x := range edgesWide {
		u := StdNormalCDF(x)
		class := `class="bin"`
		if math.Abs(u-uLo) < 1e-12 || math.Abs(u-uHi) < 1e-12 {
			class = `class="bin-strong"`
		}
		canvas.Line(unif.PixelX(u), unif.PixelY(0), unif.PixelX(u), unif.PixelY(1), class)
	}

	// The densities themselves.
	canvas.Path(pathD(gauss, SampleCurve(StdNormalPDF, cfg.XRange, curveSamples)), `class="curve"`)
	canvas.Line(unif.PixelX(0), unif.PixelY(1), unif.PixelX(1), unif.PixelY(1), `class="curve"`)

	// Bottom panel: distribution of the coarse variable Y.
	canvas.Text(bars.Rect.X, bars.Rect.Y-18, "Distribution of the coarse variable Y",
		`class="label" fill="`+inkColor+`"`)
	canvas.Rect(bars.Rect.X, bars.Rect.Y, bars.Rect.W, bars.Rect.H,
		`fill="none" stroke="#000000" stroke-opacity="0.05"`)
	barBottom := bars.Rect.Y + bars.Rect.H
	canvas.Line(bars.Rect.X, barBottom, bars.Rect.X+bars.Rect.W, barBottom, `class="axis"`)
	canvas.Line(bars.Rect.X, bars.Rect.Y, bars.Rect.X, barBottom, `class="axis"`)

	for _, tk := range bars.TicksY() {
		y := bars.PixelY(tk.Value)
		canvas.Line(bars.Rect.X, y, bars.Rect.X+bars.Rect.W, y, `class="grid"`)
		canvas.Text(bars.Rect.X-38, y+4, tk.Label, `class="small"`)
	}
	canvas.Text(bars.Rect.X-18, bars.PixelY(0)+4, "0", `class="small"`)
	canvas.Text(bars.Rect.X-48, bars.Rect.Y+14, "P(Y)", `class="small"`)

	nBars := float64(len(bins))
	perBar := (bars.Rect.W - barGap*(nBars-1)) / nBars
	for i, b := range bins {
		xLeft := bars.Rect.X + float64(i)*(perBar+barGap)
		yTop := bars.PixelY(clamp(probs[i], 0, MaxBarProb))
		class := `class="bar"`
		if !b.OpenLower && !b.OpenUpper && isEdge(b.Lower, hl.Min) && isEdge(b.Upper, hl.Max) {
			class = `class="bar-highlight"`
		}
		canvas.Rect(xLeft, yTop, perBar, barBottom-yTop, class)

		labelX := xLeft + perBar/2
		labelY := barBottom + 20
		canvas.Gtransform(fmt.Sprintf("rotate(-55 %.2f,%.2f)", labelX, labelY))
		canvas.Text(labelX, labelY, b.Label(), `class="small" text-anchor="end"`)
		canvas.Gend()
	}

	canvas.End()
	return nil
}

func containsEdge(edges []float64, x float64) bool {
	for _, e := range edges {
		if isEdge(e, x) {
			return true
		}
	}
	return false
}
