package chartmeta

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
)

// ----------------------------------------------------------------------------
// Layout

// ErrLayout is returned when a computed panel geometry is degenerate.
// A bad layout affects every panel, so callers must abort the whole
// synthesis run instead of producing a squashed figure.
var ErrLayout = errors.New("chartmeta: degenerate layout")

// Sane minimum pixel sizes for a panel's plot area. Anything below these
// cannot show a readable plot and indicates a layout bug.
const (
	MinPanelWidth  = 40.0
	MinPanelHeight = 40.0
)

// A Rect is an axis-aligned pixel rectangle in SVG coordinates, i.e.
// (X, Y) is the top-left corner and y grows downwards.
type Rect struct {
	X, Y, W, H float64
}

// TickGeom fixes where an axis places its tick marks and tick labels in
// pixel coordinates. The same values drive the producer when drawing ticks
// and the scraper when recognising them, so they live in one place.
type TickGeom struct {
	// X-axis tick marks are vertical segments from XMarkY0 to XMarkY1 at
	// the tick's x pixel; the label sits at y = XLabelY.
	XMarkY0, XMarkY1 float64
	XLabelY          float64

	// Y-axis tick marks are horizontal segments from YMarkX0 to YMarkX1 at
	// the tick's y pixel; the label sits at x = YLabelX.
	YMarkX0, YMarkX1 float64
	YLabelX          float64
}

// A Panel maps one data range onto one pixel rectangle. All transforms are
// independent pure affine maps, one per axis.
type Panel struct {
	Name string
	Rect Rect
	X, Y Interval // data ranges shown by this panel

	// XTicks and YTicks are explicit tick positions. If empty the Ticker
	// (or plot.DefaultTicks) generates them from the data range.
	XTicks, YTicks []plot.Tick
	Ticker         plot.Ticker
}

// PixelX maps the data coordinate x to a pixel x coordinate.
func (p *Panel) PixelX(x float64) float64 {
	return Linear(p.X, Interval{p.Rect.X, p.Rect.X + p.Rect.W}, x)
}

// PixelY maps the data coordinate y to a pixel y coordinate. Data values
// increase upward while SVG pixel coordinates increase downward, so the
// target interval is deliberately reversed.
func (p *Panel) PixelY(y float64) float64 {
	return Linear(p.Y, Interval{p.Rect.Y + p.Rect.H, p.Rect.Y}, y)
}

// DataX inverts PixelX.
func (p *Panel) DataX(px float64) float64 {
	return Linear(Interval{p.Rect.X, p.Rect.X + p.Rect.W}, p.X, px)
}

// DataY inverts PixelY.
func (p *Panel) DataY(px float64) float64 {
	return Linear(Interval{p.Rect.Y + p.Rect.H, p.Rect.Y}, p.Y, px)
}

// TicksX returns the panel's x ticks, generating them if not set explicitly.
func (p *Panel) TicksX() []plot.Tick {
	if len(p.XTicks) > 0 {
		return p.XTicks
	}
	return p.ticker().Ticks(p.X.Min, p.X.Max)
}

// TicksY returns the panel's y ticks, generating them if not set explicitly.
func (p *Panel) TicksY() []plot.Tick {
	if len(p.YTicks) > 0 {
		return p.YTicks
	}
	return p.ticker().Ticks(p.Y.Min, p.Y.Max)
}

func (p *Panel) ticker() plot.Ticker {
	if p.Ticker != nil {
		return p.Ticker
	}
	return plot.DefaultTicks{}
}

func (p *Panel) validate() error {
	if p.Rect.W < MinPanelWidth || p.Rect.H < MinPanelHeight {
		return fmt.Errorf("%w: panel %q plot area %g x %g", ErrLayout, p.Name, p.Rect.W, p.Rect.H)
	}
	if p.X.Degenerate() || p.Y.Degenerate() {
		return fmt.Errorf("%w: panel %q has a degenerate data range", ErrLayout, p.Name)
	}
	return nil
}

// A Plan is the immutable geometric description of one figure family:
// canvas size, tick geometry, the reserved marker style and the panels.
// It is computed once from fixed layout constants and never mutated.
type Plan struct {
	Width, Height float64
	Ticks         TickGeom

	// MarkerFill is the fill color reserved for exactly one marker shape
	// per artifact. The scraper identifies the marker by this signature.
	MarkerFill string

	Panels []*Panel
}

// Panel returns the named panel or nil.
func (pl *Plan) Panel(name string) *Panel {
	for _, p := range pl.Panels {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Validate fails with ErrLayout if the canvas or any panel is degenerate.
func (pl *Plan) Validate() error {
	if pl.Width < MinPanelWidth || pl.Height < MinPanelHeight {
		return fmt.Errorf("%w: canvas %g x %g", ErrLayout, pl.Width, pl.Height)
	}
	for _, p := range pl.Panels {
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

// DemoPlan returns the plan of the demo plot family scraped by package
// extract: per-step decision, uncertainty and information-gain maps. Only
// the tick geometry and the marker signature are fixed for this family;
// the panel data ranges vary per frame and are exactly what the recovery
// pipeline reconstructs.
func DemoPlan() *Plan {
	return &Plan{
		Width:  680,
		Height: 520,
		Ticks: TickGeom{
			XMarkY0: 460, XMarkY1: 465, XLabelY: 478,
			YMarkX0: 65, YMarkX1: 70, YLabelX: 62,
		},
		MarkerFill: "#ffd92f",
	}
}
