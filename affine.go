package chartmeta

import (
	"errors"
	"fmt"
)

// ----------------------------------------------------------------------------
// Affine1D

// ErrDegenerateFit is returned by FitAffine if the two reference points
// collapse to a single pixel coordinate so that no slope can be determined.
var ErrDegenerateFit = errors.New("chartmeta: degenerate affine fit")

// Affine1D is a one-dimensional affine map from pixel coordinates to data
// values: value = Slope*pixel + Intercept. It is a plain value and immutable
// once fitted.
type Affine1D struct {
	Slope, Intercept float64
}

// FitAffine determines the affine map through the two reference points
// (px1, v1) and (px2, v2). The map is exact for both points.
func FitAffine(px1, v1, px2, v2 float64) (Affine1D, error) {
	if px1 == px2 {
		return Affine1D{}, fmt.Errorf("%w: both reference points at pixel %g", ErrDegenerateFit, px1)
	}
	a := (v2 - v1) / (px2 - px1)
	return Affine1D{Slope: a, Intercept: v1 - a*px1}, nil
}

// Apply maps the pixel coordinate px to a data value.
func (m Affine1D) Apply(px float64) float64 {
	return m.Slope*px + m.Intercept
}
