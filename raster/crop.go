package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// Empirical thresholds tuned to this plot family; they encode how much
// bottom whitespace the generated frames actually carry and must not be
// re-derived.
const (
	// WhiteThreshold is the per-channel distance from pure white (0-255)
	// up to which a pixel still counts as background. A higher threshold
	// keeps more content, which is the safe direction.
	WhiteThreshold = 12

	// MinKeepFraction refuses crops that would keep less than this share
	// of the image height. Info-gain frames have a lot of bottom
	// whitespace; 0.80 is still conservative.
	MinKeepFraction = 0.80

	// BottomNoisePx ignores occasional stray pixels at the very bottom.
	BottomNoisePx = 1

	// DefaultMargin is the whitespace kept below the content.
	DefaultMargin = 20
)

// CropBottom trims only the bottom whitespace of img, keeping the full
// width and top plus margin pixels below the lowest content row. It
// returns the original image and false when nothing should be cropped:
// blank images, content reaching the bottom, and crops rejected by the
// MinKeepFraction safety.
func CropBottom(img image.Image, margin int) (image.Image, bool) {
	b := img.Bounds()
	h := b.Dy()

	content := contentBottom(img) // exclusive row offset, 0 if blank
	if content == 0 {
		return img, false
	}
	if content >= h-BottomNoisePx {
		return img, false
	}

	bottom := content + margin
	if bottom >= h {
		return img, false
	}
	if float64(bottom) < MinKeepFraction*float64(h) {
		return img, false
	}
	return imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+bottom)), true
}

// contentBottom returns the exclusive offset of the lowest row containing
// non-white content, or 0 for a blank image. Pixels are compared against
// a white background, so transparent areas count as background.
func contentBottom(img image.Image) int {
	b := img.Bounds()
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !nearWhite(img.At(x, y).RGBA()) {
				return y - b.Min.Y + 1
			}
		}
	}
	return 0
}

func nearWhite(r, g, b, a uint32) bool {
	// Composite over white: low alpha pulls every channel towards 255.
	over := func(c uint32) int {
		c8 := int(c >> 8)
		a8 := int(a >> 8)
		return (c8*a8 + 255*(255-a8)) / 255
	}
	return 255-over(r) <= WhiteThreshold &&
		255-over(g) <= WhiteThreshold &&
		255-over(b) <= WhiteThreshold
}

// A CropResult records the outcome for one file.
type CropResult struct {
	Path       string
	OldH, NewH int
	Cropped    bool
	Err        error
}

// CropFiles trims the bottom whitespace of the given PNGs in place. With
// dryRun the files are analysed but not rewritten. A single unreadable
// file is recorded and does not abort the batch.
func CropFiles(paths []string, margin int, dryRun bool) []CropResult {
	results := make([]CropResult, 0, len(paths))
	for _, path := range paths {
		res := CropResult{Path: path}
		img, err := imaging.Open(path)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		res.OldH = img.Bounds().Dy()
		cropped, ok := CropBottom(img, margin)
		res.Cropped = ok
		res.NewH = cropped.Bounds().Dy()
		if ok && !dryRun {
			// Whole-file rewrite: the new PNG appears all at once.
			if err := imaging.Save(cropped, path); err != nil {
				res.Err = err
				res.Cropped = false
			}
		}
		results = append(results, res)
	}
	return results
}
