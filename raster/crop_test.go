package raster

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// testImage is white with content (a black bar) down to the exclusive
// row bottom.
func testImage(h, contentBottom int) *image.NRGBA {
	img := imaging.New(100, h, color.White)
	for y := 10; y < contentBottom; y++ {
		for x := 20; x < 80; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestCropBottom(t *testing.T) {
	img := testImage(100, 82)
	out, ok := CropBottom(img, 5)
	if !ok {
		t.Fatal("expected a crop")
	}
	if got := out.Bounds().Dy(); got != 87 {
		t.Errorf("new height = %d, want 87 (content 82 + margin 5)", got)
	}
	if got := out.Bounds().Dx(); got != 100 {
		t.Errorf("width changed to %d; only the bottom may be trimmed", got)
	}
}

func TestCropBottomNoChange(t *testing.T) {
	tests := []struct {
		name string
		img  *image.NRGBA
	}{
		{"blank", testImage(100, 10)}, // bar loop empty, fully white
		{"content reaches bottom", testImage(100, 100)},
		{"crop below safety fraction", testImage(100, 40)}, // 45 < 80% of 100
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, ok := CropBottom(tc.img, 5)
			if ok {
				t.Errorf("unexpected crop to %d rows", out.Bounds().Dy())
			}
			if out.Bounds().Dy() != 100 {
				t.Errorf("image changed without ok")
			}
		})
	}
}

// Anti-aliased fringe pixels close to white count as background.
func TestCropBottomThreshold(t *testing.T) {
	img := testImage(100, 82)
	faint := color.NRGBA{250, 250, 250, 255} // within WhiteThreshold of white
	for x := 0; x < 100; x++ {
		img.Set(x, 95, faint)
	}
	if _, ok := CropBottom(img, 5); !ok {
		t.Error("near-white noise row must not prevent the crop")
	}
}

func TestCropFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "uncertainty_map_step_001.png")
	if err := imaging.Save(testImage(100, 82), good); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "no_such.png")

	results := CropFiles([]string{good, missing}, 5, false)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if !results[0].Cropped || results[0].NewH != 87 {
		t.Errorf("good file: %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("missing file must be recorded as failed")
	}

	// The file was rewritten in place.
	img, err := imaging.Open(good)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dy(); got != 87 {
		t.Errorf("reloaded height = %d, want 87", got)
	}

	// Dry run leaves files alone.
	results = CropFiles([]string{good}, 5, true)
	if results[0].Err != nil {
		t.Fatal(results[0].Err)
	}
	img, _ = imaging.Open(good)
	if got := img.Bounds().Dy(); got != 87 {
		t.Errorf("dry run changed the file: height %d", got)
	}
}
