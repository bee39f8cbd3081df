// Package crop trims the white margins around a rendered receipt so the
// tweet image shows the document content instead of a mostly blank page.
package crop

import (
	"errors"
	"image"
)

// luminance above which a pixel counts as background
const whiteThreshold = 0xf0f0

// padding in pixels kept around the detected content box
const padding = 12

type Trimmer struct{}

func NewTrimmer() *Trimmer {
	return &Trimmer{}
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the smallest region of src containing non-background pixels,
// padded on each side. A fully blank page is an error.
func (t *Trimmer) Crop(src image.Image) (image.Image, error) {
	bounds := src.Bounds()
	content := image.Rectangle{Min: bounds.Max, Max: bounds.Min}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if isBackground(src, x, y) {
				continue
			}
			if x < content.Min.X {
				content.Min.X = x
			}
			if y < content.Min.Y {
				content.Min.Y = y
			}
			if x+1 > content.Max.X {
				content.Max.X = x + 1
			}
			if y+1 > content.Max.Y {
				content.Max.Y = y + 1
			}
		}
	}

	if content.Empty() {
		return nil, errors.New("crop: blank page")
	}

	content = content.Inset(-padding).Intersect(bounds)

	if sub, ok := src.(subImager); ok {
		return sub.SubImage(content), nil
	}

	out := image.NewRGBA(image.Rect(0, 0, content.Dx(), content.Dy()))
	for y := content.Min.Y; y < content.Max.Y; y++ {
		for x := content.Min.X; x < content.Max.X; x++ {
			out.Set(x-content.Min.X, y-content.Min.Y, src.At(x, y))
		}
	}
	return out, nil
}

func isBackground(src image.Image, x, y int) bool {
	r, g, b, _ := src.At(x, y).RGBA()
	return r >= whiteThreshold && g >= whiteThreshold && b >= whiteThreshold
}
