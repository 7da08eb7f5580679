package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Luminance weights (ITU-R BT.601), the same weights used for 8-bit "L" mode
// conversion in most imaging toolkits.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// ThermalTensor converts img into the flat input vector of the thermal
// counting network.
//
// The pipeline is:
//
//  1. Grayscale conversion with BT.601 weights
//  2. Bilinear resize to size×size (aspect ratio is not preserved)
//  3. Row-major flattening with each pixel scaled from [0,255] to [0,1]
//
// The returned slice has exactly size*size elements.
func ThermalTensor(img image.Image, size int) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid tensor size %d", size)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	gray := effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB)
	resized := imaging.Resize(gray, size, size, imaging.Linear)

	out := make([]float64, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// R, G and B are equal after grayscale; read R.
			v := resized.Pix[resized.PixOffset(x, y)]
			out = append(out, float64(v)/255.0)
		}
	}
	return out, nil
}
