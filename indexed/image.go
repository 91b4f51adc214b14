package indexed

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
)

type byLuminance color.Palette

func (p byLuminance) Len() int {
	return len(p)
}

func (p byLuminance) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}

func (p byLuminance) Less(i, j int) bool {
	return luminance(p[i]) < luminance(p[j])
}

func luminance(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// Paletted returns m as a paletted image. Images that already carry a
// palette keep it, and their indices, unchanged. Anything else is reduced to
// no more than colors colors with a median cut quantizer, with the resulting
// palette ordered from darkest to lightest.
func Paletted(m image.Image, colors int) *image.Paletted {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm != nil {
		return pm
	}

	if cp, ok := m.ColorModel().(color.Palette); ok {
		pm = image.NewPaletted(b, cp)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pm.Set(x, y, cp.Convert(m.At(x, y)))
			}
		}
		return pm
	}

	if b.Empty() {
		return image.NewPaletted(b, nil)
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, colors), m)
	sort.Stable(byLuminance(p))

	pm = image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

// Samples returns the color indices of m as a flat sample buffer, see
// Paletted for how the indices are chosen.
func Samples(m image.Image, colors int) []byte {
	pm := Paletted(m, colors)
	b := pm.Bounds()

	pix := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pix = append(pix, pm.ColorIndexAt(x, y))
		}
	}
	return pix
}
