package font

import (
	"image"
	"io"

	"github.com/bodgit/rrpgeconv/indexed"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(pix []byte) error {
	plane := len(pix) / planes
	for i := 0; i < plane; i += 2 {
		var b byte
		for p := 0; p < planes; p++ {
			b |= (pix[p*plane+i]&1)<<(planes+p) | (pix[p*plane+i+1]&1)<<p
		}
		if _, err := e.w.Write([]byte{b}); err != nil {
			return &indexed.WriteError{Err: err}
		}
	}
	return nil
}

func length(width, height, n int) (int, error) {
	length, err := indexed.Length(width, height, n)
	if err != nil {
		return 0, err
	}
	if width%cellWidth != 0 || height%planes != 0 {
		return 0, indexed.ErrInvalidDimensions
	}
	return length, nil
}

// EncodePixels writes the first width * height samples of pix to w in font
// format. Only the lowest bit of each sample is used.
func EncodePixels(w io.Writer, pix []byte, width, height int) error {
	n, err := length(width, height, len(pix))
	if err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(pix[:n])
}

// Encode writes the Image m to w in font format. Paletted images use the
// lowest bit of each color index, any other image is first reduced to 2
// colors with the darker color mapping to 0.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	return EncodePixels(w, indexed.Samples(m, maxColors), b.Dx(), b.Dy())
}
