package font

import (
	"errors"
	"io"
)

var (
	errNotEnough = errors.New("font: not enough image data")
	errTooMuch   = errors.New("font: too much image data")
)

const maxInt = int(^uint(0) >> 1)

// Decode reads a font of the given source dimensions from r and returns the
// pixels of all four planes as a flat sample buffer of 0 and 1 values, laid
// out as the source image was.
func Decode(r io.Reader, width, height int) ([]byte, error) {
	n, err := length(width, height, maxInt)
	if err != nil {
		return nil, err
	}

	plane := n / planes
	tmp := make([]byte, plane>>1)
	if _, err := io.ReadFull(r, tmp); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errNotEnough
		}
		return nil, err
	}

	var extra [1]byte
	switch _, err := io.ReadFull(r, extra[:]); err {
	case io.EOF:
	case nil:
		return nil, errTooMuch
	default:
		return nil, err
	}

	pix := make([]byte, n)
	for j, b := range tmp {
		i := j << 1
		for p := 0; p < planes; p++ {
			pix[p*plane+i] = b >> (planes + p) & 1
			pix[p*plane+i+1] = b >> p & 1
		}
	}
	return pix, nil
}
