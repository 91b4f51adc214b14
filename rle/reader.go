package rle

import (
	"errors"
	"io"

	"github.com/bodgit/rrpgeconv/indexed"
)

var (
	errNotEnough  = errors.New("rle: not enough run data")
	errTooMuch    = errors.New("rle: too much run data")
	errBadPadding = errors.New("rle: invalid padding")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	// Lower nibble of b is still unread
	b       byte
	pending bool

	tmp [1]byte
}

func (d *decoder) readNibble() (byte, error) {
	if d.pending {
		d.pending = false
		return d.b & 0x0f, nil
	}
	if err := readFull(d.r, d.tmp[:]); err != nil {
		return 0, err
	}
	d.b, d.pending = d.tmp[0], true
	return d.b >> 4, nil
}

func (d *decoder) readRun() (byte, int, error) {
	u, err := d.readNibble()
	if err != nil {
		return 0, 0, err
	}

	c, n := u&colorMask, int(u>>countShift)
	if n != 0 {
		return c, n, nil
	}

	v, err := d.readNibble()
	if err != nil {
		return 0, 0, err
	}
	if v < minLiteral {
		return c, minPower << v, nil
	}
	return c, int(v), nil
}

func (d *decoder) decode(r io.Reader, pix []byte) error {
	d.r = r

	for sp := 0; sp < len(pix); {
		c, n, err := d.readRun()
		if err != nil {
			if err != io.ErrUnexpectedEOF {
				return err
			}
			return errNotEnough
		}
		if sp+n > len(pix) {
			return errTooMuch
		}
		for i := sp; i < sp+n; i++ {
			pix[i] = c
		}
		sp += n
	}

	if d.pending && d.b&0x0f != 0 {
		return errBadPadding
	}

	switch _, err := io.ReadFull(r, d.tmp[:]); err {
	case io.EOF:
		return nil
	case nil:
		return errTooMuch
	default:
		return err
	}
}

// Decode reads an RLE stream of n pixels from r and returns the 2-bit color
// of each pixel as a flat sample buffer. The stream must end exactly after
// the final run.
func Decode(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, indexed.ErrEmptyInput
	}

	var d decoder
	pix := make([]byte, n)
	if err := d.decode(r, pix); err != nil {
		return nil, err
	}
	return pix, nil
}
