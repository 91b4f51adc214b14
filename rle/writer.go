package rle

import (
	"image"
	"io"

	"github.com/bodgit/rrpgeconv/indexed"
)

type encoder struct {
	w io.Writer

	// Upper nibble waiting for its lower half
	b       byte
	pending bool
}

func (e *encoder) writeByte(b byte) error {
	if _, err := e.w.Write([]byte{b}); err != nil {
		return &indexed.WriteError{Err: err}
	}
	return nil
}

func (e *encoder) writeNibble(n byte) error {
	if !e.pending {
		e.b, e.pending = n<<4, true
		return nil
	}
	e.pending = false
	return e.writeByte(e.b | n&0x0f)
}

func (e *encoder) flush() error {
	if !e.pending {
		return nil
	}
	e.pending = false
	return e.writeByte(e.b)
}

// Length of the run of identical colors starting at sp, not capped
func runLength(pix []byte, sp int) int {
	r := pix[sp] & colorMask
	i := 1
	for sp+i < len(pix) && pix[sp+i]&colorMask == r {
		i++
	}
	return i
}

// Turn a run of n pixels of color r into one or two units, returning them
// along with how many of the n pixels they actually cover
func classify(r byte, n int) ([2]byte, int, int) {
	switch {
	case n < minLiteral:
		if n > maxShort {
			n = maxShort
		}
		return [2]byte{r | byte(n)<<countShift}, 1, n
	case n < minPower:
		return [2]byte{r, byte(n)}, 2, n
	default:
		k := 0
		for k < numClasses-1 && minPower<<(k+1) <= n {
			k++
		}
		return [2]byte{r, byte(k)}, 2, minPower << k
	}
}

func (e *encoder) encode(pix []byte) error {
	for sp := 0; sp < len(pix); {
		units, n, consumed := classify(pix[sp]&colorMask, runLength(pix, sp))
		for _, u := range units[:n] {
			if err := e.writeNibble(u); err != nil {
				return err
			}
		}
		sp += consumed
	}
	return e.flush()
}

// EncodePixels writes the first width * height samples of pix to w in RLE
// format. Only the low 2 bits of each sample are used.
func EncodePixels(w io.Writer, pix []byte, width, height int) error {
	n, err := indexed.Length(width, height, len(pix))
	if err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(pix[:n])
}

// Encode writes the Image m to w in RLE format. Paletted images use the low 2
// bits of each color index, any other image is first reduced to 4 colors.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	return EncodePixels(w, indexed.Samples(m, maxColors), b.Dx(), b.Dy())
}
