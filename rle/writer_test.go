package rle

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"math/rand"
	"testing"

	"github.com/bodgit/rrpgeconv/indexed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(c byte, n int) []byte {
	return bytes.Repeat([]byte{c}, n)
}

func join(runs ...[]byte) []byte {
	return bytes.Join(runs, nil)
}

func TestEncodePixels(t *testing.T) {
	tests := []struct {
		name string
		pix  []byte
		want []byte
	}{
		{"single pixel", []byte{2}, []byte{0x60}},
		{"one of each color", []byte{0, 1, 2, 3}, []byte{0x45, 0x67}},
		{"run of 3", repeat(3, 3), []byte{0xf0}},
		{"run of 4 is split", repeat(0, 4), []byte{0xc4}},
		{"run of 5 is split", repeat(2, 5), []byte{0xea}},
		{"run of 6 is split", repeat(0, 6), []byte{0xcc}},
		{"run of 7", repeat(1, 7), []byte{0x17}},
		{"run of 15", repeat(1, 15), []byte{0x1f}},
		{"run of 16", repeat(1, 16), []byte{0x10}},
		{"run of 31", repeat(1, 31), []byte{0x10, 0x1f}},
		{"run of 32", repeat(2, 32), []byte{0x21}},
		{"run of 1024", repeat(3, maxPower), []byte{0x36}},
		{"run of 1030", repeat(3, 1030), []byte{0x36, 0xff}},
		{"run of 5000", repeat(0, 5000), []byte{0x06, 0x06, 0x06, 0x06, 0x05, 0x04, 0x03, 0x08}},
		{"odd unit count", join([]byte{2}, repeat(1, 7)), []byte{0x61, 0x70}},
		{"high bits ignored", []byte{0xfe, 0x02}, []byte{0xa0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(bytes.Buffer)
			require.NoError(t, EncodePixels(b, tt.pix, len(tt.pix), 1))
			assert.Equal(t, tt.want, b.Bytes())
		})
	}
}

func TestEncodePixelsCrossesLines(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, EncodePixels(b, repeat(1, 4), 2, 2))
	assert.Equal(t, []byte{0xd5}, b.Bytes())
}

func TestEncodePixelsIgnoresExtraSamples(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, EncodePixels(b, []byte{1, 1, 3, 3}, 2, 1))
	assert.Equal(t, []byte{0x90}, b.Bytes())
}

func TestEncodePixelsErrors(t *testing.T) {
	tests := []struct {
		name          string
		pix           []byte
		width, height int
		err           error
	}{
		{"empty", nil, 1, 1, indexed.ErrEmptyInput},
		{"zero width", []byte{1}, 0, 1, indexed.ErrInvalidDimensions},
		{"negative height", []byte{1}, 1, -1, indexed.ErrInvalidDimensions},
		{"short buffer", []byte{1, 2, 3}, 2, 2, indexed.ErrNotEnough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(bytes.Buffer)
			assert.Equal(t, tt.err, EncodePixels(b, tt.pix, tt.width, tt.height))
			assert.Zero(t, b.Len())
		})
	}
}

type failWriter struct {
	n int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, io.ErrClosedPipe
	}
	w.n--
	return len(p), nil
}

func TestEncodePixelsWriteFailure(t *testing.T) {
	tests := []struct {
		name string
		pix  []byte
		n    int
	}{
		{"full byte", []byte{0, 1}, 0},
		{"final nibble", []byte{0, 1, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EncodePixels(&failWriter{tt.n}, tt.pix, len(tt.pix), 1)

			var we *indexed.WriteError
			require.True(t, errors.As(err, &we))
			assert.Equal(t, io.ErrClosedPipe, we.Err)
		})
	}
}

func TestEncode(t *testing.T) {
	palette := color.Palette{color.Black, color.White, color.Gray{Y: 0x55}, color.Gray{Y: 0xaa}, color.Gray{Y: 0x20}, color.Gray{Y: 0x40}}

	m := image.NewPaletted(image.Rect(0, 0, 4, 1), palette)
	m.SetColorIndex(0, 0, 1)
	m.SetColorIndex(1, 0, 1)
	m.SetColorIndex(2, 0, 1)
	m.SetColorIndex(3, 0, 5)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, []byte{0xd5}, b.Bytes())
}

func TestEncodeEmptyImage(t *testing.T) {
	assert.Equal(t, indexed.ErrEmptyInput, Encode(new(bytes.Buffer), image.NewPaletted(image.Rect(0, 0, 0, 0), nil)))
}

func randomPixels(r *rand.Rand, n int) []byte {
	pix := make([]byte, 0, n)
	for len(pix) < n {
		run := 1 + r.Intn(1+r.Intn(3000))
		if run > n-len(pix) {
			run = n - len(pix)
		}
		// Keep some high bits set, only the low two count
		pix = append(pix, repeat(byte(r.Intn(256)), run)...)
	}
	return pix
}

// Sum the units classify produces over the whole buffer
func countUnits(pix []byte) int {
	units := 0
	for sp := 0; sp < len(pix); {
		_, n, consumed := classify(pix[sp]&colorMask, runLength(pix, sp))
		units += n
		sp += consumed
	}
	return units
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		pix := randomPixels(r, 1+r.Intn(8192))

		b := new(bytes.Buffer)
		require.NoError(t, EncodePixels(b, pix, len(pix), 1))
		assert.Equal(t, (countUnits(pix)+1)/2, b.Len())

		got, err := Decode(bytes.NewReader(b.Bytes()), len(pix))
		require.NoError(t, err)
		for j := range pix {
			if !assert.Equal(t, pix[j]&colorMask, got[j], "pixel %d", j) {
				break
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	pix := randomPixels(rand.New(rand.NewSource(2)), 4096)

	b1, b2 := new(bytes.Buffer), new(bytes.Buffer)
	require.NoError(t, EncodePixels(b1, pix, 64, 64))
	require.NoError(t, EncodePixels(b2, pix, 64, 64))
	assert.Equal(t, b1.Bytes(), b2.Bytes())
}
