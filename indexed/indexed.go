/*
Package indexed handles the flat sample buffers consumed by the rle and font
encoders.

A sample buffer holds one byte per pixel in row-major order, exactly as an
image editor's C header export lays it out. Only the low bits of each sample
are significant; the encoders mask off anything above the bit depth of their
output format.
*/
package indexed

import "errors"

var (
	// ErrInvalidDimensions is returned when the width or height is not
	// positive, their product overflows, or the output format places
	// further restrictions on them
	ErrInvalidDimensions = errors.New("indexed: invalid dimensions")

	// ErrEmptyInput is returned when there are no samples to encode
	ErrEmptyInput = errors.New("indexed: empty input")

	// ErrNotEnough is returned when the buffer holds fewer samples than
	// the dimensions describe
	ErrNotEnough = errors.New("indexed: not enough pixel data")
)

const maxInt = int(^uint(0) >> 1)

// WriteError wraps an error returned by the output writer.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return "indexed: write failed: " + e.Err.Error()
}

// Unwrap returns the underlying writer error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Length checks width and height against a buffer of n samples and returns
// the number of pixels they describe. Any samples beyond that are ignored.
func Length(width, height, n int) (int, error) {
	if n == 0 {
		return 0, ErrEmptyInput
	}
	if width <= 0 || height <= 0 || width > maxInt/height {
		return 0, ErrInvalidDimensions
	}
	if length := width * height; length <= n {
		return length, nil
	}
	return 0, ErrNotEnough
}
