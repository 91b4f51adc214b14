package rrpgeconv

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/rrpgeconv/font"
	"github.com/bodgit/rrpgeconv/rle"
)

// Format selects one of the supported output encodings.
type Format int

const (
	// FormatRLE is the run-length encoded 2-bit image format
	FormatRLE Format = iota + 1
	// FormatFont is the 4 bit plane font format
	FormatFont
)

var errUnknownFormat = errors.New("unknown format")

// ParseFormat returns the Format with the given name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "rle":
		return FormatRLE, nil
	case "font":
		return FormatFont, nil
	}
	return 0, fmt.Errorf("%w: %q", errUnknownFormat, s)
}

func (f Format) String() string {
	switch f {
	case FormatRLE:
		return "rle"
	case FormatFont:
		return "font"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension, including the leading dot, used for
// files of this format.
func (f Format) Extension() string {
	switch f {
	case FormatRLE:
		return ".rle"
	case FormatFont:
		return ".fnt"
	}
	return ""
}

// Number of distinct sample values the format can represent
func (f Format) colors() int {
	switch f {
	case FormatRLE:
		return 4
	case FormatFont:
		return 2
	}
	return 0
}

func (f Format) encodePixels(w io.Writer, pix []byte, width, height int) error {
	switch f {
	case FormatRLE:
		return rle.EncodePixels(w, pix, width, height)
	case FormatFont:
		return font.EncodePixels(w, pix, width, height)
	}
	return errUnknownFormat
}

func (f Format) decode(r io.Reader, width, height int) ([]byte, error) {
	switch f {
	case FormatRLE:
		return rle.Decode(r, width*height)
	case FormatFont:
		return font.Decode(r, width, height)
	}
	return nil, errUnknownFormat
}
