package rrpgeconv

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/bodgit/rrpgeconv/indexed"
)

func write(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return &indexed.WriteError{Err: err}
	}
	return nil
}

func (c *Converter) verify(f Format, b, pix []byte, width, height int) error {
	got, err := f.decode(bytes.NewReader(b), width, height)
	if err != nil {
		return fmt.Errorf("%s: verify: %w", f, err)
	}

	mask := byte(f.colors() - 1)
	for i, p := range got {
		if want := pix[i] & mask; p != want {
			return fmt.Errorf("%s: verify: pixel %d decodes as %d, want %d", f, i, p, want)
		}
	}

	c.logger.Printf("Verified %d pixels from %d bytes of %s data\n", len(got), len(b), f)

	return nil
}

// EncodePixels writes the first width * height samples of pix to w in
// format f.
func (c *Converter) EncodePixels(w io.Writer, f Format, pix []byte, width, height int) error {
	if !c.Verify {
		return f.encodePixels(w, pix, width, height)
	}

	b := new(bytes.Buffer)
	if err := f.encodePixels(b, pix, width, height); err != nil {
		return err
	}

	if err := c.verify(f, b.Bytes(), pix, width, height); err != nil {
		return err
	}

	return write(w, b.Bytes())
}

// EncodeImage decodes a PNG, GIF or JPEG image from r and writes it to w in
// format f. If the Converter has an asset cache, a previous encoding of the
// same image is reused.
//
// Paletted images are not requantized, whatever the size of their palette.
// Each color index is masked down to its low 2 bits for rle or its lowest bit
// for font, so in a 16 color image indices 1, 5, 9 and 13 all encode as color
// 1. Save images with a 4 or 2 color palette to avoid surprises. Only images
// without a palette are reduced to the format's color count.
func (c *Converter) EncodeImage(w io.Writer, f Format, r io.Reader) error {
	if f.colors() == 0 {
		return errUnknownFormat
	}

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(r, h))
	if err != nil {
		return err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	if c.db != nil {
		b, err := c.db.FindAsset(sha, f)
		if err != nil {
			return err
		}
		if b != nil {
			c.logger.Printf("Using cached %s data for image with SHA-1 \"%s\"\n", f, sha)
			return write(w, b)
		}
	}

	bounds := m.Bounds()
	pix := indexed.Samples(m, f.colors())

	b := new(bytes.Buffer)
	if err := f.encodePixels(b, pix, bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	if c.Verify {
		if err := c.verify(f, b.Bytes(), pix, bounds.Dx(), bounds.Dy()); err != nil {
			return err
		}
	}

	if c.db != nil {
		if err := c.db.AddAsset(sha, f, b.Bytes()); err != nil {
			return err
		}
	}

	return write(w, b.Bytes())
}

// ConvertFile converts the image in file in to format f, writing the result
// to file out.
func (c *Converter) ConvertFile(in, out string, f Format) error {
	r, err := os.Open(in)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := c.EncodeImage(w, f, r); err != nil {
		w.Close()
		os.Remove(out)
		return err
	}

	return w.Close()
}
