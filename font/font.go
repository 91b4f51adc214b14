/*
Package font implements the 4 bit plane font format used by the RRPGE virtual
machine.

The source image holds four rows of glyphs stacked vertically, each row being
one bit plane, the topmost row ending up as the lowest bit. Only the lowest
bit of each source pixel is used. The width must be a multiple of 8, the size
of a VRAM cell, and the height a multiple of 4.

Each output byte holds two horizontally adjacent pixels. The even pixel
occupies bits 4 to 7 and the odd pixel bits 0 to 3, in both cases plane 1 in
the lowest bit of the nibble. The result is a quarter of the source height
tall with a byte for every two pixels.
*/
package font

const (
	planes    = 4
	cellWidth = 8
	maxColors = 2
)
