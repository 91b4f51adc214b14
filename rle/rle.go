/*
Package rle implements the run-length encoded 2-bit image format used by the
RRPGE virtual machine.

The stream is a sequence of 4-bit units packed two to a byte, the first unit
in the high nibble. The low 2 bits of a unit hold the pixel color and the high
2 bits hold the run length:

	1, 2, 3: a run of that many pixels
	0:       escape, the following unit holds the length instead

The unit following an escape selects a power of two from 16 (0) up to 1024
(6), or, from 7 to 15, that exact number of pixels. Runs of 4 to 6 pixels are
split into a run of 3 followed by the remainder. Runs longer than 1024 pixels
are split into as many 1024 pixel runs as needed.

Runs are not broken at the end of each line, the image is encoded as one flat
sequence of width times height pixels. An odd number of units leaves the low
nibble of the final byte as zero.
*/
package rle

const (
	colorMask  = 0x03
	maxColors  = colorMask + 1
	countShift = 2
	maxShort   = 3
	minLiteral = 7
	minPower   = 16
	numClasses = 7
	maxPower   = minPower << (numClasses - 1)
)
