// Package huffman implements Huffman coding of RGB images.
//
// Each distinct color gets a prefix-free code derived from its frequency;
// the image is the concatenation of the codes of its pixels in row-major
// order.
package huffman

import (
	"fmt"

	"github.com/cocosip/go-pcx-codec/codec"
	"github.com/cocosip/go-pcx-codec/pixel"
)

// CodeTable maps every color to its code, written as '0' and '1' characters
type CodeTable map[pixel.Color]string

// BuildTable computes the code table for the colors of pix
func BuildTable(pix []pixel.Color) CodeTable {
	return assignCodes(buildTree(pix))
}

// Stats returns the size of an encoded image: the bitstream in bytes plus
// the code bits and 3 bytes per color for the table.
func Stats(bits Bitstream, table CodeTable) codec.SizeStats {
	codeBits := 0
	for _, code := range table {
		codeBits += len(code)
	}
	return codec.SizeStats{
		Image: float64(bits.Len()) / 8,
		Table: float64(codeBits)/8 + float64(3*len(table)),
	}
}

// Encode Huffman codes img
func Encode(img pixel.RGBBuffer) (Bitstream, CodeTable, codec.SizeStats) {
	table := BuildTable(img.Pix)

	var bits Bitstream
	for _, c := range img.Pix {
		bits.appendCode(table[c])
	}

	return bits, table, Stats(bits, table)
}

// Decode expands a bitstream into a width x height image using table
func Decode(bits Bitstream, table CodeTable, width, height int) (pixel.RGBBuffer, error) {
	count, err := pixel.PixelCount(width, height)
	if err != nil {
		return pixel.RGBBuffer{}, err
	}
	// every code is at least one bit long
	if bits.Len() < count {
		return pixel.RGBBuffer{}, fmt.Errorf("%w: %d bits cannot hold %d pixels", codec.ErrCorruptStream, bits.Len(), count)
	}
	root, err := buildDecoder(table)
	if err != nil {
		return pixel.RGBBuffer{}, err
	}
	out, err := pixel.NewRGBBuffer(width, height)
	if err != nil {
		return pixel.RGBBuffer{}, err
	}

	pos := 0
	n := root
	for i := 0; i < bits.Len(); i++ {
		bit := 0
		if bits.Bit(i) {
			bit = 1
		}
		n = n.child[bit]
		if n == nil {
			return pixel.RGBBuffer{}, fmt.Errorf("%w: no code matches at bit %d", codec.ErrCorruptStream, i)
		}
		if !n.leaf {
			continue
		}
		if pos == len(out.Pix) {
			return pixel.RGBBuffer{}, fmt.Errorf("%w: more than %d pixels in stream", codec.ErrCorruptStream, len(out.Pix))
		}
		out.Pix[pos] = n.color
		pos++
		n = root
	}

	if n != root {
		return pixel.RGBBuffer{}, fmt.Errorf("%w: stream ends inside a code", codec.ErrCorruptStream)
	}
	if pos != len(out.Pix) {
		return pixel.RGBBuffer{}, fmt.Errorf("%w: stream holds %d of %d pixels", codec.ErrCorruptStream, pos, len(out.Pix))
	}
	return out, nil
}
