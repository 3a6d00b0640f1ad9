// Package rle implements palette based run-length encoding of RGB images.
//
// Pixels are replaced by their index in a palette of the image's distinct
// colors (first-seen order) and consecutive equal pixels in row-major order
// collapse into (length, index) runs. Runs may cross scanline boundaries.
package rle

import (
	"fmt"

	"github.com/cocosip/go-pcx-codec/codec"
	"github.com/cocosip/go-pcx-codec/pixel"
)

// Run is a repeated palette index
type Run struct {
	Length int
	Index  int
}

// Stream is the encoded run sequence
type Stream []Run

// Len returns the number of pixels the stream expands to
func (s Stream) Len() int {
	n := 0
	for _, r := range s {
		n += r.Length
	}
	return n
}

// MaxRun returns the longest run length, at least 1
func (s Stream) MaxRun() int {
	longest := 1
	for _, r := range s {
		if r.Length > longest {
			longest = r.Length
		}
	}
	return longest
}

// Stats returns the size of s: every run stores its length and index with
// BitsNeeded(MaxRun()) bits each; the palette costs 3 bytes per color.
func Stats(s Stream, palette pixel.Palette) codec.SizeStats {
	return codec.SizeStats{
		Image: float64(codec.BitsNeeded(s.MaxRun())*2*len(s)) / 8,
		Table: float64(3 * len(palette)),
	}
}

// Encode run-length encodes img
func Encode(img pixel.RGBBuffer) (Stream, pixel.Palette, codec.SizeStats) {
	palette, indices := pixel.BuildPalette(img.Pix)

	stream := make(Stream, 0)
	for i, idx := range indices {
		if i > 0 && indices[i-1] == idx {
			stream[len(stream)-1].Length++
			continue
		}
		stream = append(stream, Run{Length: 1, Index: idx})
	}

	return stream, palette, Stats(stream, palette)
}

// Decode expands a run stream back into a width x height image
func Decode(s Stream, palette pixel.Palette, width, height int) (pixel.RGBBuffer, error) {
	n, err := pixel.PixelCount(width, height)
	if err != nil {
		return pixel.RGBBuffer{}, err
	}

	// check the whole stream before allocating the image
	pos := 0
	for i, r := range s {
		if _, ok := palette.Lookup(r.Index); !ok {
			return pixel.RGBBuffer{}, fmt.Errorf("%w: run %d uses index %d of a %d color palette",
				codec.ErrCorruptStream, i, r.Index, len(palette))
		}
		if r.Length <= 0 || r.Length > n-pos {
			return pixel.RGBBuffer{}, fmt.Errorf("%w: run %d has length %d at pixel %d of %d",
				codec.ErrCorruptStream, i, r.Length, pos, n)
		}
		pos += r.Length
	}
	if pos != n {
		return pixel.RGBBuffer{}, fmt.Errorf("%w: runs cover %d of %d pixels", codec.ErrCorruptStream, pos, n)
	}

	out, err := pixel.NewRGBBuffer(width, height)
	if err != nil {
		return pixel.RGBBuffer{}, err
	}
	pos = 0
	for _, r := range s {
		c, _ := palette.Lookup(r.Index)
		for end := pos + r.Length; pos < end; pos++ {
			out.Pix[pos] = c
		}
	}
	return out, nil
}
