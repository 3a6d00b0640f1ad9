package codec

import (
	"math/bits"

	"github.com/cocosip/go-pcx-codec/pixel"
)

// SizeStats reports the cost of an image representation in bytes.
// Fractional values are kept because payloads are measured in bits.
type SizeStats struct {
	Image float64 // pixel payload
	Table float64 // palette or code table
}

// Total returns Image + Table
func (s SizeStats) Total() float64 {
	return s.Image + s.Table
}

// Ratio returns how many times smaller s is than ref, 0 if s is empty
func (s SizeStats) Ratio(ref SizeStats) float64 {
	if s.Total() == 0 {
		return 0
	}
	return ref.Total() / s.Total()
}

// BitsNeeded returns the number of binary digits of n; BitsNeeded(0) is 1
func BitsNeeded(n int) int {
	if n <= 0 {
		return 1
	}
	return bits.Len(uint(n))
}

// Uncompressed reports the size of img stored as palette indices of the
// minimum width plus a 3-byte-per-color palette.
func Uncompressed(img pixel.RGBBuffer) SizeStats {
	palette, _ := pixel.BuildPalette(img.Pix)
	if len(palette) == 0 {
		return SizeStats{}
	}
	return SizeStats{
		Image: float64(len(img.Pix)*BitsNeeded(len(palette)-1)) / 8,
		Table: float64(len(palette) * 3),
	}
}
