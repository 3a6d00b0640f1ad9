// Package pcx decodes ZSoft PCX images.
//
// Two layouts are supported: 8-bit single plane images with a 256 color
// palette appended to the file (version 5), and 24-bit images stored as
// three 8-bit planes (red, green, blue) per scanline.
//
// Format reference: https://people.sc.fsu.edu/~jburkardt/txt/pcx_format.txt
package pcx

import (
	"fmt"
	"strings"

	"github.com/cocosip/go-pcx-codec/pixel"
)

const (
	// HeaderSize is the fixed size of the PCX header
	HeaderSize = 128

	// Manufacturer is the expected first header byte (ZSoft)
	Manufacturer = 0x0a

	// maxRun is the longest run a single marker byte can encode
	maxRun = 0x3f

	paletteMarker    = 0x0c
	paletteSize      = 768
	paletteBlockSize = paletteSize + 1
)

// Header is the 128-byte PCX file header
type Header struct {
	Manufacturer byte
	Version      byte
	Encoding     byte
	BitsPerPixel byte
	Window       [4]uint16 // xmin, ymin, xmax, ymax
	HDPI         uint16
	VDPI         uint16
	ColorMap     [16]pixel.Color
	Reserved     byte
	NumPlanes    byte
	BytesPerLine uint16
	PaletteInfo  uint16
	HScreenSize  uint16
	VScreenSize  uint16
	Filler       [54]byte
}

func le16(b []byte) uint16 {
	return uint16(b[0]) + uint16(b[1])<<8
}

// ParseHeader parses the first HeaderSize bytes of data
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedHeader, len(data), HeaderSize)
	}

	h.Manufacturer = data[0]
	h.Version = data[1]
	h.Encoding = data[2]
	h.BitsPerPixel = data[3]
	for i := range h.Window {
		h.Window[i] = le16(data[4+i*2:])
	}
	h.HDPI = le16(data[12:])
	h.VDPI = le16(data[14:])
	for i := range h.ColorMap {
		off := 16 + i*3
		h.ColorMap[i] = pixel.Color{R: data[off], G: data[off+1], B: data[off+2]}
	}
	h.Reserved = data[64]
	h.NumPlanes = data[65]
	h.BytesPerLine = le16(data[66:])
	h.PaletteInfo = le16(data[68:])
	h.HScreenSize = le16(data[70:])
	h.VScreenSize = le16(data[72:])
	copy(h.Filler[:], data[74:HeaderSize])

	return h, nil
}

// Width returns xmax - xmin + 1
func (h Header) Width() int {
	return int(h.Window[2]) - int(h.Window[0]) + 1
}

// Height returns ymax - ymin + 1
func (h Header) Height() int {
	return int(h.Window[3]) - int(h.Window[1]) + 1
}

// ScanlineSize returns the number of decoded bytes per scanline (all planes)
func (h Header) ScanlineSize() int {
	return int(h.NumPlanes) * int(h.BytesPerLine)
}

// Validate checks that the header describes a decodable image
func (h Header) Validate() error {
	if h.Width() <= 0 || h.Height() <= 0 {
		return fmt.Errorf("%w: window %v gives %dx%d", ErrInvalidHeader, h.Window, h.Width(), h.Height())
	}
	if h.NumPlanes == 0 {
		return fmt.Errorf("%w: zero planes", ErrInvalidHeader)
	}
	if int(h.BytesPerLine)*8 < h.Width()*int(h.BitsPerPixel) {
		return fmt.Errorf("%w: %d bytes per line for width %d at %d bpp",
			ErrInvalidHeader, h.BytesPerLine, h.Width(), h.BitsPerPixel)
	}
	return nil
}

// ManufacturerName describes the manufacturer byte
func (h Header) ManufacturerName() string {
	if h.Manufacturer == Manufacturer {
		return "Zshoft .pcx (10)"
	}
	return "Unknown manufacturer"
}

// String renders the header as the multi-line metadata summary shown next to an image
func (h Header) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Manufacturer: %s\n", h.ManufacturerName())
	fmt.Fprintf(&sb, "Version: %d\n", h.Version)
	fmt.Fprintf(&sb, "Encoding: %d\n", h.Encoding)
	fmt.Fprintf(&sb, "Bits per Pixel: %d\n", h.BitsPerPixel)
	fmt.Fprintf(&sb, "Image Dimensions: %v\n", h.Window)
	fmt.Fprintf(&sb, "HDPI: %d\n", h.HDPI)
	fmt.Fprintf(&sb, "VDPI: %d\n", h.VDPI)
	fmt.Fprintf(&sb, "Number of Color Planes: %d\n", h.NumPlanes)
	fmt.Fprintf(&sb, "Bytes per Line: %d\n", h.BytesPerLine)
	fmt.Fprintf(&sb, "Palette Information: %d\n", h.PaletteInfo)
	fmt.Fprintf(&sb, "Horizontal Screen Size: %d\n", h.HScreenSize)
	fmt.Fprintf(&sb, "Vertical Screen Size: %d", h.VScreenSize)
	return sb.String()
}
