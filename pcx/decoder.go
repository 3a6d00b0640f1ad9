package pcx

import (
	"fmt"

	"github.com/cocosip/go-pcx-codec/pixel"
)

// decodeScanlines expands the RLE plane data into height scanlines of
// lineSize bytes. It returns the decoded bytes and the number of input bytes
// consumed; anything after that offset is left for the eof palette.
func decodeScanlines(buf []byte, lineSize, height int) ([]byte, int, error) {
	// every input byte yields at most maxRun output bytes
	if lineSize > maxRun*len(buf)/height {
		return nil, 0, fmt.Errorf("%w: %d input bytes cannot hold %d scanlines of %d bytes",
			ErrTruncatedData, len(buf), height, lineSize)
	}
	total := lineSize * height
	out := make([]byte, 0, total)

	i := 0
	for len(out) < total {
		if i >= len(buf) {
			return nil, 0, fmt.Errorf("%w: decoded %d of %d bytes (line %d of %d)",
				ErrTruncatedData, len(out), total, len(out)/lineSize, height)
		}

		b := buf[i]
		if b&0xC0 != 0xC0 {
			out = append(out, b)
			i++
			continue
		}

		// run marker: low 6 bits repeat the next byte
		if i+1 >= len(buf) {
			return nil, 0, fmt.Errorf("%w: run marker at offset %d has no value byte", ErrTruncatedData, HeaderSize+i)
		}
		count := int(b & 0x3F)
		if remaining := total - len(out); count > remaining {
			count = remaining
		}
		v := buf[i+1]
		for ; count > 0; count-- {
			out = append(out, v)
		}
		i += 2
	}

	return out, i, nil
}

func readPalette(b []byte) pixel.Palette {
	palette := make(pixel.Palette, len(b)/3)
	for i := range palette {
		palette[i] = pixel.Color{R: b[i*3], G: b[i*3+1], B: b[i*3+2]}
	}
	return palette
}

// hasEOFPalette reports whether the undecoded tail holds a version 5 palette block
func hasEOFPalette(h Header, buf []byte, consumed int) bool {
	rest := len(buf) - consumed
	if rest <= 0 || h.Version != 5 || rest < paletteBlockSize {
		return false
	}
	return buf[len(buf)-paletteBlockSize] == paletteMarker
}

// decode turns the post-header buffer into RGB pixels
func decode(h Header, buf []byte) (pixel.RGBBuffer, pixel.Palette, error) {
	if err := h.Validate(); err != nil {
		return pixel.RGBBuffer{}, nil, err
	}

	width, height := h.Width(), h.Height()
	lineSize := h.ScanlineSize()
	bpl := int(h.BytesPerLine)

	lines, consumed, err := decodeScanlines(buf, lineSize, height)
	if err != nil {
		return pixel.RGBBuffer{}, nil, err
	}

	switch {
	case hasEOFPalette(h, buf, consumed):
		if bpl < width {
			return pixel.RGBBuffer{}, nil, fmt.Errorf("%w: %d bpp palette image with %d bytes per line for width %d",
				ErrUnsupportedFormat, h.BitsPerPixel, bpl, width)
		}
		out := pixel.RGBBuffer{Width: width, Height: height, Pix: make([]pixel.Color, width*height)}
		palette := readPalette(buf[len(buf)-paletteSize:])
		for y := 0; y < height; y++ {
			line := lines[y*lineSize:]
			for x := 0; x < width; x++ {
				out.Pix[y*width+x] = palette[line[x]]
			}
		}
		return out, palette, nil

	case h.BitsPerPixel == 8 && h.NumPlanes == 3:
		out := pixel.RGBBuffer{Width: width, Height: height, Pix: make([]pixel.Color, width*height)}
		for y := 0; y < height; y++ {
			line := lines[y*lineSize:]
			for x := 0; x < width; x++ {
				out.Pix[y*width+x] = pixel.Color{R: line[x], G: line[bpl+x], B: line[2*bpl+x]}
			}
		}
		return out, nil, nil

	case consumed < len(buf) && h.Version == 5 && h.BitsPerPixel == 8 && h.NumPlanes == 1:
		return pixel.RGBBuffer{}, nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidPalette, len(buf)-consumed)

	default:
		return pixel.RGBBuffer{}, nil, fmt.Errorf("%w: version %d, %d bpp, %d planes",
			ErrUnsupportedFormat, h.Version, h.BitsPerPixel, h.NumPlanes)
	}
}
