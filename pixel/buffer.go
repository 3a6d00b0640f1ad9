// Package pixel defines the pixel buffers shared by the decoder, the filters
// and the codecs: RGB buffers, real-valued grayscale buffers and palettes.
//
// Buffers are row-major with the origin at the top-left corner and always
// hold exactly Width*Height pixels.
package pixel

import "fmt"

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

const maxInt = int(^uint(0) >> 1)

// PixelCount returns width*height. The dimensions must be positive and their
// product must fit in an int.
func PixelCount(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > maxInt/height {
		return 0, fmt.Errorf("%w: %dx%d overflows the pixel count", ErrInvalidDimensions, width, height)
	}
	return width * height, nil
}

// RGBBuffer holds an RGB image
type RGBBuffer struct {
	Width  int
	Height int
	Pix    []Color
}

// NewRGBBuffer allocates a zeroed RGB buffer
func NewRGBBuffer(width, height int) (RGBBuffer, error) {
	if _, err := PixelCount(width, height); err != nil {
		return RGBBuffer{}, err
	}
	return RGBBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}, nil
}

// RGBFrom wraps pix as a buffer after checking the size invariant
func RGBFrom(width, height int, pix []Color) (RGBBuffer, error) {
	if _, err := PixelCount(width, height); err != nil {
		return RGBBuffer{}, err
	}
	if len(pix) != width*height {
		return RGBBuffer{}, fmt.Errorf("%w: got %d pixels for %dx%d", ErrSizeMismatch, len(pix), width, height)
	}
	return RGBBuffer{Width: width, Height: height, Pix: pix}, nil
}

// At returns the pixel at (x, y)
func (b RGBBuffer) At(x, y int) Color {
	return b.Pix[y*b.Width+x]
}

// Set stores c at (x, y)
func (b RGBBuffer) Set(x, y int, c Color) {
	b.Pix[y*b.Width+x] = c
}

// Clone returns a deep copy
func (b RGBBuffer) Clone() RGBBuffer {
	pix := make([]Color, len(b.Pix))
	copy(pix, b.Pix)
	return RGBBuffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Validate checks the dimension invariant
func (b RGBBuffer) Validate() error {
	if _, err := PixelCount(b.Width, b.Height); err != nil {
		return err
	}
	if len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("%w: got %d pixels for %dx%d", ErrSizeMismatch, len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// GrayBuffer holds single-channel intensities.
//
// Values are real so that filter responses outside [0,255] or with a
// fractional part survive until the caller quantizes them.
type GrayBuffer struct {
	Width  int
	Height int
	Pix    []float64
}

// NewGrayBuffer allocates a zeroed grayscale buffer
func NewGrayBuffer(width, height int) (GrayBuffer, error) {
	if _, err := PixelCount(width, height); err != nil {
		return GrayBuffer{}, err
	}
	return GrayBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}, nil
}

// GrayFrom wraps pix as a buffer after checking the size invariant
func GrayFrom(width, height int, pix []float64) (GrayBuffer, error) {
	if _, err := PixelCount(width, height); err != nil {
		return GrayBuffer{}, err
	}
	if len(pix) != width*height {
		return GrayBuffer{}, fmt.Errorf("%w: got %d pixels for %dx%d", ErrSizeMismatch, len(pix), width, height)
	}
	return GrayBuffer{Width: width, Height: height, Pix: pix}, nil
}

// At returns the intensity at (x, y)
func (b GrayBuffer) At(x, y int) float64 {
	return b.Pix[y*b.Width+x]
}

// Set stores v at (x, y)
func (b GrayBuffer) Set(x, y int, v float64) {
	b.Pix[y*b.Width+x] = v
}

// Clone returns a deep copy
func (b GrayBuffer) Clone() GrayBuffer {
	pix := make([]float64, len(b.Pix))
	copy(pix, b.Pix)
	return GrayBuffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Validate checks the dimension invariant
func (b GrayBuffer) Validate() error {
	if _, err := PixelCount(b.Width, b.Height); err != nil {
		return err
	}
	if len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("%w: got %d pixels for %dx%d", ErrSizeMismatch, len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// Blank returns a zeroed buffer with the same dimensions as b
func (b GrayBuffer) Blank() GrayBuffer {
	return GrayBuffer{Width: b.Width, Height: b.Height, Pix: make([]float64, len(b.Pix))}
}
