package pcx

import (
	"bytes"
	"sync"

	"github.com/cocosip/go-pcx-codec/pixel"
	"github.com/cocosip/go-pcx-codec/point"
)

// Image is a parsed PCX file.
//
// The decoded pixels, the eof palette and the grayscale buffer are derived
// on first use and cached; the returned buffers are shared and must be
// treated as read-only.
type Image struct {
	Header Header

	data []byte

	decodeOnce sync.Once
	pixels     pixel.RGBBuffer
	palette    pixel.Palette
	decodeErr  error

	grayOnce sync.Once
	gray     pixel.GrayBuffer
}

// Parse reads the header of data and keeps a copy of the remaining bytes for
// decoding, so later changes to data do not affect the image.
func Parse(data []byte) (*Image, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &Image{Header: h, data: bytes.Clone(data[HeaderSize:])}, nil
}

// Decode parses and decodes a PCX file in one step. data is only read.
func Decode(data []byte) (pixel.RGBBuffer, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return pixel.RGBBuffer{}, err
	}
	pixels, _, err := decode(h, data[HeaderSize:])
	if err != nil {
		return pixel.RGBBuffer{}, err
	}
	return pixels, nil
}

// Width returns the image width in pixels
func (img *Image) Width() int {
	return img.Header.Width()
}

// Height returns the image height in pixels
func (img *Image) Height() int {
	return img.Header.Height()
}

// Data returns the raw bytes following the header. The slice is owned by
// the image and must not be modified.
func (img *Image) Data() []byte {
	return img.data
}

func (img *Image) decode() {
	img.decodeOnce.Do(func() {
		img.pixels, img.palette, img.decodeErr = decode(img.Header, img.data)
	})
}

// Pixels returns the decoded RGB pixels
func (img *Image) Pixels() (pixel.RGBBuffer, error) {
	img.decode()
	return img.pixels, img.decodeErr
}

// Palette returns the eof palette, or nil when the image has none
func (img *Image) Palette() (pixel.Palette, error) {
	img.decode()
	return img.palette, img.decodeErr
}

// Grayscale returns the grayscale version of the decoded pixels
func (img *Image) Grayscale() (pixel.GrayBuffer, error) {
	rgb, err := img.Pixels()
	if err != nil {
		return pixel.GrayBuffer{}, err
	}
	img.grayOnce.Do(func() {
		img.gray = point.Grayscale(rgb)
	})
	return img.gray, nil
}
