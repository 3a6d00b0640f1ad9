package pcx

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

func init() {
	// manufacturer, any version, RLE encoding
	image.RegisterFormat("pcx", "\x0a?\x01", DecodeImage, DecodeConfig)
}

// DecodeImage reads a PCX file from r and returns it as an image.Image
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcx data: %w", err)
	}
	rgb, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return rgb.ToImage(), nil
}

// DecodeConfig returns the dimensions of a PCX image without decoding the pixels
func DecodeConfig(r io.Reader) (image.Config, error) {
	var buf [HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return image.Config{}, err
	}
	h, err := ParseHeader(buf[:n])
	if err != nil {
		return image.Config{}, err
	}
	if err := h.Validate(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      h.Width(),
		Height:     h.Height(),
	}, nil
}
