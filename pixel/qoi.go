package pixel

import (
	"fmt"
	"io"

	"github.com/xfmoulet/qoi"
)

// EncodeQOI writes b to w as a QOI image
func (b RGBBuffer) EncodeQOI(w io.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := qoi.Encode(w, b.ToImage()); err != nil {
		return fmt.Errorf("qoi encode failed: %w", err)
	}
	return nil
}

// EncodeQOI writes the quantized intensities of b to w as a QOI image
func (b GrayBuffer) EncodeQOI(w io.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return b.ToRGB().EncodeQOI(w)
}

// DecodeQOI reads a QOI image into an RGB buffer
func DecodeQOI(r io.Reader) (RGBBuffer, error) {
	img, err := qoi.Decode(r)
	if err != nil {
		return RGBBuffer{}, fmt.Errorf("qoi decode failed: %w", err)
	}
	return FromImage(img), nil
}
