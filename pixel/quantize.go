package pixel

import (
	"image"
	"image/color"
	"math"
)

// Clamp8 converts an intensity to 8 bits.
//
// Values are rounded half away from zero and saturated to [0,255]; NaN maps to 0.
func Clamp8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Quantize returns a copy of b with every intensity passed through Clamp8
func (b GrayBuffer) Quantize() GrayBuffer {
	out := b.Blank()
	for i, v := range b.Pix {
		out.Pix[i] = float64(Clamp8(v))
	}
	return out
}

// ToImage converts b to an 8-bit grayscale image using Clamp8
func (b GrayBuffer) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Width]
		for x := range row {
			row[x] = Clamp8(b.Pix[y*b.Width+x])
		}
	}
	return img
}

// ToRGB replicates the quantized intensity of b into all three channels
func (b GrayBuffer) ToRGB() RGBBuffer {
	out := RGBBuffer{Width: b.Width, Height: b.Height, Pix: make([]Color, len(b.Pix))}
	for i, v := range b.Pix {
		g := Clamp8(v)
		out.Pix[i] = Color{g, g, g}
	}
	return out
}

// ToImage converts b to an opaque RGBA image
func (b RGBBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		off := y * img.Stride
		for x := 0; x < b.Width; x++ {
			c := b.Pix[y*b.Width+x]
			img.Pix[off+0] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = 0xff
			off += 4
		}
	}
	return img
}

// FromImage copies any image into an RGB buffer, dropping alpha
func FromImage(src image.Image) RGBBuffer {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := RGBBuffer{Width: w, Height: h, Pix: make([]Color, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			out.Pix[y*w+x] = Color{c.R, c.G, c.B}
		}
	}
	return out
}
