// Package point implements position independent intensity transforms.
package point

import (
	"fmt"
	"math"

	"github.com/cocosip/go-pcx-codec/pixel"
)

// MaxIntensity is the top of the 8-bit intensity range
const MaxIntensity = 255

// Grayscale averages the three channels of every pixel, truncating the result
func Grayscale(rgb pixel.RGBBuffer) pixel.GrayBuffer {
	out := pixel.GrayBuffer{Width: rgb.Width, Height: rgb.Height, Pix: make([]float64, len(rgb.Pix))}
	for i, p := range rgb.Pix {
		out.Pix[i] = float64((int(p.R) + int(p.G) + int(p.B)) / 3)
	}
	return out
}

// Negative complements every intensity: 255 - v
func Negative(g pixel.GrayBuffer) pixel.GrayBuffer {
	out := g.Blank()
	for i, v := range g.Pix {
		out.Pix[i] = MaxIntensity - v
	}
	return out
}

// Threshold maps intensities strictly above t to 255 and the rest to 0
func Threshold(g pixel.GrayBuffer, t int) (pixel.GrayBuffer, error) {
	if t < 0 || t > MaxIntensity {
		return pixel.GrayBuffer{}, fmt.Errorf("%w: threshold %d outside [0,255]", pixel.ErrInvalidParameter, t)
	}
	out := g.Blank()
	level := float64(t)
	for i, v := range g.Pix {
		if v > level {
			out.Pix[i] = MaxIntensity
		}
	}
	return out, nil
}

// Gamma applies 255 * (v/255)^gamma. The result is not rounded.
func Gamma(g pixel.GrayBuffer, gamma float64) (pixel.GrayBuffer, error) {
	if math.IsNaN(gamma) || math.IsInf(gamma, 0) || gamma <= 0 {
		return pixel.GrayBuffer{}, fmt.Errorf("%w: gamma %v must be a positive number", pixel.ErrInvalidParameter, gamma)
	}
	out := g.Blank()
	for i, v := range g.Pix {
		out.Pix[i] = MaxIntensity * math.Pow(v/MaxIntensity, gamma)
	}
	return out, nil
}
