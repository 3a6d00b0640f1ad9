// Package restore implements mean and order-statistic filters used to
// recover images degraded by the noise package.
package restore

import (
	"fmt"
	"math"

	"github.com/cocosip/go-pcx-codec/pixel"
	"github.com/cocosip/go-pcx-codec/spatial"
)

const windowRadius = 1

func eachWindow(g pixel.GrayBuffer, fn func(window []float64) float64) pixel.GrayBuffer {
	out := g.Blank()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out.Pix[y*g.Width+x] = fn(spatial.Neighbors(g, x, y, windowRadius, 0))
		}
	}
	return out
}

// GeometricMean replaces each pixel with the ninth root of the product of its
// zero padded 3x3 window.
func GeometricMean(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return eachWindow(g, func(w []float64) float64 {
		product := 1.0
		for _, v := range w {
			product *= v
		}
		return math.Pow(product, 1/float64(len(w)))
	}), nil
}

// Contraharmonic computes sum(x^(q+1)) / sum(x^q) over the 3x3 window.
// Zero neighbors are skipped; a window with no non-zero pixel yields 0.
func Contraharmonic(g pixel.GrayBuffer, q float64) (pixel.GrayBuffer, error) {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return pixel.GrayBuffer{}, fmt.Errorf("%w: contraharmonic order %v", pixel.ErrInvalidParameter, q)
	}
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return eachWindow(g, func(w []float64) float64 {
		var num, den float64
		for _, v := range w {
			if v == 0 {
				continue
			}
			num += math.Pow(v, q+1)
			den += math.Pow(v, q)
		}
		if den == 0 {
			return 0
		}
		return num / den
	}), nil
}

// OrderStatistic is the 3x3 median filter
func OrderStatistic(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	return spatial.Median(g, windowRadius)
}
