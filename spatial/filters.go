package spatial

import (
	"fmt"
	"math"
	"slices"

	"github.com/cocosip/go-pcx-codec/pixel"
)

// Kernel selects one of the 3x3 Laplacian masks
type Kernel int

const (
	// KernelLaplacian is [0,1,0,1,-4,1,0,1,0]
	KernelLaplacian Kernel = iota + 1
	// KernelLaplacianNegated is the negation of KernelLaplacian
	KernelLaplacianNegated
	// KernelLaplacianDiagonal is [1,1,1,1,-8,1,1,1,1]
	KernelLaplacianDiagonal
	// KernelLaplacianDiagonalNegated is the negation of KernelLaplacianDiagonal
	KernelLaplacianDiagonalNegated
)

var laplacianMasks = map[Kernel][9]float64{
	KernelLaplacian:                {0, 1, 0, 1, -4, 1, 0, 1, 0},
	KernelLaplacianNegated:         {0, -1, 0, -1, 4, -1, 0, -1, 0},
	KernelLaplacianDiagonal:        {1, 1, 1, 1, -8, 1, 1, 1, 1},
	KernelLaplacianDiagonalNegated: {-1, -1, -1, -1, 8, -1, -1, -1, -1},
}

// Mask returns the 3x3 mask for k
func (k Kernel) Mask() ([9]float64, bool) {
	m, ok := laplacianMasks[k]
	return m, ok
}

// Direction selects the Sobel gradient component
type Direction int

const (
	// Combined is |Gx| + |Gy|
	Combined Direction = iota + 1
	// DirectionX is the horizontal gradient Gx
	DirectionX
	// DirectionY is the vertical gradient Gy
	DirectionY
)

var (
	sobelX = [9]float64{-1, 0, 1, -2, 0, 2, -1, 0, 1}
	sobelY = [9]float64{-1, -2, -1, 0, 0, 0, 1, 2, 1}
)

func checkRadius(radius int) error {
	if radius < 1 {
		return fmt.Errorf("%w: radius %d must be at least 1", pixel.ErrInvalidParameter, radius)
	}
	return nil
}

func dot(mask [9]float64, window []float64) float64 {
	sum := 0.0
	for i, m := range mask {
		sum += m * window[i]
	}
	return sum
}

// Convolve computes the dot product of mask with every 3x3 window
func Convolve(g pixel.GrayBuffer, mask [9]float64) (pixel.GrayBuffer, error) {
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return mapWindows(g, 1, func(w []float64) float64 {
		return dot(mask, w)
	}), nil
}

// Average replaces each pixel with the truncated mean of its window
func Average(g pixel.GrayBuffer, radius int) (pixel.GrayBuffer, error) {
	if err := checkRadius(radius); err != nil {
		return pixel.GrayBuffer{}, err
	}
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	return mapWindows(g, radius, func(w []float64) float64 {
		sum := 0.0
		for _, v := range w {
			sum += v
		}
		return math.Trunc(sum / float64(len(w)))
	}), nil
}

// Median replaces each pixel with the element at index len/2 of its sorted window
func Median(g pixel.GrayBuffer, radius int) (pixel.GrayBuffer, error) {
	if err := checkRadius(radius); err != nil {
		return pixel.GrayBuffer{}, err
	}
	if err := g.Validate(); err != nil {
		return pixel.GrayBuffer{}, err
	}
	side := 2*radius + 1
	middle := side * side / 2
	return mapWindows(g, radius, func(w []float64) float64 {
		slices.Sort(w)
		return w[middle]
	}), nil
}

// Highpass applies one of the Laplacian masks
func Highpass(g pixel.GrayBuffer, k Kernel) (pixel.GrayBuffer, error) {
	mask, ok := k.Mask()
	if !ok {
		return pixel.GrayBuffer{}, fmt.Errorf("%w: laplacian kernel %d not in 1-4", pixel.ErrInvalidParameter, int(k))
	}
	return Convolve(g, mask)
}

// Unsharp sharpens with o + (o - Average(o, 1))
func Unsharp(g pixel.GrayBuffer) (pixel.GrayBuffer, error) {
	blurred, err := Average(g, 1)
	if err != nil {
		return pixel.GrayBuffer{}, err
	}
	out := g.Blank()
	for i, v := range g.Pix {
		out.Pix[i] = v + (v - blurred.Pix[i])
	}
	return out, nil
}

// Highboost computes (a-1)*o + Highpass(o, KernelLaplacianNegated)
func Highboost(g pixel.GrayBuffer, a float64) (pixel.GrayBuffer, error) {
	if math.IsNaN(a) || math.IsInf(a, 0) || a < 1 {
		return pixel.GrayBuffer{}, fmt.Errorf("%w: highboost factor %v must be at least 1", pixel.ErrInvalidParameter, a)
	}
	hp, err := Highpass(g, KernelLaplacianNegated)
	if err != nil {
		return pixel.GrayBuffer{}, err
	}
	out := g.Blank()
	for i, v := range g.Pix {
		out.Pix[i] = (a-1)*v + hp.Pix[i]
	}
	return out, nil
}

// Gradient applies the Sobel operator. Combined uses the L1 magnitude |Gx|+|Gy|.
func Gradient(g pixel.GrayBuffer, dir Direction) (pixel.GrayBuffer, error) {
	switch dir {
	case DirectionX:
		return Convolve(g, sobelX)
	case DirectionY:
		return Convolve(g, sobelY)
	case Combined:
		if err := g.Validate(); err != nil {
			return pixel.GrayBuffer{}, err
		}
		return mapWindows(g, 1, func(w []float64) float64 {
			return math.Abs(dot(sobelX, w)) + math.Abs(dot(sobelY, w))
		}), nil
	default:
		return pixel.GrayBuffer{}, fmt.Errorf("%w: gradient direction %d", pixel.ErrInvalidParameter, int(dir))
	}
}
