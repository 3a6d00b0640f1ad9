// Package spatial implements neighborhood filters over grayscale buffers.
//
// Every filter reads a square window around each pixel through Neighbors.
// Pixels outside the image are replaced by zero (the window is zero padded,
// never clamped or mirrored). Results are not clamped to [0,255].
package spatial

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cocosip/go-pcx-codec/pixel"
)

// Neighbors returns the (2*radius+1)^2 window centered at (x, y) in
// row-major order, using pad for coordinates outside the image.
func Neighbors(g pixel.GrayBuffer, x, y, radius int, pad float64) []float64 {
	side := 2*radius + 1
	return neighborsInto(make([]float64, 0, side*side), g, x, y, radius, pad)
}

func neighborsInto(dst []float64, g pixel.GrayBuffer, x, y, radius int, pad float64) []float64 {
	dst = dst[:0]
	for ny := y - radius; ny <= y+radius; ny++ {
		for nx := x - radius; nx <= x+radius; nx++ {
			if nx < 0 || nx >= g.Width || ny < 0 || ny >= g.Height {
				dst = append(dst, pad)
				continue
			}
			dst = append(dst, g.Pix[ny*g.Width+nx])
		}
	}
	return dst
}

// windowFunc computes one output pixel from its zero padded window
type windowFunc func(window []float64) float64

// mapWindows applies fn to the window of every pixel. Rows are independent,
// so they are spread over GOMAXPROCS goroutines; each row owns its slice of
// the output and its own scratch window.
func mapWindows(g pixel.GrayBuffer, radius int, fn windowFunc) pixel.GrayBuffer {
	out := g.Blank()
	side := 2*radius + 1

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < g.Height; y++ {
		eg.Go(func() error {
			window := make([]float64, 0, side*side)
			row := out.Pix[y*g.Width : (y+1)*g.Width]
			for x := range row {
				window = neighborsInto(window, g, x, y, radius, 0)
				row[x] = fn(window)
			}
			return nil
		})
	}
	_ = eg.Wait()

	return out
}
