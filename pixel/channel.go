package pixel

import "fmt"

// Channel selects one component of an RGB pixel
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// String returns the channel name
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

func (c Channel) valid() bool {
	return c >= Red && c <= Blue
}

func (c Channel) of(p Color) uint8 {
	switch c {
	case Red:
		return p.R
	case Green:
		return p.G
	default:
		return p.B
	}
}

// Values returns the samples of one channel in pixel order
func (b RGBBuffer) Values(ch Channel) ([]uint8, error) {
	if !ch.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownChannel, ch)
	}
	out := make([]uint8, len(b.Pix))
	for i, p := range b.Pix {
		out[i] = ch.of(p)
	}
	return out, nil
}

// Isolate keeps one channel and zeroes the other two
func (b RGBBuffer) Isolate(ch Channel) (RGBBuffer, error) {
	if !ch.valid() {
		return RGBBuffer{}, fmt.Errorf("%w: %v", ErrUnknownChannel, ch)
	}
	out := RGBBuffer{Width: b.Width, Height: b.Height, Pix: make([]Color, len(b.Pix))}
	for i, p := range b.Pix {
		switch ch {
		case Red:
			out.Pix[i] = Color{R: p.R}
		case Green:
			out.Pix[i] = Color{G: p.G}
		case Blue:
			out.Pix[i] = Color{B: p.B}
		}
	}
	return out, nil
}

// Histogram counts the samples of one channel
func (b RGBBuffer) Histogram(ch Channel) ([256]int, error) {
	var hist [256]int
	if !ch.valid() {
		return hist, fmt.Errorf("%w: %v", ErrUnknownChannel, ch)
	}
	for _, p := range b.Pix {
		hist[ch.of(p)]++
	}
	return hist, nil
}

// Histogram counts the quantized intensities of b
func (b GrayBuffer) Histogram() [256]int {
	var hist [256]int
	for _, v := range b.Pix {
		hist[Clamp8(v)]++
	}
	return hist
}
