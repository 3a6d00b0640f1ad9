package rle

import (
	"fmt"

	"github.com/cocosip/go-pcx-codec/codec"
	"github.com/cocosip/go-pcx-codec/pixel"
)

// Magic starts every run-length container
const Magic = "PRLE"

var _ codec.Codec = (*Codec)(nil)

// Codec implements the codec.Codec interface for run-length encoding
type Codec struct{}

// NewCodec creates a new run-length codec
func NewCodec() *Codec {
	return &Codec{}
}

// Options contains encoding options for the run-length codec
type Options struct {
	codec.BaseOptions
}

// Validate validates the options
func (o *Options) Validate() error {
	return o.BaseOptions.Validate()
}

// Marshal serializes a stream and its palette into a container
func Marshal(s Stream, palette pixel.Palette, width, height int) []byte {
	w := codec.NewWriter(Magic, width, height)
	w.Uvarint(uint64(len(palette)))
	for _, c := range palette {
		w.Color(c)
	}
	w.Uvarint(uint64(len(s)))
	for _, r := range s {
		w.Uvarint(uint64(r.Length))
		w.Uvarint(uint64(r.Index))
	}
	return w.Bytes()
}

// Unmarshal parses a container produced by Marshal
func Unmarshal(data []byte) (Stream, pixel.Palette, int, int, error) {
	r, err := codec.NewReader(data, Magic)
	if err != nil {
		return nil, nil, 0, 0, err
	}

	n, err := r.Int()
	if err != nil {
		return nil, nil, 0, 0, err
	}
	if n > r.Remaining()/3 {
		return nil, nil, 0, 0, fmt.Errorf("%w: palette of %d colors exceeds container", codec.ErrCorruptStream, n)
	}
	palette := make(pixel.Palette, n)
	for i := range palette {
		if palette[i], err = r.Color(); err != nil {
			return nil, nil, 0, 0, err
		}
	}

	runs, err := r.Int()
	if err != nil {
		return nil, nil, 0, 0, err
	}
	// every run takes at least two bytes
	if runs > r.Remaining()/2 {
		return nil, nil, 0, 0, fmt.Errorf("%w: %d runs exceed container", codec.ErrCorruptStream, runs)
	}
	s := make(Stream, runs)
	for i := range s {
		if s[i].Length, err = r.Int(); err != nil {
			return nil, nil, 0, 0, err
		}
		if s[i].Index, err = r.Int(); err != nil {
			return nil, nil, 0, 0, err
		}
	}

	return s, palette, r.Width, r.Height, nil
}

// Encode encodes an image into a run-length container
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if err := params.Image.Validate(); err != nil {
		return nil, err
	}
	s, palette, _ := Encode(params.Image)
	return codec.Seal(Marshal(s, palette, params.Image.Width, params.Image.Height), params.Options)
}

// Decode decodes a run-length container
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	raw, err := codec.Unwrap(data)
	if err != nil {
		return nil, err
	}
	s, palette, width, height, err := Unmarshal(raw)
	if err != nil {
		return nil, err
	}
	img, err := Decode(s, palette, width, height)
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{Image: img, Stats: Stats(s, palette)}, nil
}

// Magic returns the container tag
func (c *Codec) Magic() string {
	return Magic
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "rle"
}

// Register registers this codec with the global registry
func init() {
	codec.Register(NewCodec())
}
