// Package codec defines the common surface of the lossless compression
// codecs: the Codec interface, a registry keyed by name and container
// magic, size accounting and an optional zstd entropy stage.
package codec

import (
	"fmt"

	"github.com/cocosip/go-pcx-codec/internal/zstdpool"
	"github.com/cocosip/go-pcx-codec/pixel"
)

// Codec is the universal interface for the compression codecs
type Codec interface {
	// Encode compresses an RGB image into a self-describing container
	Encode(params EncodeParams) ([]byte, error)

	// Decode restores the image held by a container
	Decode(data []byte) (*DecodeResult, error)

	// Magic returns the 4-byte tag that starts every container of this codec
	Magic() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	Image   pixel.RGBBuffer
	Options Options // Codec-specific options, nil for defaults
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	Image pixel.RGBBuffer
	Stats SizeStats // size statistics of the decoded stream
}

// BaseOptions provides common options for all codecs
type BaseOptions struct {
	// Entropy wraps the container in a zstd frame
	Entropy bool

	// Level is the zstd level: 0 = default, 1 = fastest ... 4 = best
	Level int
}

// Validate validates base options
func (o *BaseOptions) Validate() error {
	if o.Level < 0 || o.Level > zstdpool.MaxLevel {
		return fmt.Errorf("%w: entropy level %d not in 0-%d", ErrInvalidParameter, o.Level, zstdpool.MaxLevel)
	}
	return nil
}

// Base returns the embedded base options
func (o *BaseOptions) Base() *BaseOptions {
	return o
}

type baseOptioner interface {
	Base() *BaseOptions
}

// Seal validates opts and applies the entropy stage to a finished container
func Seal(container []byte, opts Options) ([]byte, error) {
	if opts == nil {
		return container, nil
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, ok := opts.(baseOptioner)
	if !ok || !b.Base().Entropy {
		return container, nil
	}
	return zstdpool.Compress(container, b.Base().Level), nil
}

// Unwrap strips the entropy stage if present
func Unwrap(data []byte) ([]byte, error) {
	if !zstdpool.IsFrame(data) {
		return data, nil
	}
	raw, err := zstdpool.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: entropy stage: %v", ErrCorruptStream, err)
	}
	return raw, nil
}
