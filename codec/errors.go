package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when encoding/decoding parameters are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedFormat is returned when a container is not recognized
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrCorruptStream is returned when an encoded stream cannot be decoded
	ErrCorruptStream = errors.New("corrupt stream")
)
