package pcx

import "errors"

// ErrDecode matches every error produced while decoding a PCX file
var ErrDecode = errors.New("pcx: decode error")

// DecodeError reports why a PCX file could not be decoded
type DecodeError string

func (e DecodeError) Error() string {
	return "pcx: " + string(e)
}

// Is makes every DecodeError match ErrDecode
func (e DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Decode errors
var (
	ErrTruncatedHeader   error = DecodeError("truncated header")
	ErrTruncatedData     error = DecodeError("truncated image data")
	ErrUnsupportedFormat error = DecodeError("unsupported pixel format")
	ErrInvalidPalette    error = DecodeError("missing or invalid eof palette marker")
	ErrInvalidHeader     error = DecodeError("invalid header")
)
