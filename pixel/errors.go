package pixel

import "errors"

// Common errors
var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrSizeMismatch      = errors.New("pixel count does not match dimensions")
	ErrUnknownChannel    = errors.New("unknown color channel")
)
