package bwproc

import "errors"

// Precondition errors. Functions wrap them with details, test with errors.Is.
var (
	ErrInvalidRotation   = errors.New("invalid rotation")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrOutOfBounds       = errors.New("index out of bounds")
	ErrLayerMismatch     = errors.New("contrast layer mismatch")
	ErrInvalidParameter  = errors.New("invalid parameter")
)
