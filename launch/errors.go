package launch

import "errors"

var (
	// ErrShapeNotSet is returned when SHAPE is missing.
	ErrShapeNotSet = errors.New("shape is not set")
	// ErrImageNameNotSet is returned when no image name could be obtained.
	ErrImageNameNotSet = errors.New("couldn't get image name")
	// ErrInvalidParameter is returned for a setting that cannot be parsed.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNotFound is returned when a lookup yields no usable result.
	ErrNotFound = errors.New("not found")
)
