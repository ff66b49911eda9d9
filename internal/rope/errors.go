package rope

import "errors"

var (
	// ErrInvalidReference is returned when an edit names a point that is not
	// in the chain, or needs a selected point and none is set.
	ErrInvalidReference = errors.New("rope: invalid point reference")

	// ErrInvalidParams is returned for impossible construction parameters or
	// non-finite positions.
	ErrInvalidParams = errors.New("rope: invalid parameters")
)
