package entities

import "errors"

var (
	// ErrMissingSheet is returned when an input sheet or file is absent
	ErrMissingSheet = errors.New("missing sheet")
	// ErrMissingColumn is returned when a required column is absent from a sheet
	ErrMissingColumn = errors.New("missing column")
	// ErrInvalidParameters is returned for inconsistent planning parameters
	ErrInvalidParameters = errors.New("invalid planning parameters")
	// ErrCapacityExceeded is returned when a commit would break the tolerance or the floor
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
