package resolution

import "errors"

// Resolution domain errors
var (
	ErrMissingDate = errors.New("attendance date is required")
	ErrInvalidDate = errors.New("attendance date could not be parsed")
)
