package film

import "errors"

var (
	ErrNotFound        = errors.New("not_found")
	ErrInvalidArgument = errors.New("invalid_argument")
	ErrConflict        = errors.New("conflict")
)
