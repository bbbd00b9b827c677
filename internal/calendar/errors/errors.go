package errors

import "errors"

var (
	ErrNotFound  = errors.New("calendar entry not found")
	ErrInvalidID = errors.New("invalid calendar entry ID")
)
