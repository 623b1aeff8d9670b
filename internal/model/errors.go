package model

import "errors"

// ErrInvalidArgument is matched by every InvalidArgumentError.  Handlers
// translate it into an HTTP 400 response.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a value rejected before it could be
// stored on a record.  It is a caller bug and never worth retrying.
type InvalidArgumentError struct {
	Field   string
	Message string
}

func (e *InvalidArgumentError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrInvalidArgument) match any field.
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func invalid(field, msg string) error {
	return &InvalidArgumentError{Field: field, Message: msg}
}
