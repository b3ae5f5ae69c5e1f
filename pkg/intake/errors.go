package intake

import "errors"

var (
	ErrMalformedMessage = errors.New("malformed toast message")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrNilSubmitter     = errors.New("intake submitter is nil")
)
