package model

import "errors"

// Error taxonomy shared across components. Callers classify with
// errors.Is; the tool boundary maps these onto the protocol error
// envelope.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)
