package interaction

import "errors"

var (
	ErrLocked           = errors.New("question is already submitted")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrRowOutOfRange    = errors.New("row index out of range")
	ErrMissingContent   = errors.New("question content does not match its type")
)
