package contract

import "errors"

var (
	ErrEmptyInput      = errors.New("user input is empty")
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrEmptyCompletion = errors.New("model returned no choices")
	ErrDuplicateTool   = errors.New("duplicate tool name")
)
