package core

import "errors"

var (
	ErrUnknownClass = errors.New("unknown highlight class")
)
