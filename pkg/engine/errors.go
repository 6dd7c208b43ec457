package engine

import "errors"

// ErrPanic is returned when compiling or precompiling panics.
// The recovered value is wrapped when it is an error.
var ErrPanic = errors.New("template engine panicked")
