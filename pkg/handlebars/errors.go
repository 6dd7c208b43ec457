package handlebars

import "errors"

// Sentinel errors for template operations.
var (
	// ErrParse is returned when template source fails to parse.
	ErrParse = errors.New("template parse error")

	// ErrExecute is returned when template execution fails.
	ErrExecute = errors.New("template execution error")

	// ErrPrecompiled is returned when a precompiled template cannot be revived.
	ErrPrecompiled = errors.New("invalid precompiled template")
)
