package helpers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aymerick/raymond"
)

// Basename returns the last element of a path
func Basename(value interface{}) string {
	p := strings.TrimRight(stringify(value), string(filepath.Separator))
	if p == "" {
		return ""
	}
	return filepath.Base(p)
}

// Dirname returns the directory part of a path
func Dirname(value string) string {
	return filepath.Dir(value)
}

// Extname returns the extension of a path, including the leading dot.
// Leading dots of the basename never start an extension.
func Extname(value string) string {
	name := strings.TrimLeft(Basename(value), ".")
	return filepath.Ext(name)
}

// Braces wraps a value with curly braces
func Braces(value interface{}) string {
	return "{" + stringify(value) + "}"
}

// missing reports whether a helper was called without its argument.
// raymond then passes its options in the argument's place.
func missing(value interface{}) bool {
	_, ok := value.(*raymond.Options)
	return ok
}

// stringify coerces any helper argument to a string; nil becomes "null" and a
// missing argument becomes ""
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case *raymond.Options:
		return ""
	case string:
		return v
	case raymond.SafeString:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
