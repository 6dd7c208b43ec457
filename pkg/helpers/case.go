package helpers

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Camelcase converts to camel case: foo_bar -> fooBar
func Camelcase(value string) string {
	return strcase.ToLowerCamel(value)
}

// Pascalcase converts to pascal case: foo_bar -> FooBar
func Pascalcase(value string) string {
	return strcase.ToCamel(value)
}

// Snakecase converts to snake case: fooBar -> foo_bar
func Snakecase(value string) string {
	return strcase.ToSnake(value)
}

// Constcase converts to constant case: fooBar -> FOO_BAR
func Constcase(value string) string {
	return strcase.ToScreamingSnake(value)
}

// Spinalcase converts to spinal case: foo_bar -> foo-bar
func Spinalcase(value string) string {
	return strcase.ToKebab(value)
}

// Pathcase converts to path case: foo_bar -> foo/bar
func Pathcase(value string) string {
	return strcase.ToDelimited(value, '/')
}

// Enumcase converts to enum case: foo_bar -> foo:bar
func Enumcase(value string) string {
	return strcase.ToDelimited(value, ':')
}

// Sentencecase converts to sentence case: foo_bar -> Foo bar
func Sentencecase(value string) string {
	words := strcase.ToDelimited(value, ' ')
	first, size := utf8.DecodeRuneInString(words)
	if size == 0 {
		return words
	}
	return string(unicode.ToUpper(first)) + words[size:]
}

// Titlecase converts to title case: foo_bar -> Foo Bar
func Titlecase(value string) string {
	// Casers carry state and are not shared between goroutines
	return cases.Title(language.Und).String(strcase.ToDelimited(value, ' '))
}

// Lowercase lower cases the whole string
func Lowercase(value string) string {
	return strings.ToLower(value)
}

// Uppercase upper cases the whole string
func Uppercase(value string) string {
	return strings.ToUpper(value)
}
