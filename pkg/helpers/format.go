package helpers

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/aymerick/raymond"
)

var nonNumeric = regexp.MustCompile(`[^0-9.,]`)

// Numeric keeps only digits, "." and "," of a value. Falsy and missing values yield "".
func Numeric(value interface{}) string {
	if missing(value) || !raymond.IsTrue(value) {
		return ""
	}
	return nonNumeric.ReplaceAllString(stringify(value), "")
}

// JSON encodes data as a JSON string.
// Data that cannot be encoded is returned unchanged; missing data yields "".
func JSON(data interface{}) interface{} {
	if missing(data) {
		return ""
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(data); err != nil {
		return data
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
