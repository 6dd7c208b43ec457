// Package helpers provides the built-in Handlebars helpers.
//
// Every helper is a plain Go function usable on its own, and Library.Map exposes the
// whole catalog in the shape raymond expects.
//
// Example usage:
//
//	hb := handlebars.New(nil)
//	lib := helpers.New(hb.CompileFunc(), helpers.WithLogger(logger))
//	hb.RegisterHelpers(lib.Map())
//
//	helpers.Snakecase("fooBar")      // "foo_bar"
//	helpers.Basename("foo/bar.js")   // "bar.js"
//	helpers.JSON(map[string]int{"a": 1}) // `{"a":1}`
//
// Built-in helpers:
//   - basename, dirname, extname - Path manipulation
//   - braces - Wrap a value with "{" and "}"
//   - camelcase, pascalcase, snakecase, constcase, spinalcase, pathcase,
//     enumcase, sentencecase, titlecase, lowercase, uppercase - Case conversion
//   - numeric - Keep digits, "." and ","
//   - json - JSON encoding, falls back to the input value
//   - eval - Sandboxed expression evaluation (opt-in, see WithEvaluator)
//   - read - Read a file relative to the base directory
//   - render - Read a file and render it as a template with the current data
//
// File helpers resolve relative paths against the data root's private
// configuration ($$bud.cwd), falling back to the process working directory:
//
//	data := map[string]interface{}{
//	    "$$bud": map[string]interface{}{"cwd": "/srv/templates"},
//	}
//	// {{read "header.txt"}} reads /srv/templates/header.txt
package helpers
