// Package engine provides the template engine adapter used by hosts.
//
// An Engine merges the built-in helpers with caller supplied helpers, creates
// the underlying Handlebars instance on first use and compiles or precompiles
// templates. Panics raised while compiling are recovered and returned as
// errors wrapping ErrPanic; syntax errors wrap handlebars.ErrParse.
//
// Example usage:
//
//	e := engine.New(engine.WithHelpers(map[string]interface{}{
//	    "toLowercase": strings.ToLower,
//	}))
//
//	tmpl, err := e.Compile("Here are {{toLowercase name}}.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, _ := tmpl.Exec(map[string]interface{}{"name": "Red Apples"})
//	// out: "Here are red apples."
//
// The callback forms report the outcome instead of returning it:
//
//	e.CompileCallback("{{#if}}", func(err error, tmpl *handlebars.Template) {
//	    // err != nil, tmpl == nil
//	})
//
// Helpers registered after a template was compiled only apply to templates
// compiled afterwards. Compiled templates are cached by source until the next
// helper registration or ClearCache.
package engine
