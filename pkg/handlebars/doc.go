// Package handlebars wraps raymond, a Go implementation of Handlebars.
//
// A Handlebars handle owns a set of helpers. Compiling snapshots that set into the
// parsed template, so helpers registered later only affect later compilations.
//
// Example usage:
//
//	hb := handlebars.Create() // built-in helpers
//	hb.RegisterHelper("shout", func(s string) string { return strings.ToUpper(s) + "!" })
//
//	tmpl, err := hb.Compile("Hi {{shout name}} ({{snakecase kind}})")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := tmpl.Exec(map[string]interface{}{"name": "bob", "kind": "someKind"})
//	// Output: Hi BOB! (some_kind)
//
// Precompiled templates are standalone strings that can be persisted and revived
// later by any handle:
//
//	src, _ := hb.Precompile("{{name}}")
//	// src: Handlebars.template("...")
//	tmpl, _ := handlebars.Default.Revive(src)
//
// Default is a shared handle with the built-in helpers registered.
package handlebars
