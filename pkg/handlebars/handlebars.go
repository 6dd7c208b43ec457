package handlebars

import (
	"fmt"
	"sync"

	"github.com/aymerick/raymond"

	"github.com/aescanero/dago-template-engine/pkg/helpers"
)

// Handlebars is a template engine handle bound to a set of helpers.
// Each compiled template gets a snapshot of the helpers registered at compile time.
type Handlebars struct {
	helpers map[string]interface{}
	mu      sync.RWMutex
}

// Default is the shared instance with the built-in helpers registered
var Default = Create()

// New creates a handle registered with the given helpers
func New(helperSet map[string]interface{}) *Handlebars {
	h := &Handlebars{
		helpers: make(map[string]interface{}, len(helperSet)),
	}
	h.RegisterHelpers(helperSet)
	return h
}

// Create creates a handle with the built-in helpers registered.
// The render helper of the new handle compiles through the handle itself.
func Create(opts ...helpers.Option) *Handlebars {
	h := New(nil)
	h.RegisterHelpers(helpers.New(h.CompileFunc(), opts...).Map())
	return h
}

// RegisterHelper registers a helper, replacing any helper with the same name
func (h *Handlebars) RegisterHelper(name string, helper interface{}) *Handlebars {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.helpers[name] = helper
	return h
}

// RegisterHelpers registers every helper of the map
func (h *Handlebars) RegisterHelpers(helperSet map[string]interface{}) *Handlebars {
	for name, helper := range helperSet {
		h.RegisterHelper(name, helper)
	}
	return h
}

// Helpers returns a copy of the registered helpers
func (h *Handlebars) Helpers() map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snapshot := make(map[string]interface{}, len(h.helpers))
	for name, helper := range h.helpers {
		snapshot[name] = helper
	}
	return snapshot
}

// Compile parses source and binds the current helpers to it.
// raymond panics on helpers that are not valid functions; callers that need
// an error instead must recover.
func (h *Handlebars) Compile(source string) (*Template, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	tpl.RegisterHelpers(h.Helpers())

	return &Template{tpl: tpl, source: source}, nil
}

// CompileFunc adapts Compile for the render helper
func (h *Handlebars) CompileFunc() helpers.CompileFunc {
	return func(source string) (helpers.RenderFunc, error) {
		tmpl, err := h.Compile(source)
		if err != nil {
			return nil, err
		}
		return tmpl.ExecNested, nil
	}
}

// Precompile validates source and serializes it into a precompiled template
func (h *Handlebars) Precompile(source string) (string, error) {
	if _, err := raymond.Parse(source); err != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}
	return encodePrecompiled(source)
}

// Revive turns a precompiled template back into a compiled one, using the
// helpers of this handle
func (h *Handlebars) Revive(precompiled string) (*Template, error) {
	source, err := decodePrecompiled(precompiled)
	if err != nil {
		return nil, err
	}
	return h.Compile(source)
}

// Compile compiles source with the default handle
func Compile(source string) (*Template, error) {
	return Default.Compile(source)
}
