package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aescanero/dago-template-engine/pkg/handlebars"
)

// ErrEmptySource is returned when putting a template without source
var ErrEmptySource = errors.New("empty template source")

// Compiler precompiles template source and revives precompiled templates.
// Both *engine.Engine and *handlebars.Handlebars satisfy it.
type Compiler interface {
	Precompile(source string) (string, error)
	Revive(precompiled string) (*handlebars.Template, error)
}

// Catalog stores templates in precompiled form and revives them on demand
type Catalog struct {
	store    Store
	compiler Compiler
}

// NewCatalog creates a catalog over store
func NewCatalog(store Store, compiler Compiler) *Catalog {
	return &Catalog{
		store:    store,
		compiler: compiler,
	}
}

// Put precompiles source and stores it under name
func (c *Catalog) Put(ctx context.Context, name, source string) error {
	if source == "" {
		return fmt.Errorf("%w: %s", ErrEmptySource, name)
	}

	precompiled, err := c.compiler.Precompile(source)
	if err != nil {
		return fmt.Errorf("failed to precompile %s: %w", name, err)
	}

	return c.store.Save(ctx, name, precompiled)
}

// Get loads the template stored under name and compiles it
func (c *Catalog) Get(ctx context.Context, name string) (*handlebars.Template, error) {
	precompiled, err := c.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	tmpl, err := c.compiler.Revive(precompiled)
	if err != nil {
		return nil, fmt.Errorf("failed to revive %s: %w", name, err)
	}

	return tmpl, nil
}

// Render loads the template stored under name and renders it with data
func (c *Catalog) Render(ctx context.Context, name string, data interface{}) (string, error) {
	tmpl, err := c.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return tmpl.Exec(data)
}
