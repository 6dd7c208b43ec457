package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no precompiled template is stored under a name
var ErrNotFound = errors.New("precompiled template not found")

// Store persists precompiled templates by name
type Store interface {
	// Save stores a precompiled template, replacing any previous one
	Save(ctx context.Context, name, precompiled string) error

	// Load returns the precompiled template stored under name
	Load(ctx context.Context, name string) (string, error)

	// Delete removes the template stored under name
	Delete(ctx context.Context, name string) error

	// Exists reports whether a template is stored under name
	Exists(ctx context.Context, name string) (bool, error)

	// List returns the names of every stored template
	List(ctx context.Context) ([]string, error)

	// SetTTL expires the template stored under name after ttl
	SetTTL(ctx context.Context, name string, ttl time.Duration) error
}
