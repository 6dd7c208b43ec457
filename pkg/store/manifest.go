package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest is returned for manifest entries that cannot be loaded
var ErrInvalidManifest = errors.New("invalid template manifest")

// Manifest lists templates to load into a Catalog.
//
//	templates:
//	  greeting:
//	    source: "Hello {{titlecase name}}"
//	  page:
//	    file: page.hbs
//	    ttl: 1h
type Manifest struct {
	Templates map[string]ManifestEntry `yaml:"templates"`

	// BaseDir resolves relative entry files
	BaseDir string `yaml:"-"`
}

// ManifestEntry is one template of a Manifest. Exactly one of Source and File is set.
type ManifestEntry struct {
	Source string        `yaml:"source"`
	File   string        `yaml:"file"`
	TTL    time.Duration `yaml:"ttl"`
}

// ParseManifest parses YAML manifest data
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &m, nil
}

// LoadManifest reads a manifest file. Entry files resolve against the
// manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.BaseDir = filepath.Dir(path)

	return m, nil
}

// Names returns the sorted template names of the manifest
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Templates))
	for name := range m.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manifest) source(name string, entry ManifestEntry) (string, error) {
	switch {
	case entry.Source != "" && entry.File != "":
		return "", fmt.Errorf("%w: %s sets both source and file", ErrInvalidManifest, name)
	case entry.Source != "":
		return entry.Source, nil
	case entry.File != "":
		path := entry.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.BaseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrInvalidManifest, name, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s has neither source nor file", ErrInvalidManifest, name)
	}
}

// PutManifest precompiles and stores every template of m, in name order.
// It stops at the first failure.
func (c *Catalog) PutManifest(ctx context.Context, m *Manifest) error {
	for _, name := range m.Names() {
		entry := m.Templates[name]

		source, err := m.source(name, entry)
		if err != nil {
			return err
		}

		if err := c.Put(ctx, name, source); err != nil {
			return err
		}

		if entry.TTL > 0 {
			if err := c.store.SetTTL(ctx, name, entry.TTL); err != nil {
				return fmt.Errorf("failed to set TTL of %s: %w", name, err)
			}
		}
	}

	return nil
}
