package helpers

import (
	"os"
	"reflect"

	"github.com/aymerick/raymond"
	"github.com/mitchellh/mapstructure"
)

const (
	// RootDataKey is the private data frame key holding the data root of a render
	RootDataKey = "root"

	// DepthDataKey is the private data frame key holding the render helper nesting level
	DepthDataKey = "renderDepth"

	// BudKey is the data root key holding private engine configuration
	BudKey = "$$bud"
)

// BudConfig is the private configuration a data root may carry under BudKey
type BudConfig struct {
	Cwd string `mapstructure:"cwd" json:"cwd"`
}

// RenderContext is the ambient context handed to helpers during a render
type RenderContext struct {
	root  interface{}
	depth int
}

// NewRenderContext creates a render context for the given data root
func NewRenderContext(root interface{}) *RenderContext {
	return &RenderContext{root: root}
}

// ContextFromOptions builds a render context from raymond helper options
func ContextFromOptions(options *raymond.Options) *RenderContext {
	if options == nil {
		return nil
	}

	frame := options.DataFrame()
	if frame == nil {
		return &RenderContext{}
	}

	depth, _ := frame.Get(DepthDataKey).(int)
	return &RenderContext{root: frame.Get(RootDataKey), depth: depth}
}

// Root returns the data root, or nil when there is none
func (c *RenderContext) Root() interface{} {
	if c == nil {
		return nil
	}
	return c.root
}

// Depth returns how many render helper calls enclose the current render
func (c *RenderContext) Depth() int {
	if c == nil {
		return 0
	}
	return c.depth
}

// Bud returns the private configuration found in the data root, or nil
func (c *RenderContext) Bud() *BudConfig {
	raw := lookupKey(c.Root(), BudKey)
	if raw == nil {
		return nil
	}

	switch v := raw.(type) {
	case *BudConfig:
		return v
	case BudConfig:
		return &v
	}

	var cfg BudConfig
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return nil
	}
	return &cfg
}

// BaseDir resolves the directory relative helper paths are resolved against.
// The data root's $$bud.cwd wins; otherwise the process working directory is used.
func BaseDir(ctx *RenderContext) string {
	if bud := ctx.Bud(); bud != nil && bud.Cwd != "" {
		return bud.Cwd
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// lookupKey reads key from any string-keyed map, following pointers and interfaces
func lookupKey(root interface{}, key string) interface{} {
	if m, ok := root.(map[string]interface{}); ok {
		return m[key]
	}

	val := reflect.ValueOf(root)
	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Map || val.Type().Key().Kind() != reflect.String {
		return nil
	}

	item := val.MapIndex(reflect.ValueOf(key).Convert(val.Type().Key()))
	if !item.IsValid() {
		return nil
	}
	return item.Interface()
}
