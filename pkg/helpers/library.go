package helpers

import (
	"errors"
	"sort"
	"time"

	"github.com/aymerick/raymond"
	"go.uber.org/zap"
)

// ErrRender is raised by the render helper when a nested template fails
var ErrRender = errors.New("render helper failed")

// DefaultEvalTimeout bounds a single eval helper call
const DefaultEvalTimeout = time.Second

// MaxRenderDepth is how many render helper calls may be nested in one render
const MaxRenderDepth = 32

// RenderFunc renders a compiled template against data.
// depth is the nesting level of the render helper call that asked for it.
type RenderFunc func(data interface{}, depth int) (string, error)

// CompileFunc compiles template source for the render helper
type CompileFunc func(source string) (RenderFunc, error)

// Library is the built-in helper catalog.
// The compiler used by the render helper is injected, so the library never
// depends on a particular engine instance.
type Library struct {
	compile     CompileFunc
	evaluator   Evaluator
	evalTimeout time.Duration
	logger      *zap.Logger
}

// Option configures a Library
type Option func(*Library)

// WithLogger sets the logger used for helper warnings
func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithEvaluator enables the eval helper
func WithEvaluator(evaluator Evaluator) Option {
	return func(l *Library) {
		l.evaluator = evaluator
	}
}

// WithEvalTimeout sets the eval helper timeout
func WithEvalTimeout(timeout time.Duration) Option {
	return func(l *Library) {
		if timeout > 0 {
			l.evalTimeout = timeout
		}
	}
}

// New creates a helper library whose render helper compiles with compile
func New(compile CompileFunc, opts ...Option) *Library {
	l := &Library{
		compile:     compile,
		evalTimeout: DefaultEvalTimeout,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Map returns the catalog as raymond helpers, keyed by helper name
func (l *Library) Map() map[string]interface{} {
	return map[string]interface{}{
		"basename": func(value interface{}) string {
			return Basename(value)
		},
		"braces": func(value interface{}) string {
			return Braces(value)
		},
		"dirname": Dirname,
		"extname": Extname,

		"camelcase":    Camelcase,
		"constcase":    Constcase,
		"enumcase":     Enumcase,
		"lowercase":    Lowercase,
		"pascalcase":   Pascalcase,
		"pathcase":     Pathcase,
		"sentencecase": Sentencecase,
		"snakecase":    Snakecase,
		"spinalcase":   Spinalcase,
		"titlecase":    Titlecase,
		"uppercase":    Uppercase,

		"json": func(data interface{}) interface{} {
			return JSON(data)
		},
		"numeric": func(value interface{}) string {
			return Numeric(value)
		},

		"eval": func(script string, options *raymond.Options) string {
			result := l.Eval(script, ContextFromOptions(options))
			if result == nil {
				return ""
			}
			return result.(string)
		},
		"read": func(path string, options *raymond.Options) string {
			return l.Read(path, ContextFromOptions(options))
		},
		"render": func(path string, options *raymond.Options) string {
			return l.Render(path, ContextFromOptions(options))
		},
	}
}

// Names returns the sorted names of the built-in helpers
func Names() []string {
	catalog := New(nil).Map()

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
