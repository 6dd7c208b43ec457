package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aymerick/raymond"
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/aescanero/dago-template-engine/internal/config"
	"github.com/aescanero/dago-template-engine/internal/eval"
	"github.com/aescanero/dago-template-engine/internal/logging"
	"github.com/aescanero/dago-template-engine/pkg/handlebars"
	"github.com/aescanero/dago-template-engine/pkg/helpers"
)

// Engine compiles Handlebars templates with the built-in helpers plus the
// helpers registered by the caller
type Engine struct {
	helpers map[string]interface{}
	custom  map[string]interface{}
	hbs     *handlebars.Handlebars

	cache        map[uint64]*cacheEntry
	cacheEnabled bool

	evaluator   helpers.Evaluator
	evalTimeout time.Duration
	logger      *zap.Logger
	metrics     MetricsRecorder

	mu sync.RWMutex
}

type cacheEntry struct {
	source string
	tmpl   *handlebars.Template
}

// New creates an engine. Built-in helpers are registered first, then the
// helpers given with WithHelpers.
func New(opts ...Option) *Engine {
	e := &Engine{
		custom:       make(map[string]interface{}),
		cache:        make(map[uint64]*cacheEntry),
		cacheEnabled: true,
		evalTimeout:  helpers.DefaultEvalTimeout,
		logger:       zap.NewNop(),
		metrics:      NoopMetrics{},
	}

	for _, opt := range opts {
		opt(e)
	}

	library := helpers.New(e.compileRender,
		helpers.WithLogger(e.logger),
		helpers.WithEvaluator(e.evaluator),
		helpers.WithEvalTimeout(e.evalTimeout),
	)

	e.helpers = library.Map()
	for name, helper := range e.custom {
		e.helpers[name] = helper
	}

	return e
}

// NewFromEnv creates an engine configured from TEMPLATE_* environment variables
func NewFromEnv() (*Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg)
}

// NewFromConfig creates an engine from a loaded configuration
func NewFromConfig(cfg *config.Config) (*Engine, error) {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	evaluator, err := eval.New(eval.Config{
		Backend:   cfg.EvalBackend,
		CostLimit: cfg.EvalCostLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize evaluator: %w", err)
	}

	opts := []Option{
		WithLogger(logger),
		WithEvalTimeout(cfg.EvalTimeout),
		WithCache(cfg.CacheEnabled),
	}
	if evaluator != nil {
		opts = append(opts, WithEvaluator(evaluator))
	}
	if cfg.MetricsEnabled {
		recorder, err := NewMetricsRecorder(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
		opts = append(opts, WithMetrics(recorder))
	}

	return New(opts...), nil
}

// RegisterHelper registers a helper, replacing any helper with the same name.
// Templates compiled afterwards see the new helper; templates compiled
// before keep the helpers they were compiled with.
func (e *Engine) RegisterHelper(name string, helper interface{}) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.helpers[name] = helper
	e.custom[name] = helper
	if e.hbs != nil {
		e.hbs.RegisterHelper(name, helper)
	}
	e.cache = make(map[uint64]*cacheEntry)

	return e
}

// RegisterHelpers registers every helper of the map
func (e *Engine) RegisterHelpers(helperSet map[string]interface{}) *Engine {
	for name, helper := range helperSet {
		e.RegisterHelper(name, helper)
	}
	return e
}

// Helpers returns a copy of the registered helpers
func (e *Engine) Helpers() map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snapshot := make(map[string]interface{}, len(e.helpers))
	for name, helper := range e.helpers {
		snapshot[name] = helper
	}
	return snapshot
}

// Compile compiles source. An empty source yields a nil template and no error.
func (e *Engine) Compile(source string) (*handlebars.Template, error) {
	if source == "" {
		return nil, nil
	}

	start := time.Now()
	cached := false
	tmpl, err := attempt(func() (tmpl *handlebars.Template, err error) {
		tmpl, cached, err = e.getTemplate(source)
		return tmpl, err
	})
	e.metrics.RecordCompile(context.Background(), time.Since(start), cached, err)
	if err != nil {
		e.logger.Debug("template compile failed", zap.Error(err))
		return nil, err
	}

	return tmpl, nil
}

// CompileCallback compiles source and reports the outcome to cb
func (e *Engine) CompileCallback(source string, cb func(err error, tmpl *handlebars.Template)) {
	attemptCallback(func() (*handlebars.Template, error) {
		return e.Compile(source)
	}, cb)
}

// Precompile validates source and serializes it into a precompiled template.
// An empty source yields an empty result and no error.
func (e *Engine) Precompile(source string) (string, error) {
	if source == "" {
		return "", nil
	}

	return attempt(func() (string, error) {
		return e.handle().Precompile(source)
	})
}

// PrecompileCallback precompiles source and reports the outcome to cb
func (e *Engine) PrecompileCallback(source string, cb func(err error, precompiled string)) {
	attemptCallback(func() (string, error) {
		return e.Precompile(source)
	}, cb)
}

// Revive compiles a precompiled template with the helpers of this engine
func (e *Engine) Revive(precompiled string) (*handlebars.Template, error) {
	return attempt(func() (*handlebars.Template, error) {
		return e.handle().Revive(precompiled)
	})
}

// Render compiles source and renders it with data
func (e *Engine) Render(source string, data interface{}) (string, error) {
	tmpl, err := e.Compile(source)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}
	if tmpl == nil {
		return "", nil
	}

	start := time.Now()
	result, err := tmpl.Exec(data)
	e.metrics.RecordRender(context.Background(), time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(source string) error {
	_, err := raymond.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: %w", handlebars.ErrParse, err)
	}
	return nil
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[uint64]*cacheEntry)
}

// Clone returns an independent engine with the same options and helpers.
// The render helper of the clone compiles through the clone.
func (e *Engine) Clone() *Engine {
	e.mu.RLock()
	custom := make(map[string]interface{}, len(e.custom))
	for name, helper := range e.custom {
		custom[name] = helper
	}
	e.mu.RUnlock()

	opts := []Option{
		WithHelpers(custom),
		WithLogger(e.logger),
		WithEvalTimeout(e.evalTimeout),
		WithCache(e.cacheEnabled),
		WithMetrics(e.metrics),
	}
	if e.evaluator != nil {
		opts = append(opts, WithEvaluator(e.evaluator))
	}

	return New(opts...)
}

// handle returns the underlying handlebars handle, creating it on first use
func (e *Engine) handle() *handlebars.Handlebars {
	e.mu.RLock()
	hbs := e.hbs
	e.mu.RUnlock()
	if hbs != nil {
		return hbs
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hbs == nil {
		e.hbs = handlebars.New(e.helpers)
		e.logger.Debug("handlebars instance created", zap.Int("helpers", len(e.helpers)))
	}
	return e.hbs
}

// getTemplate gets a compiled template from cache or compiles it.
// cached reports whether the cache served the template.
func (e *Engine) getTemplate(source string) (tmpl *handlebars.Template, cached bool, err error) {
	hbs := e.handle()

	if !e.cacheEnabled {
		tmpl, err = hbs.Compile(source)
		return tmpl, false, err
	}

	key := xxhash.Sum64String(source)

	// Check cache first (read lock)
	e.mu.RLock()
	if entry, ok := e.cache[key]; ok && entry.source == source {
		e.mu.RUnlock()
		return entry.tmpl, true, nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if entry, ok := e.cache[key]; ok && entry.source == source {
		return entry.tmpl, true, nil
	}

	tmpl, err = hbs.Compile(source)
	if err != nil {
		return nil, false, err
	}

	e.cache[key] = &cacheEntry{source: source, tmpl: tmpl}
	e.logger.Debug("template compiled", zap.Uint64("key", key), zap.Int("size", len(source)))

	return tmpl, false, nil
}

// compileRender adapts Compile for the render helper
func (e *Engine) compileRender(source string) (helpers.RenderFunc, error) {
	tmpl, err := e.Compile(source)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return func(interface{}, int) (string, error) { return "", nil }, nil
	}
	return tmpl.ExecNested, nil
}
