package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/aescanero/dago-template-engine/pkg/helpers"
)

// Option configures an Engine
type Option func(*Engine)

// WithHelpers registers helpers on top of the built-ins.
// A helper named like a built-in replaces it.
func WithHelpers(helperSet map[string]interface{}) Option {
	return func(e *Engine) {
		for name, helper := range helperSet {
			e.custom[name] = helper
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEvaluator enables the eval helper
func WithEvaluator(evaluator helpers.Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = evaluator
	}
}

// WithEvalTimeout bounds each eval helper call
func WithEvalTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.evalTimeout = timeout
		}
	}
}

// WithCache enables or disables the compiled-template cache
func WithCache(enabled bool) Option {
	return func(e *Engine) {
		e.cacheEnabled = enabled
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(recorder MetricsRecorder) Option {
	return func(e *Engine) {
		if recorder != nil {
			e.metrics = recorder
		}
	}
}
