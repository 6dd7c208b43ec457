// Package eval selects the expression evaluator backing the eval helper.
//
// Backends:
//   - "" - disabled, the eval helper renders nothing
//   - "cel" - Common Expression Language (cost limited, deadline aware)
//   - "expr" - github.com/antonmedv/expr
//
// Neither backend can touch the filesystem, the network or processes.
package eval

import (
	"context"
	"errors"
	"fmt"

	"github.com/aescanero/dago-template-engine/internal/eval/cel"
	"github.com/aescanero/dago-template-engine/internal/eval/expr"
)

// Backend names
const (
	BackendNone = ""
	BackendCEL  = "cel"
	BackendExpr = "expr"
)

// ErrUnknownBackend is returned for unsupported backend names
var ErrUnknownBackend = errors.New("unknown eval backend")

// Evaluator evaluates an expression against variables
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error)
}

// Config selects and tunes a backend
type Config struct {
	Backend   string
	CostLimit uint64
}

// New creates the evaluator for cfg. A disabled backend yields a nil evaluator.
func New(cfg Config) (Evaluator, error) {
	switch cfg.Backend {
	case BackendNone:
		return nil, nil
	case BackendCEL:
		evaluator, err := cel.NewEvaluator(cel.WithCostLimit(cfg.CostLimit))
		if err != nil {
			return nil, err
		}
		return evaluator, nil
	case BackendExpr:
		return expr.NewEvaluator(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

// IsValidBackend reports whether name is a supported backend
func IsValidBackend(name string) bool {
	switch name {
	case BackendNone, BackendCEL, BackendExpr:
		return true
	}
	return false
}
