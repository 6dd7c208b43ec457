package helpers

import (
	"context"

	"go.uber.org/zap"
)

// Evaluator evaluates sandboxed expressions for the eval helper
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error)
}

// Eval evaluates script with the configured evaluator and returns the result as a string.
// The data root is exposed to the expression as "root". Without an evaluator, or on any
// failure, a warning is logged and nil is returned.
//
// WARNING: scripts come from template source. Only side-effect free expression
// languages may back this helper; it never runs shell commands.
func (l *Library) Eval(script string, ctx *RenderContext) interface{} {
	if l.evaluator == nil {
		l.logger.Warn("eval helper called without an evaluator",
			zap.String("script", script),
		)
		return nil
	}

	evalCtx, cancel := context.WithTimeout(context.Background(), l.evalTimeout)
	defer cancel()

	result, err := l.evaluator.Evaluate(evalCtx, script, map[string]interface{}{
		"root": ctx.Root(),
	})
	if err != nil {
		l.logger.Warn("eval failed",
			zap.String("script", script),
			zap.Error(err),
		)
		return nil
	}

	return stringify(result)
}
