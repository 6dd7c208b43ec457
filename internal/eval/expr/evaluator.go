package expr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
)

// Evaluator evaluates expr expressions
type Evaluator struct {
	cache map[string]*vm.Program
	mu    sync.RWMutex
}

// NewEvaluator creates a new expr evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{
		cache: make(map[string]*vm.Program),
	}
}

type result struct {
	output interface{}
	err    error
}

// Evaluate evaluates an expression with the given variables.
// When ctx is done before the expression finishes, Evaluate returns ctx.Err()
// right away. The expr VM cannot be interrupted, so the abandoned run keeps
// going in its goroutine until it completes.
func (e *Evaluator) Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program, err := e.getProgram(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}

	if ctx.Done() == nil {
		return run(program, vars)
	}

	done := make(chan result, 1)
	go func() {
		output, err := run(program, vars)
		done <- result{output: output, err: err}
	}()

	select {
	case res := <-done:
		return res.output, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func run(program *vm.Program, vars map[string]interface{}) (interface{}, error) {
	output, err := expr.Run(program, vars)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	return output, nil
}

func (e *Evaluator) getProgram(expression string) (*vm.Program, error) {
	expression = strings.TrimSpace(expression)

	e.mu.RLock()
	if program, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if program, ok := e.cache[expression]; ok {
		return program, nil
	}

	program, err := expr.Compile(expression)
	if err != nil {
		return nil, err
	}
	e.cache[expression] = program

	return program, nil
}
