package expr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Evaluate(t *testing.T) {
	evaluator := NewEvaluator()
	vars := map[string]interface{}{
		"root": map[string]interface{}{"items": []interface{}{1, 2, 3}, "name": "x"},
	}

	got, err := evaluator.Evaluate(context.Background(), "1 + 2", vars)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = evaluator.Evaluate(context.Background(), " len(root.items) ", vars)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = evaluator.Evaluate(context.Background(), `root.name == "x" ? "yes" : "no"`, vars)
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}

func TestEvaluator_Errors(t *testing.T) {
	evaluator := NewEvaluator()

	_, err := evaluator.Evaluate(context.Background(), "1 +", nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = evaluator.Evaluate(ctx, "1", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluator_Timeout(t *testing.T) {
	evaluator := NewEvaluator()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := evaluator.Evaluate(ctx, "all(1..3000, {all(1..3000, {# > 0})})", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	got, err := evaluator.Evaluate(context.Background(), "all(1..3, {# > 0})", nil)
	require.NoError(t, err)
	assert.Equal(t, true, got)
}
