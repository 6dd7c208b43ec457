package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Evaluate(t *testing.T) {
	evaluator, err := NewEvaluator()
	require.NoError(t, err)

	vars := map[string]interface{}{
		"root": map[string]interface{}{
			"priority": "high",
			"score":    0.95,
		},
	}

	tests := []struct {
		name       string
		expression string
		want       interface{}
	}{
		{"arithmetic", "1 + 2", int64(3)},
		{"string field", "root.priority", "high"},
		{"comparison", "root.score > 0.8", true},
		{"string function", `root.priority.startsWith("hi")`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluator.Evaluate(context.Background(), tt.expression, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_Errors(t *testing.T) {
	evaluator, err := NewEvaluator()
	require.NoError(t, err)

	t.Run("syntax error", func(t *testing.T) {
		_, err := evaluator.Evaluate(context.Background(), "1 +", nil)
		assert.Error(t, err)
		assert.Error(t, evaluator.ValidateExpression("1 +"))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := evaluator.Evaluate(context.Background(), "root.missing", map[string]interface{}{
			"root": map[string]interface{}{},
		})
		assert.Error(t, err)
	})

	t.Run("cost limit", func(t *testing.T) {
		limited, err := NewEvaluator(WithCostLimit(1))
		require.NoError(t, err)

		_, err = limited.Evaluate(context.Background(), "[1, 2, 3, 4, 5].map(x, x * 2).size() > 0", nil)
		assert.Error(t, err)
	})
}

func TestEvaluator_Cache(t *testing.T) {
	evaluator, err := NewEvaluator()
	require.NoError(t, err)

	_, err = evaluator.Evaluate(context.Background(), "1 + 1", nil)
	require.NoError(t, err)
	assert.Len(t, evaluator.cache, 1)

	evaluator.ClearCache()
	assert.Empty(t, evaluator.cache)
}
