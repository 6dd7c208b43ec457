package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

// sumOf adds up the data points of an int64 counter, or returns -1 when absent.
func sumOf(rm *metricdata.ResourceMetrics, name string) int64 {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				return -1
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return -1
}

func TestEngine_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	recorder, err := NewMetricsRecorder(provider.Meter("test"))
	require.NoError(t, err)

	e := New(WithMetrics(recorder))
	data := map[string]interface{}{"name": "x"}

	_, err = e.Render("{{name}}", data)
	require.NoError(t, err)
	_, err = e.Render("{{name}}", data)
	require.NoError(t, err)
	_, err = e.Compile("{{#if}}")
	require.Error(t, err)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(3), sumOf(rm, "template.compiles"))
	assert.Equal(t, int64(1), sumOf(rm, "template.compile.errors"))
	assert.Equal(t, int64(2), sumOf(rm, "template.renders"))
	assert.LessOrEqual(t, sumOf(rm, "template.render.errors"), int64(0))

	// Clones share the recorder
	_, err = e.Clone().Render("{{name}}", data)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sumOf(collectMetrics(t, reader), "template.renders"))
}

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	assert.NotPanics(t, func() {
		m.RecordCompile(context.Background(), 0, true, nil)
		m.RecordRender(context.Background(), 0, nil)
	})
}

func TestNewMetricsRecorder_GlobalMeter(t *testing.T) {
	recorder, err := NewMetricsRecorder(nil)
	require.NoError(t, err)
	assert.NotNil(t, recorder)
}
