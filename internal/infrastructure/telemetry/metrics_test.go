package telemetry

import (
	"context"
	"testing"

	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), config.TelemetryConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := NewBusinessMetrics(nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrMeterNil)
	assert.Nil(t, bm)
}

func TestBusinessMetrics_Record(t *testing.T) {
	reader, provider := newManualMeter(t)
	bm, err := NewBusinessMetrics(provider.Meter("test"), nil)
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOrderPlaced(ctx, "fresh-fusion", decimal.RequireFromString("24.97"), 3)
	bm.RecordOrderPlaced(ctx, "fresh-fusion", decimal.RequireFromString("8.99"), 1)
	bm.RecordStatusChange(ctx, "fresh-fusion", "pending", "confirmed")
	bm.RecordReview(ctx, "fresh-fusion", 5)

	metrics := collect(t, reader)
	assert.EqualValues(t, 2, sumOf(t, metrics["foodhub_orders_placed_total"]))
	assert.EqualValues(t, 4, sumOf(t, metrics["foodhub_order_items_total"]))
	assert.EqualValues(t, 1, sumOf(t, metrics["foodhub_order_status_changes_total"]))
	assert.EqualValues(t, 1, sumOf(t, metrics["foodhub_reviews_total"]))

	hist, ok := metrics["foodhub_order_amount"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.EqualValues(t, 2, hist.DataPoints[0].Count)
	assert.InDelta(t, 33.96, hist.DataPoints[0].Sum, 0.001)
}
