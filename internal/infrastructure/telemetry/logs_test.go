package telemetry

import (
	"context"
	"testing"

	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.Nil(t, lp.Provider())
	assert.NoError(t, lp.ForceFlush(context.Background()))
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestNewLoggerProvider_EnabledWithoutCollector(t *testing.T) {
	// The gRPC exporter connects lazily, so no collector is needed to build it
	lp, err := NewLoggerProvider(context.Background(), config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:19999",
		ServiceName:       "foodhub-test",
		Insecure:          true,
	}, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, lp.IsEnabled())
	assert.NotNil(t, lp.Provider())
	assert.NoError(t, lp.Shutdown(context.Background()))
}
