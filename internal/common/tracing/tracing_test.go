package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/openidx/permmap/internal/common/config"
)

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		ServiceName: "permission-service",
		Environment: "staging",
		Tracing: config.TracingConfig{
			Enabled:    true,
			Endpoint:   "collector:4317",
			SampleRate: 0.5,
		},
	}

	assert.Equal(t, Config{
		Enabled:     true,
		Endpoint:    "collector:4317",
		ServiceName: "permission-service",
		Environment: "staging",
		SampleRate:  0.5,
	}, FromConfig(cfg))
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
