package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

func TestNATSConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  NATSConfig
	}{
		{"missing url", NATSConfig{Stream: "ASSETS", Consumer: "loader"}},
		{"missing stream", NATSConfig{URL: "nats://localhost:4222", Consumer: "loader"}},
		{"missing consumer", NATSConfig{URL: "nats://localhost:4222", Stream: "ASSETS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrMissingConfig)
		})
	}
}

func TestNATSConfigDefaults(t *testing.T) {
	cfg := NATSConfig{URL: "nats://localhost:4222", Stream: "ASSETS", Consumer: "loader"}
	require.NoError(t, cfg.validate())

	assert.Equal(t, 16, cfg.FetchBatch)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.NotZero(t, cfg.Retry.MaxAttempts)
}
