package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, 0.65, cfg.CosineThreshold)
	assert.Equal(t, 0.4, cfg.OverlapThreshold)
	assert.Equal(t, 5, cfg.PoolSize)
	assert.Equal(t, 5, cfg.MaxFetchBatch)
	assert.Equal(t, 3, cfg.EarlyExitTrust)
	assert.Equal(t, 0.5, cfg.EarlyExitRelevance)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5000, cfg.MaxContentLen)
	assert.Equal(t, 500, cfg.MaxPreviewLen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.TrustedDomains["gov.br"])
	assert.Equal(t, 2, cfg.TrustedDomains["wikipedia.org"])
}

func TestDefault_Validates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "cosine threshold too high",
			mutate:  func(c *Config) { c.CosineThreshold = 1.5 },
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "cosine threshold zero",
			mutate:  func(c *Config) { c.CosineThreshold = 0 },
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "overlap threshold negative",
			mutate:  func(c *Config) { c.OverlapThreshold = -0.1 },
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "pool size zero",
			mutate:  func(c *Config) { c.PoolSize = 0 },
			wantErr: ErrInvalidPoolSize,
		},
		{
			name:    "batch size zero",
			mutate:  func(c *Config) { c.MaxFetchBatch = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.FetchTimeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "early exit trust out of range",
			mutate:  func(c *Config) { c.EarlyExitTrust = 4 },
			wantErr: ErrInvalidTrustLevel,
		},
		{
			name:    "trusted domain level out of range",
			mutate:  func(c *Config) { c.TrustedDomains = map[string]int{"x.com": 7} },
			wantErr: ErrInvalidTrustLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
