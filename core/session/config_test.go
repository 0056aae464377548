package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Rounds)
	assert.Equal(t, []int{1, 2}, cfg.OSRounds)
	assert.Equal(t, []int{2, 3}, cfg.OCRounds)
	assert.Equal(t, 2, cfg.OSCapacity())
	assert.Equal(t, 2, cfg.OCCapacity())
	assert.Equal(t, []int{2}, cfg.SharedRounds())
}

func TestConfigAllowed(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.OSAllowed(1))
	assert.True(t, cfg.OSAllowed(2))
	assert.False(t, cfg.OSAllowed(3))
	assert.False(t, cfg.OCAllowed(1))
	assert.True(t, cfg.OCAllowed(2))
	assert.True(t, cfg.OCAllowed(3))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rounds", func(c *Config) { c.Rounds = 0 }},
		{"empty os rounds", func(c *Config) { c.OSRounds = nil }},
		{"empty oc rounds", func(c *Config) { c.OCRounds = nil }},
		{"os round out of range", func(c *Config) { c.OSRounds = []int{0} }},
		{"oc round out of range", func(c *Config) { c.OCRounds = []int{4} }},
		{"zero os cap", func(c *Config) { c.MaxOSPerMentor = 0 }},
		{"zero oc cap", func(c *Config) { c.MaxOCPerMentor = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, DefaultConfig(), cfg)

	cfg = Config{Rounds: 4, OSRounds: []int{1, 2, 3}, OCRounds: []int{2, 3, 4}}
	cfg.SetDefaults()
	assert.Equal(t, 4, cfg.Rounds)
	assert.Equal(t, []int{1, 2, 3}, cfg.OSRounds)
	assert.Equal(t, DefaultMaxOSPerMentor, cfg.MaxOSPerMentor)
	assert.Equal(t, []int{2, 3}, cfg.SharedRounds())
}
