package flappy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "wide", "drift"} {
		t.Run(id, func(t *testing.T) {
			require.True(t, registry.Exists(id))
			cfg, err := registry.Create(id)
			require.NoError(t, err)
			assert.NoError(t, config.Validate(cfg))
		})
	}
}

func TestClassicMatchesDefaults(t *testing.T) {
	assert.Equal(t, config.DefaultFlappyConfig(), ClassicConfig())
}

func TestWideConfig(t *testing.T) {
	cfg := WideConfig()

	assert.Equal(t, 125.0, cfg.StartY())
	assert.Equal(t, 550.0, cfg.MaxPlayerX())
	lo, hi := cfg.GapRange()
	assert.Equal(t, 20.0, lo)
	assert.Equal(t, 160.0, hi)
}
