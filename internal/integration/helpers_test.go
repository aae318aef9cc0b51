package integration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/snake-game/internal/config"
	"github.com/oshokin/snake-game/internal/service/game"
)

// writeConfig saves a fast small-board configuration and returns its path.
func writeConfig(t *testing.T, frame time.Duration) string {
	t.Helper()

	cfg := config.Default()
	cfg.Grid = config.Grid{Width: 8, Height: 8}
	cfg.FrameInterval = frame

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(path, cfg))

	return path
}

// reports collects finished games from a run.
func reports(opts *game.Options) <-chan *game.GameReport {
	ch := make(chan *game.GameReport, 1024)
	opts.OnGame = func(g *game.GameReport) {
		select {
		case ch <- g:
		default:
		}
	}

	return ch
}
