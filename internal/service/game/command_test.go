package game

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/snake-game/internal/config"
	domain "github.com/oshokin/snake-game/internal/domain/game"
	prefs "github.com/oshokin/snake-game/internal/domain/settings"
	"github.com/oshokin/snake-game/internal/repository/history"
	"github.com/oshokin/snake-game/internal/repository/score"
	"github.com/oshokin/snake-game/internal/service/instance"
)

const smallBoard = `
grid:
  width: 8
  height: 8
events:
  timer: 2s
  chance: 100
  countdown: 1s
  duration: 3s
`

// writeConfig stores a small-board configuration and returns its path.
func writeConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(smallBoard), 0o600))

	return path
}

func newOptions(t *testing.T) *Options {
	t.Helper()

	return &Options{
		ConfigPath:  writeConfig(t),
		DataDir:     t.TempDir(),
		Games:       3,
		Seed:        42,
		MaxGameTime: time.Minute,
	}
}

// TestRunFastForward plays several games and persists their results.
func TestRunFastForward(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := newOptions(t)

	var seen int

	opts.OnGame = func(*GameReport) { seen++ }

	report, err := Run(ctx, opts)
	require.NoError(t, err)
	require.Len(t, report.Games, 3)
	require.Equal(t, 3, seen)
	require.Equal(t, uint64(42), report.Seed)

	best := 0
	for _, g := range report.Games {
		require.NotEmpty(t, g.UUID)
		require.False(t, g.Debug)
		require.GreaterOrEqual(t, g.Length, 2)
		require.LessOrEqual(t, g.Duration, time.Minute+config.Default().FrameInterval)

		best = max(best, g.Score)
	}

	require.Equal(t, best, report.HighScore)

	stored, err := score.NewFileRepository(filepath.Join(opts.DataDir, score.Filename)).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, best, stored)

	store, err := history.Open(ctx, filepath.Join(opts.DataDir, history.Filename))
	require.NoError(t, err)

	defer store.Close()

	games, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, games, 3)

	require.NoFileExists(t, filepath.Join(opts.DataDir, instance.LockFilename))
	require.FileExists(t, filepath.Join(opts.DataDir, "settings.dat"))
}

// TestRunIsDeterministic replays the same seed to the same scores.
func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	scores := func() []int {
		report, err := Run(context.Background(), newOptions(t))
		require.NoError(t, err)

		out := make([]int, 0, len(report.Games))
		for _, g := range report.Games {
			out = append(out, g.Score)
		}

		return out
	}

	require.Equal(t, scores(), scores())
}

// TestRunDebugKeepsHighScore never saves a high score in debug mode.
func TestRunDebugKeepsHighScore(t *testing.T) {
	t.Parallel()

	opts := newOptions(t)
	opts.Debug = true

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Zero(t, report.HighScore)

	for _, g := range report.Games {
		require.True(t, g.Debug)
		require.False(t, g.NewHighScore)
	}

	require.NoFileExists(t, filepath.Join(opts.DataDir, score.Filename))
}

// TestRunRefusesSecondInstance stops when the data folder is locked.
func TestRunRefusesSecondInstance(t *testing.T) {
	t.Parallel()

	opts := newOptions(t)
	lock := filepath.Join(opts.DataDir, instance.LockFilename)
	require.NoError(t, os.WriteFile(lock, []byte(strconv.Itoa(os.Getpid())), 0o600))

	_, err := Run(context.Background(), opts)
	require.ErrorIs(t, err, instance.ErrAlreadyRunning)
}

// TestRunRejectsBadOptions validates the game count and the configuration.
func TestRunRejectsBadOptions(t *testing.T) {
	t.Parallel()

	opts := newOptions(t)
	opts.Games = 0

	_, err := Run(context.Background(), opts)
	require.ErrorIs(t, err, errNoGames)

	opts = newOptions(t)
	require.NoError(t, os.WriteFile(opts.ConfigPath, []byte("grid: {width: 2, height: 2}"), 0o600))

	_, err = Run(context.Background(), opts)
	require.Error(t, err)
}

// TestRunRealtimeHonoursCancel paces games with a ticker and stops on cancel.
func TestRunRealtimeHonoursCancel(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		opts := newOptions(t)
		opts.Realtime = true
		opts.Games = 1000

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		start := time.Now()
		report, err := Run(ctx, opts)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.NotNil(t, report)
		require.Less(t, len(report.Games), 1000)
		require.Equal(t, 2*time.Minute, time.Since(start))
	})
}

// TestPushSettingsKeepsLatest replaces settings the loop has not read yet.
func TestPushSettingsKeepsLatest(t *testing.T) {
	t.Parallel()

	r := &runner{reloads: make(chan *prefs.Settings, 1)}

	first, second := prefs.Defaults(), prefs.Defaults()
	second.DebugMode = true

	r.pushSettings(first)
	r.pushSettings(second)

	require.Same(t, second, <-r.reloads)
	require.Empty(t, r.reloads)
}

// TestRulesFromConfig carries every tunable over.
func TestRulesFromConfig(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.DefaultRules(), RulesFromConfig(config.Default()))
}
