package autopilot

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/snake-game/internal/domain/game"
)

func newSession(width, height int) *game.Session {
	rules := game.DefaultRules()
	rules.Grid = game.Grid{Width: width, Height: height}

	return game.NewSession(rules, rand.New(rand.NewPCG(1, 2))) //nolint:gosec // Deterministic test games.
}

// TestPilotNeverReverses checks the first decision of a fresh game.
func TestPilotNeverReverses(t *testing.T) {
	t.Parallel()

	s := newSession(8, 8)

	d, ok := New().Steer(s)
	require.True(t, ok)
	require.NotEqual(t, s.Snake().Direction().Opposite(), d)
}

// TestPilotEatsApples plays a small board and expects steady progress.
func TestPilotEatsApples(t *testing.T) {
	t.Parallel()

	s := newSession(12, 12)
	pilot := New()

	for range 2000 {
		back := s.Snake().Direction().Opposite()

		d, ok := pilot.Steer(s)
		if ok {
			require.NotEqual(t, back, d)
			require.True(t, s.Snake().Turn(d))
		}

		if s.Step() {
			break
		}
	}

	require.GreaterOrEqual(t, s.Score(), 5)
}
