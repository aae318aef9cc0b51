package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/snake-game/internal/domain/settings"
	repo "github.com/oshokin/snake-game/internal/repository/settings"
)

// memRepo is an in-memory implementation of the settings repository.
type memRepo struct {
	stored  *domain.Settings
	loadErr error
	saveErr error
	saves   int
}

func (m *memRepo) Load(context.Context) (*domain.Settings, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}

	return m.stored.Clone(), nil
}

func (m *memRepo) Save(_ context.Context, s *domain.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saves++
	m.stored = s.Clone()

	return nil
}

// TestNewFallsBackToDefaults writes defaults for missing and corrupt files.
func TestNewFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	for _, loadErr := range []error{repo.ErrNotFound, repo.ErrCorrupt} {
		m := &memRepo{loadErr: loadErr}

		svc, err := New(context.Background(), m)
		require.NoError(t, err)
		require.Equal(t, domain.Defaults(), svc.Current())
		require.Equal(t, 1, m.saves)
	}
}

// TestNewPropagatesReadErrors fails on other errors.
func TestNewPropagatesReadErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")

	_, err := New(context.Background(), &memRepo{loadErr: boom})
	require.ErrorIs(t, err, boom)
}

// TestUpdatePersists saves successful edits and keeps state on failure.
func TestUpdatePersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := &memRepo{stored: domain.Defaults()}

	svc, err := New(ctx, m)
	require.NoError(t, err)

	got, err := svc.Update(ctx, func(s *domain.Settings) error {
		return s.SelectColor("cyan")
	})
	require.NoError(t, err)
	require.Equal(t, "Cyan", got.SnakeColorName)
	require.Equal(t, "Cyan", m.stored.SnakeColorName)

	_, err = svc.Update(ctx, func(s *domain.Settings) error {
		return s.SelectColor("plaid")
	})
	require.ErrorIs(t, err, domain.ErrUnknownColor)
	require.Equal(t, "Cyan", svc.Current().SnakeColorName)

	m.saveErr = errors.New("read-only")
	_, err = svc.Update(ctx, func(s *domain.Settings) error {
		s.ToggleDebug()
		return nil
	})
	require.Error(t, err)
	require.False(t, svc.Current().DebugMode)
}

// TestCurrentIsACopy protects the service state from callers.
func TestCurrentIsACopy(t *testing.T) {
	t.Parallel()

	svc, err := New(context.Background(), &memRepo{stored: domain.Defaults()})
	require.NoError(t, err)

	c := svc.Current()
	c.DebugMode = true
	c.Keybinds[domain.ActionUp][0] = "x"

	require.False(t, svc.Current().DebugMode)
	require.Equal(t, "up", svc.Current().Keybinds[domain.ActionUp][0])
}
