package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domain "github.com/oshokin/snake-game/internal/domain/settings"
	"github.com/oshokin/snake-game/internal/logger"
	repo "github.com/oshokin/snake-game/internal/repository/settings"
)

// Service owns the current settings.
type Service struct {
	repo     repo.Repository
	settings *domain.Settings
	mu       sync.RWMutex
}

// New loads the settings from repository. A missing or corrupt file yields
// the defaults, which are written back so the player gets a fresh file.
func New(ctx context.Context, repository repo.Repository) (*Service, error) {
	s := &Service{repo: repository}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload reads the file again.
func (s *Service) Reload(ctx context.Context) error {
	loaded, err := s.repo.Load(ctx)

	switch {
	case err == nil:
	case errors.Is(err, repo.ErrNotFound), errors.Is(err, repo.ErrCorrupt):
		if errors.Is(err, repo.ErrCorrupt) {
			logger.WarnKV(ctx, "Settings file is corrupt, using defaults", "error", err)
		}

		loaded = domain.Defaults()

		if err = s.repo.Save(ctx, loaded); err != nil {
			logger.WarnKV(ctx, "Unable to save settings file", "error", err)
		}
	default:
		return fmt.Errorf("load settings: %w", err)
	}

	s.mu.Lock()
	s.settings = loaded
	s.mu.Unlock()

	return nil
}

// Current returns a copy of the settings.
func (s *Service) Current() *domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings.Clone()
}

// Update applies edit to a copy of the settings and persists the result.
// Nothing changes when edit fails.
func (s *Service) Update(ctx context.Context, edit func(*domain.Settings) error) (*domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.Clone()
	if err := edit(next); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("persist settings: %w", err)
	}

	s.settings = next

	logger.DebugKV(ctx, "Settings updated", "color", next.SnakeColorName, "debug_mode", next.DebugMode)

	return next.Clone(), nil
}
