package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/snake-game/internal/config"
	domain "github.com/oshokin/snake-game/internal/domain/settings"
	"github.com/oshokin/snake-game/internal/logger"
)

// Filename is the settings file inside the data folder.
const Filename = "settings.dat"

const indent = "    "

// Repository defines persistence operations for the player settings.
type Repository interface {
	Load(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s *domain.Settings) error
}

// FileRepository persists the settings to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of settings.dat.
	path string
	// mu protects concurrent access to the file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the settings file is missing or empty.
	ErrNotFound = errors.New("settings not found")
	// ErrCorrupt is returned when the settings file cannot be decoded.
	ErrCorrupt = errors.New("settings file is corrupt")
)

// Top-level field names of settings.dat.
const (
	fieldColorName     = "snakeColorName"
	fieldCustomColor   = "customColor"
	fieldKeybinds      = "keybinds"
	fieldDebugMode     = "debugMode"
	fieldDebugSettings = "debugSettings"
)

// document is the on-disk layout. Debug options share one object: show flags
// are booleans and the overrides are numbers.
type document struct {
	SnakeColorName string              `json:"snakeColorName"`
	CustomColor    *domain.RGB         `json:"customColor,omitempty"`
	Keybinds       map[string][]string `json:"keybinds"`
	DebugMode      bool                `json:"debugMode"`
	DebugSettings  map[string]any      `json:"debugSettings"`
}

// NewFileRepository creates a repository for the file at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the settings and fills anything the file leaves out.
// Fields are decoded one by one, so a field that cannot be read (for example
// an unknown key code) falls back to its default without losing the others.
func (r *FileRepository) Load(ctx context.Context) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if len(bytes.TrimSpace(contents)) == 0 {
		return nil, ErrNotFound
	}

	var fields map[string]json.RawMessage
	if err = json.Unmarshal(contents, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	s, skipped := fromFields(fields)
	for name, fieldErr := range skipped {
		logger.WarnKV(ctx, "Ignoring unreadable settings field", "field", name, "error", fieldErr)
	}

	s.Normalize()

	return s, nil
}

// Save writes the settings to disk.
func (r *FileRepository) Save(_ context.Context, s *domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(toDocument(s), "", indent)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// fromFields builds settings from the top-level JSON fields and returns the
// fields that could not be decoded.
func fromFields(fields map[string]json.RawMessage) (*domain.Settings, map[string]error) {
	var (
		s = &domain.Settings{
			Debug: domain.Debug{
				Show: make(map[string]bool, len(domain.ShowFlags)),
			},
		}
		skipped = make(map[string]error)
		color   domain.RGB
		debug   map[string]any
		binds   map[string][]any
	)

	// decode reports whether the field is present and readable.
	decode := func(name string, target any) bool {
		raw, ok := fields[name]
		if !ok || string(bytes.TrimSpace(raw)) == "null" {
			return false
		}

		if err := json.Unmarshal(raw, target); err != nil {
			skipped[name] = err
			return false
		}

		return true
	}

	var colorName string
	if decode(fieldColorName, &colorName) {
		s.SnakeColorName = colorName
	}

	if decode(fieldCustomColor, &color) {
		s.CustomColor = &color
	}

	var debugMode bool
	if decode(fieldDebugMode, &debugMode) {
		s.DebugMode = debugMode
	}

	if !decode(fieldKeybinds, &binds) {
		binds = nil
	}

	if !decode(fieldDebugSettings, &debug) {
		debug = nil
	}

	if binds != nil {
		s.Keybinds = make(map[string][]string, len(binds))

		for action, keys := range binds {
			s.Keybinds[action] = keyNames(keys)
		}
	}

	for name, raw := range debug {
		switch v := raw.(type) {
		case bool:
			s.Debug.Show[name] = v
		case float64:
			switch name {
			case domain.EventChanceOverride:
				s.Debug.EventChance = int(v)
			case domain.GoldenChanceOverride:
				s.Debug.GoldenChance = int(v)
			}
		}
	}

	return s, skipped
}

func toDocument(s *domain.Settings) *document {
	debug := make(map[string]any, len(s.Debug.Show)+2)
	for name, on := range s.Debug.Show {
		debug[name] = on
	}

	debug[domain.EventChanceOverride] = s.Debug.EventChance
	debug[domain.GoldenChanceOverride] = s.Debug.GoldenChance

	return &document{
		SnakeColorName: s.SnakeColorName,
		CustomColor:    s.CustomColor,
		Keybinds:       s.Keybinds,
		DebugMode:      s.DebugMode,
		DebugSettings:  debug,
	}
}
