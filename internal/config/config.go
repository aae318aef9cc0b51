package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Grid is the fixed playfield size in cells.
type Grid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GoldenFood controls the bonus apple.
type GoldenFood struct {
	// Score is added when a golden apple is eaten.
	Score int `yaml:"score"`
	// Chance is N in "1 in N" per eaten apple.
	Chance int `yaml:"chance"`
}

// Events holds random event timings and magnitudes.
type Events struct {
	// Timer is how long the game plays between two event rolls.
	Timer time.Duration `yaml:"timer"`
	// Chance is the percentage (1..100) that a roll starts a countdown.
	Chance int `yaml:"chance"`
	// Duration is how long a timed event stays active.
	Duration time.Duration `yaml:"duration"`
	// Notification is how long the event name is announced.
	Notification time.Duration `yaml:"notification"`
	// Countdown precedes every event.
	Countdown time.Duration `yaml:"countdown"`

	ApplesGaloreCount    int `yaml:"apples_galore_count"`
	GoldenAppleRainCount int `yaml:"golden_apple_rain_count"`
	BeegSnakeGrowth      int `yaml:"beeg_snake_growth"`
	SmallSnakeShrink     int `yaml:"small_snake_shrink"`
	RacecarSpeedBoost    int `yaml:"racecar_speed_boost"`
	SlowSpeedReduction   int `yaml:"slow_speed_reduction"`
}

// Config holds everything the game reads from snake-settings.yaml.
type Config struct {
	// DataDir is where settings, high score, history and the lock file live.
	DataDir string `yaml:"data_dir"`
	// LogLevel is the default log level; the --log-level flag overrides it.
	LogLevel string `yaml:"log_level"`
	// Grid is the playfield size.
	Grid Grid `yaml:"grid"`
	// StartSpeed is the initial number of moves per second.
	StartSpeed int `yaml:"start_speed"`
	// MinSpeed is the floor applied by slowing events.
	MinSpeed int `yaml:"min_speed"`
	// FrameInterval is the realtime loop period.
	FrameInterval time.Duration `yaml:"frame_interval"`
	// GoldenFood controls the bonus apple.
	GoldenFood GoldenFood `yaml:"golden_food"`
	// Events controls random events.
	Events Events `yaml:"events"`
}

const (
	// DefaultConfigFilename is the default filename for game settings.
	DefaultConfigFilename = "snake-settings.yaml"

	// DefaultFilePermissions is used for every file the game writes.
	DefaultFilePermissions = 0o600

	// DefaultDirPermissions is used for the data folder.
	DefaultDirPermissions = 0o755

	// appDataFolderName is the folder created under %APPDATA% on Windows.
	appDataFolderName = "ANAHKENsSnake"

	// homeDataFolder is used when APPDATA is not set.
	homeDataFolder = "~/.anahkens-snake"

	minGridSide = 4
	maxPercent  = 100
)

var (
	errConfigIsNotSet    = errors.New("configuration is not set")
	errGridTooSmall      = errors.New("grid must be at least 4x4")
	errBadSpeed          = errors.New("start speed must be positive and not below min speed")
	errBadGoldenFood     = errors.New("golden food chance must be at least 1")
	errBadEventChance    = errors.New("event chance must be between 0 and 100")
	errBadEventTiming    = errors.New("event timer, duration and countdown must be positive")
	errBadFrameInterval  = errors.New("frame interval must be positive")
	errNegativeMagnitude = errors.New("event magnitudes must not be negative")
)

// Default returns the tunables of the original release.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Grid: Grid{
			Width:  64,
			Height: 36,
		},
		StartSpeed:    15,
		MinSpeed:      5,
		FrameInterval: 16 * time.Millisecond,
		GoldenFood: GoldenFood{
			Score:  5,
			Chance: 15,
		},
		Events: Events{
			Timer:                15 * time.Second,
			Chance:               25,
			Duration:             10 * time.Second,
			Notification:         3 * time.Second,
			Countdown:            5 * time.Second,
			ApplesGaloreCount:    15,
			GoldenAppleRainCount: 10,
			BeegSnakeGrowth:      10,
			SmallSnakeShrink:     5,
			RacecarSpeedBoost:    15,
			SlowSpeedReduction:   5,
		},
	}
}

// Load reads configuration from path on top of Default and validates it.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case errors.Is(err, os.ErrNotExist):
		// Keep defaults.
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	default:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the tunables. It leaves DataDir alone; see ResolveDataDir.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Grid.Width < minGridSide || cfg.Grid.Height < minGridSide {
		return errGridTooSmall
	}

	if cfg.MinSpeed <= 0 || cfg.StartSpeed < cfg.MinSpeed {
		return errBadSpeed
	}

	if cfg.GoldenFood.Chance < 1 {
		return errBadGoldenFood
	}

	if cfg.FrameInterval <= 0 {
		return errBadFrameInterval
	}

	ev := cfg.Events
	if ev.Chance < 0 || ev.Chance > maxPercent {
		return errBadEventChance
	}

	if ev.Timer <= 0 || ev.Duration <= 0 || ev.Countdown <= 0 || ev.Notification < 0 {
		return errBadEventTiming
	}

	for _, v := range []int{
		ev.ApplesGaloreCount, ev.GoldenAppleRainCount, ev.BeegSnakeGrowth,
		ev.SmallSnakeShrink, ev.RacecarSpeedBoost, ev.SlowSpeedReduction,
		cfg.GoldenFood.Score,
	} {
		if v < 0 {
			return errNegativeMagnitude
		}
	}

	return nil
}

// ResolveDataDir returns the expanded data folder, creating it if needed.
// An empty DataDir picks %APPDATA%\ANAHKENsSnake, or ~/.anahkens-snake when
// APPDATA is not set.
func (c *Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, appDataFolderName)
		} else {
			dir = homeDataFolder
		}
	}

	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("expand data folder %q: %w", dir, err)
	}

	expanded = filepath.Clean(expanded)

	if err = os.MkdirAll(expanded, DefaultDirPermissions); err != nil {
		return "", fmt.Errorf("create data folder: %w", err)
	}

	return expanded, nil
}
