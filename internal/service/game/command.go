package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/snake-game/internal/config"
	"github.com/oshokin/snake-game/internal/domain/autopilot"
	domain "github.com/oshokin/snake-game/internal/domain/game"
	prefs "github.com/oshokin/snake-game/internal/domain/settings"
	"github.com/oshokin/snake-game/internal/logger"
	"github.com/oshokin/snake-game/internal/repository/history"
	"github.com/oshokin/snake-game/internal/repository/score"
	settingsrepo "github.com/oshokin/snake-game/internal/repository/settings"
	"github.com/oshokin/snake-game/internal/service/instance"
	"github.com/oshokin/snake-game/internal/service/settings"
	"github.com/oshokin/snake-game/internal/service/watcher"
)

// Options controls a simulation run.
type Options struct {
	// ConfigPath specifies the path to the YAML configuration.
	ConfigPath string
	// DataDir overrides the data folder from the configuration.
	DataDir string
	// Games is the number of games to play.
	Games int
	// Realtime paces the games with a ticker at the configured frame interval.
	Realtime bool
	// Seed makes a run reproducible; zero picks one from the clock.
	Seed uint64
	// MaxGameTime ends a game that is still running after this much game time.
	MaxGameTime time.Duration
	// Debug turns debug mode on for this run without saving it.
	Debug bool
	// Watch reloads settings.dat while the run is in progress.
	Watch bool
	// OnGame is called after every finished game.
	OnGame func(g *GameReport)
	// OnStatus is called whenever the on-screen status changes.
	OnStatus func(s Status)
}

// Status is what a player would see next to the board.
type Status struct {
	// Game is the 1-based number of the running game.
	Game int
	// Countdown is the whole seconds left before an event starts, or 0.
	Countdown int
	// Event is the active event name, empty without one.
	Event string
	// Revert is the whole seconds left before a size event reverts, or 0.
	Revert int
}

const (
	// DefaultMaxGameTime stops an autopilot that loops without dying.
	DefaultMaxGameTime = 30 * time.Minute

	// overlayInterval is the game time between two debug overlay log lines.
	overlayInterval = time.Second
)

// GameReport describes one finished game.
type GameReport struct {
	UUID         string
	Score        int
	Length       int
	Duration     time.Duration
	Events       []string
	NewHighScore bool
	TimedOut     bool
	Debug        bool
}

// Report summarises a run.
type Report struct {
	DataDir   string
	Seed      uint64
	HighScore int
	Games     []*GameReport
}

var errNoGames = errors.New("number of games must be positive")

// runner carries the state of a single Run call.
type runner struct {
	opts    *Options
	cfg     *config.Config
	engine  *domain.Engine
	scores  score.Repository
	history history.Repository
	reloads chan *prefs.Settings
	report  *Report

	// Per-game display state.
	announced     bool
	lastCountdown int
	nextOverlay   time.Duration
	status        Status
}

// Run plays opts.Games games with the autopilot and persists their results.
func Run(ctx context.Context, opts *Options) (*Report, error) {
	ctx = logger.WithName(ctx, "simulate")

	if opts.Games <= 0 {
		return nil, errNoGames
	}

	if opts.MaxGameTime <= 0 {
		opts.MaxGameTime = DefaultMaxGameTime
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data folder: %w", err)
	}

	lock, err := instance.Acquire(ctx, dataDir)
	if err != nil {
		return nil, err
	}

	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.WarnKV(ctx, "Failed to release instance lock", "error", releaseErr)
		}
	}()

	settingsRepo := settingsrepo.NewFileRepository(filepath.Join(dataDir, settingsrepo.Filename))

	settingsService, err := settings.New(ctx, settingsRepo)
	if err != nil {
		return nil, err
	}

	scores := score.NewFileRepository(filepath.Join(dataDir, score.Filename))

	highScore, err := scores.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load high score: %w", err)
	}

	store, err := history.Open(ctx, filepath.Join(dataDir, history.Filename))
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Failed to close history", "error", closeErr)
		}
	}()

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // Any value is a valid seed.
	}

	engine, err := domain.NewEngine(
		RulesFromConfig(cfg),
		rand.New(rand.NewPCG(seed, seed)), //nolint:gosec // Gameplay randomness.
		applyOverrides(settingsService.Current(), opts),
		highScore,
	)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	engine.SetPilot(autopilot.New())

	r := &runner{
		opts:    opts,
		cfg:     cfg,
		engine:  engine,
		scores:  scores,
		history: store,
		reloads: make(chan *prefs.Settings, 1),
		report: &Report{
			DataDir:   dataDir,
			Seed:      seed,
			HighScore: highScore,
		},
	}

	logger.InfoKV(ctx, "Starting simulation",
		"games", opts.Games, "realtime", opts.Realtime, "seed", seed, "data_dir", dataDir)

	group, groupCtx := errgroup.WithContext(ctx)
	playCtx, stopWatching := context.WithCancel(groupCtx)

	if opts.Watch {
		w, err := watcher.New(settingsRepo.Path(), watcher.DefaultDebounce, func(ctx context.Context) {
			if err := settingsService.Reload(ctx); err != nil {
				logger.WarnKV(ctx, "Failed to reload settings", "error", err)
				return
			}

			r.pushSettings(applyOverrides(settingsService.Current(), opts))
		})
		if err != nil {
			stopWatching()
			return nil, err
		}

		group.Go(func() error {
			return w.Run(playCtx)
		})
	}

	group.Go(func() error {
		defer stopWatching()

		return r.play(playCtx)
	})

	if err = group.Wait(); err != nil {
		return r.report, err
	}

	return r.report, nil
}

// applyOverrides turns debug mode on for a --debug run.
func applyOverrides(s *prefs.Settings, opts *Options) *prefs.Settings {
	if opts.Debug {
		s.DebugMode = true
	}

	return s
}

// pushSettings hands new settings to the game loop, replacing any that were
// not picked up yet.
func (r *runner) pushSettings(s *prefs.Settings) {
	for {
		select {
		case r.reloads <- s:
			return
		default:
		}

		select {
		case <-r.reloads:
		default:
		}
	}
}

func (r *runner) play(ctx context.Context) error {
	r.engine.HandleKey("return")

	var ticker *time.Ticker

	if r.opts.Realtime {
		ticker = time.NewTicker(r.cfg.FrameInterval)
		defer ticker.Stop()
	}

	for len(r.report.Games) < r.opts.Games {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case s := <-r.reloads:
			r.engine.SetSettings(s)
			logger.Info(ctx, "Settings reloaded")
		default:
		}

		over := r.engine.Advance(r.cfg.FrameInterval)
		timedOut := !over && r.engine.Clock() >= r.opts.MaxGameTime

		if !over && !timedOut {
			r.observe(ctx)
			continue
		}

		if err := r.finishGame(ctx, timedOut); err != nil {
			return err
		}

		if timedOut {
			r.engine.Start()
		} else {
			r.engine.HandleKey("r")
		}

		r.announced, r.lastCountdown, r.nextOverlay = false, 0, 0
	}

	return nil
}

// observe reports what the screen would show: event countdowns and
// announcements, the debug overlay and the status line.
func (r *runner) observe(ctx context.Context) {
	e := r.engine

	if name, ok := e.Notification(); !ok {
		r.announced = false
	} else if !r.announced {
		logger.InfoKV(ctx, "Event started", "event", name, "game", len(r.report.Games)+1)
		r.announced = true
	}

	if n := e.CountdownSecondsLeft(); n != r.lastCountdown {
		if n > 0 {
			logger.InfoKV(ctx, "Event incoming", "seconds", n)
		}

		r.lastCountdown = n
	}

	if e.Clock() >= r.nextOverlay {
		if rows := e.DebugInfo(); rows != nil {
			kvs := make([]any, 0, 2*len(rows)) //nolint:mnd // Key and value per row.
			for _, row := range rows {
				kvs = append(kvs, row.Label, row.Value)
			}

			logger.DebugKV(ctx, "Debug overlay", kvs...)
		}

		r.nextOverlay = e.Clock() + overlayInterval
	}

	if r.opts.OnStatus == nil {
		return
	}

	status := Status{
		Game:      len(r.report.Games) + 1,
		Countdown: r.lastCountdown,
		Revert:    e.RevertSecondsLeft(),
	}

	if ev := e.Session().Event(); ev != domain.NoEvent {
		status.Event = ev.String()
	}

	if status != r.status {
		r.status = status
		r.opts.OnStatus(status)
	}
}

func (r *runner) finishGame(ctx context.Context, timedOut bool) error {
	res := r.engine.Result()

	events := make([]string, 0, len(res.Events))
	for _, e := range res.Events {
		events = append(events, e.String())
	}

	g := &history.Game{
		Score:    res.Score,
		Length:   res.Length,
		Duration: res.Duration,
		Events:   events,
		Seed:     r.report.Seed,
		Debug:    res.Debug,
	}

	if err := r.history.Record(ctx, g); err != nil {
		return fmt.Errorf("record game: %w", err)
	}

	if res.NewHighScore {
		if err := r.scores.Save(ctx, res.HighScore); err != nil {
			return fmt.Errorf("save high score: %w", err)
		}

		r.report.HighScore = res.HighScore
	}

	report := &GameReport{
		UUID:         g.UUID,
		Score:        res.Score,
		Length:       res.Length,
		Duration:     res.Duration,
		Events:       events,
		NewHighScore: res.NewHighScore,
		TimedOut:     timedOut,
		Debug:        res.Debug,
	}
	r.report.Games = append(r.report.Games, report)

	logger.InfoKV(ctx, "Game over",
		"game", len(r.report.Games), "score", res.Score, "length", res.Length,
		"duration", res.Duration.String(), "new_high_score", res.NewHighScore, "timed_out", timedOut)

	if r.opts.OnGame != nil {
		r.opts.OnGame(report)
	}

	return nil
}
