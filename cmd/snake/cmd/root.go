package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oshokin/snake-game/internal/config"
	"github.com/oshokin/snake-game/internal/logger"
	"github.com/oshokin/snake-game/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// dataDirOverride replaces the data folder from the configuration.
	dataDirOverride string
	// logLevel is the --log-level flag value.
	logLevel string

	// rootCmd is the snake binary.
	rootCmd = &cobra.Command{
		Use:   "snake",
		Short: "Headless snake game with random events.",
		Long: `A snake game engine with golden apples, random events, a persistent high score
and player settings.

Games are played by the built-in autopilot. Settings are stored in settings.dat
and the high score in highscore.dat inside the data folder, finished games are
kept in history.db.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

// Execute runs the snake CLI and exits with a non-zero status on error or panic.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	os.Exit(execute())
}

func execute() (code int) {
	ctx := logger.WithName(context.Background(), "snake")

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(ctx, "An unexpected error has occurred and the game must close",
				"panic", fmt.Sprint(r), "stack", string(debug.Stack()))

			code = 1
		}
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Errorf(ctx, "%v", err)
		return 1
	}

	return 0
}

// setupLogging applies --log-level, falling back to the configured level.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level := logLevel

	if !cmd.Flags().Changed("log-level") {
		if cfg, err := config.Load(configPath); err == nil && cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
	}

	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}

	logger.SetLevel(parsed)

	return nil
}

// loadConfig reads the configuration and applies --data-dir.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if dataDirOverride != "" {
		cfg.DataDir = dataDirOverride
	}

	return cfg, nil
}

// dataDir resolves and creates the data folder.
func dataDir() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}

	return cfg.ResolveDataDir()
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&dataDirOverride, "data-dir", "", "folder for settings, high score and history")
	flags.StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn, error")
}
