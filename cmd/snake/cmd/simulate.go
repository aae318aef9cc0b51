package cmd

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/oshokin/snake-game/internal/service/game"
)

const spinnerInterval = 100 * time.Millisecond

var (
	simulateOptions = game.Options{Games: 1}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Play games with the autopilot.",
		Long: `Plays one or more games driven by the autopilot and records the results.

By default games run as fast as possible. With --realtime each frame waits for
the configured frame interval, the same pace a player would see. Editing
settings.dat during a --watch run applies keybinds and debug options live.
Debug mode (from settings or --debug) never saves a high score.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Global flags override the configuration of the run.
			opts := simulateOptions
			opts.ConfigPath = configPath
			opts.DataDir = dataDirOverride

			// Show the status line a player would see while games run in real time.
			if opts.Realtime {
				s := spinner.New(spinner.CharSets[11], spinnerInterval, spinner.WithWriter(cmd.ErrOrStderr()))
				s.Suffix = statusSuffix(game.Status{Game: 1}, opts.Games)
				s.Start()

				defer s.Stop()

				opts.OnStatus = func(status game.Status) {
					s.Lock()
					s.Suffix = statusSuffix(status, opts.Games)
					s.Unlock()
				}
			}

			// Render whatever was played, even when the run was interrupted.
			report, err := game.Run(ctx, &opts)
			if report != nil {
				renderReport(cmd.OutOrStdout(), report)
			}

			return err
		},
	}
)

// statusSuffix formats the spinner text: game number, event countdown and
// the active event with its revert timer.
func statusSuffix(status game.Status, games int) string {
	var b strings.Builder

	fmt.Fprintf(&b, " Playing game %d/%d", min(status.Game, games), games)

	switch {
	case status.Countdown > 0:
		fmt.Fprintf(&b, " | Event in %d...", status.Countdown)
	case status.Event != "" && status.Revert > 0:
		fmt.Fprintf(&b, " | %s! Reverting in %d...", status.Event, status.Revert)
	case status.Event != "":
		fmt.Fprintf(&b, " | %s!", status.Event)
	}

	return b.String()
}

func renderReport(w io.Writer, report *game.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Simulation (seed %d)", report.Seed)
	t.AppendHeader(table.Row{"#", "Score", "Length", "Duration", "Events", "Result"})

	for i, g := range report.Games {
		result := "game over"

		switch {
		case g.TimedOut:
			result = "time limit"
		case g.NewHighScore:
			result = "NEW HIGH SCORE!"
		case g.Debug:
			result = "debug"
		}

		t.AppendRow(table.Row{
			i + 1, g.Score, g.Length, g.Duration.Round(time.Second), strings.Join(g.Events, ", "), result,
		})
	}

	t.AppendFooter(table.Row{"", "High score", report.HighScore})
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.Render()
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := simulateCmd.Flags()
	flags.IntVarP(&simulateOptions.Games, "games", "n", 1, "number of games to play")
	flags.BoolVar(&simulateOptions.Realtime, "realtime", false, "pace frames with the configured frame interval")
	flags.Uint64Var(&simulateOptions.Seed, "seed", 0, "random seed; 0 picks one")
	flags.DurationVar(&simulateOptions.MaxGameTime, "max-game-time", game.DefaultMaxGameTime,
		"end a game still running after this much game time")
	flags.BoolVarP(&simulateOptions.Debug, "debug", "d", false, "play in debug mode without saving the high score")
	flags.BoolVarP(&simulateOptions.Watch, "watch", "w", false, "reload settings.dat while playing")

	rootCmd.AddCommand(simulateCmd)
}
