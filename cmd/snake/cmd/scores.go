package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/oshokin/snake-game/internal/logger"
	"github.com/oshokin/snake-game/internal/repository/history"
	"github.com/oshokin/snake-game/internal/repository/score"
)

const defaultRecentGames = 10

var (
	// recentGames limits the history table.
	recentGames int

	scoresCmd = &cobra.Command{
		Use:   "scores",
		Short: "Show the high score and recent games.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Resolve the data folder from flags or the configuration.
			dir, err := dataDir()
			if err != nil {
				return err
			}

			// Read the high score and the recent games from the history database.
			high, err := score.NewFileRepository(filepath.Join(dir, score.Filename)).Load(ctx)
			if err != nil {
				return err
			}

			store, err := history.Open(ctx, filepath.Join(dir, history.Filename))
			if err != nil {
				return err
			}
			defer store.Close()

			games, err := store.Recent(ctx, recentGames)
			if err != nil {
				return err
			}

			// Render the games table with the best recorded game in the footer.
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetTitle("High score: %d", high)
			t.AppendHeader(table.Row{"Finished", "Player", "Score", "Length", "Duration", "Events", "Debug"})

			for _, g := range games {
				t.AppendRow(table.Row{
					g.FinishedAt.Local().Format(time.DateTime), g.Player, g.Score, g.Length,
					g.Duration.Round(time.Second), strings.Join(g.Events, ", "), g.Debug,
				})
			}

			best, err := store.Best(ctx)

			switch {
			case err == nil:
				t.AppendFooter(table.Row{"Best", best.Player, best.Score, best.Length})
			case errors.Is(err, history.ErrNoGames):
			default:
				return err
			}

			t.SetStyle(table.StyleRounded)
			t.Style().Format.Footer = text.FormatDefault
			t.Render()

			return nil
		},
	}

	scoresResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset the high score to 0.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := dataDir()
			if err != nil {
				return err
			}

			// Overwrite the stored high score; the history stays intact.
			if err = score.NewFileRepository(filepath.Join(dir, score.Filename)).Save(cmd.Context(), 0); err != nil {
				return err
			}

			logger.Info(cmd.Context(), "High score reset")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "High score: 0")

			return err
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	scoresCmd.Flags().IntVarP(&recentGames, "limit", "n", defaultRecentGames, "number of recent games to list")
	scoresCmd.AddCommand(scoresResetCmd)
	rootCmd.AddCommand(scoresCmd)
}
