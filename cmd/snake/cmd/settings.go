package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	domain "github.com/oshokin/snake-game/internal/domain/settings"
	repo "github.com/oshokin/snake-game/internal/repository/settings"
	"github.com/oshokin/snake-game/internal/service/settings"
)

var (
	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Show or change the player settings.",
		Long: `Show or change the player settings stored in settings.dat: snake colour,
keybinds and debug options.`,
	}

	settingsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the current settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Load settings.dat, falling back to defaults when it is missing.
			svc, err := openSettings(cmd.Context())
			if err != nil {
				return err
			}

			renderSettings(cmd, svc.Current())

			return nil
		},
	}

	settingsColorCmd = &cobra.Command{
		Use:   "color <name|next|prev>",
		Short: "Select the snake colour.",
		Long: fmt.Sprintf("Select one of %s. next and prev cycle through them like the menu arrows.",
			strings.Join(domain.ColorNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateSettings(cmd, func(s *domain.Settings) error {
				switch strings.ToLower(args[0]) {
				case "next":
					s.CycleColor(1)
				case "prev":
					s.CycleColor(-1)
				default:
					return s.SelectColor(args[0])
				}

				return nil
			})
		},
	}

	settingsCustomColorCmd = &cobra.Command{
		Use:   "custom-color <r> <g> <b>",
		Short: "Set and select a custom colour; components are clamped to 0..255.",
		Args:  cobra.ExactArgs(3), //nolint:mnd // Three colour components.
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parse the components before touching the file.
			var c domain.RGB

			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("colour component %q: %w", arg, err)
				}

				c[i] = v
			}

			return updateSettings(cmd, func(s *domain.Settings) error {
				s.SetCustomColor(c)
				return nil
			})
		},
	}

	settingsBindCmd = &cobra.Command{
		Use:   "bind <UP|DOWN|LEFT|RIGHT> <key>",
		Short: "Bind the primary key of a direction.",
		Args:  cobra.ExactArgs(2), //nolint:mnd // Action and key.
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateSettings(cmd, func(s *domain.Settings) error {
				return s.Rebind(args[0], args[1])
			})
		},
	}

	settingsDebugCmd = &cobra.Command{
		Use:       "debug <on|off|toggle>",
		Short:     "Switch debug mode. Debug mode disables high score saving.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateSettings(cmd, func(s *domain.Settings) error {
				switch strings.ToLower(args[0]) {
				case "on":
					s.DebugMode = true
				case "off":
					s.DebugMode = false
				case "toggle":
					s.ToggleDebug()
				default:
					return fmt.Errorf("expected on, off or toggle, got %q", args[0])
				}

				return nil
			})
		},
	}

	settingsDebugSetCmd = &cobra.Command{
		Use:   "debug-set <option> <value>",
		Short: "Set a debug option.",
		Long: fmt.Sprintf(`Set a debug overlay flag (0 hides it, anything else shows it) or an odds override
(at least 1).

Options: %s, %s, %s.`,
			strings.Join(domain.ShowFlags, ", "), domain.EventChanceOverride, domain.GoldenChanceOverride),
		Args: cobra.ExactArgs(2), //nolint:mnd // Option and value.
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parse the value before touching the file.
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("debug value %q: %w", args[1], err)
			}

			return updateSettings(cmd, func(s *domain.Settings) error {
				return s.SetDebugValue(args[0], value)
			})
		},
	}
)

func openSettings(ctx context.Context) (*settings.Service, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}

	return settings.New(ctx, repo.NewFileRepository(filepath.Join(dir, repo.Filename)))
}

func updateSettings(cmd *cobra.Command, edit func(*domain.Settings) error) error {
	svc, err := openSettings(cmd.Context())
	if err != nil {
		return err
	}

	updated, err := svc.Update(cmd.Context(), edit)
	if err != nil {
		return err
	}

	renderSettings(cmd, updated)

	return nil
}

func renderSettings(cmd *cobra.Command, s *domain.Settings) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Setting", "Value"})

	c := s.SnakeColor()
	t.AppendRow(table.Row{"Snake colour", fmt.Sprintf("%s (%d, %d, %d)", s.SnakeColorName, c[0], c[1], c[2])})

	for _, action := range []string{domain.ActionUp, domain.ActionDown, domain.ActionLeft, domain.ActionRight} {
		t.AppendRow(table.Row{"Key " + action, strings.Join(s.Keybinds[action], ", ")})
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{"Debug mode", s.DebugMode})

	for _, flag := range domain.ShowFlags {
		t.AppendRow(table.Row{flag, s.Debug.Show[flag]})
	}

	t.AppendRow(table.Row{domain.EventChanceOverride, fmt.Sprintf("%d%%", s.Debug.EventChance)})
	t.AppendRow(table.Row{domain.GoldenChanceOverride, fmt.Sprintf("1 in %d", s.Debug.GoldenChance)})

	t.SetStyle(table.StyleRounded)
	t.Render()
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	settingsCmd.AddCommand(
		settingsShowCmd,
		settingsColorCmd,
		settingsCustomColorCmd,
		settingsBindCmd,
		settingsDebugCmd,
		settingsDebugSetCmd,
	)
	rootCmd.AddCommand(settingsCmd)
}
