package game

import (
	"github.com/oshokin/snake-game/internal/config"
	domain "github.com/oshokin/snake-game/internal/domain/game"
)

// RulesFromConfig maps the YAML tunables onto game rules.
func RulesFromConfig(cfg *config.Config) domain.Rules {
	return domain.Rules{
		Grid:                 domain.Grid{Width: cfg.Grid.Width, Height: cfg.Grid.Height},
		StartSpeed:           cfg.StartSpeed,
		MinSpeed:             cfg.MinSpeed,
		GoldenScore:          cfg.GoldenFood.Score,
		GoldenChance:         cfg.GoldenFood.Chance,
		EventTimer:           cfg.Events.Timer,
		EventChance:          cfg.Events.Chance,
		EventDuration:        cfg.Events.Duration,
		NotificationTime:     cfg.Events.Notification,
		CountdownDuration:    cfg.Events.Countdown,
		ApplesGaloreCount:    cfg.Events.ApplesGaloreCount,
		GoldenAppleRainCount: cfg.Events.GoldenAppleRainCount,
		BeegSnakeGrowth:      cfg.Events.BeegSnakeGrowth,
		SmallSnakeShrink:     cfg.Events.SmallSnakeShrink,
		RacecarSpeedBoost:    cfg.Events.RacecarSpeedBoost,
		SlowSpeedReduction:   cfg.Events.SlowSpeedReduction,
	}
}
