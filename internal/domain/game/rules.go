package game

import (
	"errors"
	"time"
)

// Rules are the tunables a session plays by.
type Rules struct {
	Grid Grid

	StartSpeed  int
	MinSpeed    int
	GoldenScore int
	// GoldenChance is N in "1 in N" per eaten apple.
	GoldenChance int

	EventTimer        time.Duration
	EventChance       int
	EventDuration     time.Duration
	NotificationTime  time.Duration
	CountdownDuration time.Duration

	ApplesGaloreCount    int
	GoldenAppleRainCount int
	BeegSnakeGrowth      int
	SmallSnakeShrink     int
	RacecarSpeedBoost    int
	SlowSpeedReduction   int
}

var errInvalidRules = errors.New("invalid rules")

// DefaultRules returns the values of the original release.
func DefaultRules() Rules {
	return Rules{
		Grid:                 Grid{Width: 64, Height: 36},
		StartSpeed:           15,
		MinSpeed:             5,
		GoldenScore:          5,
		GoldenChance:         15,
		EventTimer:           15 * time.Second,
		EventChance:          25,
		EventDuration:        10 * time.Second,
		NotificationTime:     3 * time.Second,
		CountdownDuration:    5 * time.Second,
		ApplesGaloreCount:    15,
		GoldenAppleRainCount: 10,
		BeegSnakeGrowth:      10,
		SmallSnakeShrink:     5,
		RacecarSpeedBoost:    15,
		SlowSpeedReduction:   5,
	}
}

func (r Rules) validate() error {
	if r.Grid.Width < 4 || r.Grid.Height < 4 || r.StartSpeed <= 0 || r.MinSpeed <= 0 ||
		r.GoldenChance < 1 || r.EventTimer <= 0 || r.EventDuration <= 0 || r.CountdownDuration <= 0 {
		return errInvalidRules
	}

	return nil
}
