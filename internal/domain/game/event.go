package game

// EventKind is a random modifier that starts after a countdown.
type EventKind uint8

// Events. NoEvent is the zero value.
const (
	NoEvent EventKind = iota
	ApplesGalore
	GoldenAppleRain
	BeegSnake
	SmallSnake
	RacecarSnake
	SlowSnake
)

// AllEvents lists the events that can be rolled.
//
//nolint:gochecknoglobals // Read-only lookup table.
var AllEvents = [...]EventKind{
	ApplesGalore, GoldenAppleRain, BeegSnake, SmallSnake, RacecarSnake, SlowSnake,
}

func (e EventKind) String() string {
	switch e {
	case ApplesGalore:
		return "Apples Galore"
	case GoldenAppleRain:
		return "Golden Apple Rain"
	case BeegSnake:
		return "BEEEG Snake"
	case SmallSnake:
		return "Small Snake"
	case RacecarSnake:
		return "Racecar Snake"
	case SlowSnake:
		return "Slow Snake"
	default:
		return "None"
	}
}

// IsFood reports events that flood the grid with apples.
func (e EventKind) IsFood() bool {
	return e == ApplesGalore || e == GoldenAppleRain
}

// IsSize reports events that change the snake length.
func (e EventKind) IsSize() bool {
	return e == BeegSnake || e == SmallSnake
}

// IsSpeed reports events that change the speed.
func (e EventKind) IsSpeed() bool {
	return e == RacecarSnake || e == SlowSnake
}
