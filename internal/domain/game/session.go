package game

import "math/rand/v2"

// Session is a single game: snake, apples, score, speed and the active event.
type Session struct {
	rules Rules
	rng   *rand.Rand

	snake *Snake
	food  *Food

	score       int
	normalSpeed int
	event       EventKind
	// goldenChance is the current "1 in N"; debug mode overrides the rules.
	goldenChance int
}

// NewSession starts a fresh session.
func NewSession(rules Rules, rng *rand.Rand) *Session {
	s := &Session{
		rules:        rules,
		rng:          rng,
		snake:        NewSnake(rules.Grid),
		food:         NewFood(rules.Grid, rng),
		goldenChance: rules.GoldenChance,
	}
	s.Reset()

	return s
}

// Reset restarts the session in place.
func (s *Session) Reset() {
	s.snake.Reset(s.rules.Grid)
	s.food.Reset(s.snake)
	s.score = 0
	s.normalSpeed = s.rules.StartSpeed
	s.event = NoEvent
}

// SetGoldenChance overrides the golden apple odds; values below 1 restore the rules.
func (s *Session) SetGoldenChance(n int) {
	if n < 1 {
		n = s.rules.GoldenChance
	}

	s.goldenChance = n
}

// Step moves the snake once and reports whether the game is over.
func (s *Session) Step() bool {
	head := s.snake.Advance()

	if item, ok := s.food.Take(head); ok {
		s.snake.Ate()

		switch item.Kind {
		case Golden:
			s.score += s.rules.GoldenScore
		default:
			s.score++
			s.normalSpeed++
		}

		if !s.event.IsFood() {
			s.food.AfterEat(s.snake, s.goldenChance)
		} else if s.food.Len() == 0 {
			s.food.Spawn(Normal, s.snake)
		}
	} else {
		s.snake.DropTail()
	}

	return s.snake.OutOf(s.rules.Grid) || s.snake.HitsSelf()
}

// StartEvent applies the effect of e. A running event is stopped first.
func (s *Session) StartEvent(e EventKind) {
	if s.event != NoEvent {
		s.StopEvent()
	}

	s.event = e

	switch e {
	case ApplesGalore:
		s.food.SpawnMany(Normal, s.rules.ApplesGaloreCount, s.snake)
	case GoldenAppleRain:
		s.food.SpawnMany(Golden, s.rules.GoldenAppleRainCount, s.snake)
	case BeegSnake:
		s.snake.BeginSizeEvent()
		s.snake.GrowBy(s.rules.BeegSnakeGrowth)
	case SmallSnake:
		s.snake.BeginSizeEvent()
		s.snake.ShrinkBy(s.rules.SmallSnakeShrink)
	case RacecarSnake, SlowSnake, NoEvent:
		// Speed is derived from the active event.
	}
}

// StopEvent undoes the active event.
func (s *Session) StopEvent() {
	switch {
	case s.event.IsSize():
		s.snake.RevertSize()
	case s.event.IsFood():
		s.food.Reset(s.snake)
	}

	s.event = NoEvent
}

// Speed returns the current moves per second.
func (s *Session) Speed() int {
	switch s.event {
	case RacecarSnake:
		return s.normalSpeed + s.rules.RacecarSpeedBoost
	case SlowSnake:
		return max(s.rules.MinSpeed, s.normalSpeed-s.rules.SlowSpeedReduction)
	default:
		return s.normalSpeed
	}
}

// NormalSpeed returns the speed without event modifiers.
func (s *Session) NormalSpeed() int {
	return s.normalSpeed
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Event returns the active event.
func (s *Session) Event() EventKind {
	return s.event
}

// Snake exposes the snake for inspection.
func (s *Session) Snake() *Snake {
	return s.snake
}

// Food exposes the apples for inspection.
func (s *Session) Food() *Food {
	return s.food
}

// Grid returns the playfield size.
func (s *Session) Grid() Grid {
	return s.rules.Grid
}
