package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/oshokin/snake-game/internal/domain/settings"
)

// State is the engine's screen.
type State uint8

// States.
const (
	MainMenu State = iota
	Playing
	Paused
	EventCountdown
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "PLAYING"
	case Paused:
		return "PAUSED"
	case EventCountdown:
		return "EVENT_COUNTDOWN"
	case GameOver:
		return "GAME_OVER"
	default:
		return "MAIN_MENU"
	}
}

// percent is the size of an event roll.
const percent = 100

// Pilot steers the snake before every move.
type Pilot interface {
	Steer(s *Session) (Direction, bool)
}

// Result summarises a finished game.
type Result struct {
	Score        int
	Length       int
	Duration     time.Duration
	Events       []EventKind
	HighScore    int
	NewHighScore bool
	Debug        bool
}

// Engine runs sessions through the game states on its own clock. Time only
// passes while playing or counting down, so pausing freezes every timer.
// Engine is not safe for concurrent use.
type Engine struct {
	rules    Rules
	rng      *rand.Rand
	settings *settings.Settings
	pilot    Pilot

	session  *Session
	state    State
	resumeTo State
	quit     bool

	clock           time.Duration
	moveAcc         time.Duration
	eventTimer      time.Duration
	eventStart      time.Duration
	notificationEnd time.Duration
	events          []EventKind

	highScore    int
	newHighScore bool
}

// NewEngine returns an engine on the main menu.
func NewEngine(rules Rules, rng *rand.Rand, prefs *settings.Settings, highScore int) (*Engine, error) {
	if err := rules.validate(); err != nil {
		return nil, err
	}

	if prefs == nil {
		prefs = settings.Defaults()
	}

	e := &Engine{
		rules:     rules,
		rng:       rng,
		settings:  prefs,
		session:   NewSession(rules, rng),
		state:     MainMenu,
		highScore: highScore,
	}
	e.applySettings()

	return e, nil
}

// SetPilot installs p; nil hands control back to keys.
func (e *Engine) SetPilot(p Pilot) {
	e.pilot = p
}

// SetSettings swaps the preferences, e.g. after the settings file changed.
func (e *Engine) SetSettings(prefs *settings.Settings) {
	if prefs == nil {
		return
	}

	e.settings = prefs
	e.applySettings()
}

// Start begins a new game from the menu or the game-over screen.
func (e *Engine) Start() {
	e.session.Reset()
	e.applySettings()

	e.state = Playing
	e.clock = 0
	e.moveAcc = 0
	e.eventTimer = 0
	e.eventStart = 0
	e.notificationEnd = 0
	e.events = nil
	e.newHighScore = false
}

// Pause freezes a running game.
func (e *Engine) Pause() bool {
	if e.state != Playing && e.state != EventCountdown {
		return false
	}

	e.resumeTo = e.state
	e.state = Paused

	return true
}

// Resume continues where Pause left off, including a running countdown.
func (e *Engine) Resume() bool {
	if e.state != Paused {
		return false
	}

	e.state = e.resumeTo

	return true
}

// ToMainMenu leaves the game-over screen.
func (e *Engine) ToMainMenu() bool {
	if e.state != GameOver {
		return false
	}

	e.state = MainMenu

	return true
}

// Quit marks the engine as finished.
func (e *Engine) Quit() {
	e.quit = true
}

// Turn queues a heading while the snake is moving.
func (e *Engine) Turn(d Direction) bool {
	if e.state != Playing && e.state != EventCountdown {
		return false
	}

	return e.session.snake.Turn(d)
}

// HandleKey maps a key name to the action of the current screen.
func (e *Engine) HandleKey(key string) bool {
	switch e.state {
	case MainMenu:
		if key == "return" || key == "enter" {
			e.Start()
			return true
		}
	case Playing, EventCountdown:
		if key == "p" || key == "escape" {
			return e.Pause()
		}

		if action, ok := e.settings.ActionForKey(key); ok {
			d, _ := ParseDirection(action)
			return e.Turn(d)
		}
	case Paused:
		if key == "p" || key == "escape" {
			return e.Resume()
		}
	case GameOver:
		switch key {
		case "r":
			e.Start()
			return true
		case "m":
			return e.ToMainMenu()
		case "q":
			e.Quit()
			return true
		}
	}

	return false
}

// Advance moves game time forward. It reports true when this call ended the game.
func (e *Engine) Advance(elapsed time.Duration) bool {
	if elapsed <= 0 || (e.state != Playing && e.state != EventCountdown) {
		return false
	}

	e.clock += elapsed

	if e.move(elapsed) {
		e.finish()
		return true
	}

	switch e.state {
	case Playing:
		e.tickEvents(elapsed)
	case EventCountdown:
		e.tickCountdown()
	case MainMenu, Paused, GameOver:
	}

	return false
}

func (e *Engine) move(elapsed time.Duration) bool {
	e.moveAcc += elapsed

	for {
		interval := time.Second / time.Duration(e.session.Speed())
		if e.moveAcc < interval {
			return false
		}

		e.moveAcc -= interval

		if e.pilot != nil {
			if d, ok := e.pilot.Steer(e.session); ok {
				e.session.snake.Turn(d)
			}
		}

		if e.session.Step() {
			return true
		}
	}
}

func (e *Engine) tickEvents(elapsed time.Duration) {
	if ev := e.session.Event(); ev != NoEvent && e.clock > e.eventStart+e.rules.EventDuration {
		e.session.StopEvent()
	}

	if e.session.Event() != NoEvent {
		return
	}

	e.eventTimer += elapsed
	if e.eventTimer < e.rules.EventTimer {
		return
	}

	e.eventTimer = 0

	if e.rng.IntN(percent)+1 <= e.eventChance() {
		e.state = EventCountdown
		e.eventStart = e.clock
	}
}

func (e *Engine) tickCountdown() {
	if e.clock-e.eventStart < e.rules.CountdownDuration {
		return
	}

	ev := AllEvents[e.rng.IntN(len(AllEvents))]
	e.session.StartEvent(ev)
	e.events = append(e.events, ev)

	e.state = Playing
	e.eventStart = e.clock
	e.notificationEnd = e.clock + e.rules.NotificationTime
}

func (e *Engine) finish() {
	e.state = GameOver

	if e.session.Score() > e.highScore && !e.settings.DebugMode {
		e.highScore = e.session.Score()
		e.newHighScore = true
	}
}

func (e *Engine) eventChance() int {
	if e.settings.DebugMode {
		return e.settings.Debug.EventChance
	}

	return e.rules.EventChance
}

func (e *Engine) applySettings() {
	if e.settings.DebugMode {
		e.session.SetGoldenChance(e.settings.Debug.GoldenChance)
	} else {
		e.session.SetGoldenChance(0)
	}
}

// State returns the current screen.
func (e *Engine) State() State {
	return e.state
}

// Quitting reports whether the player asked to quit.
func (e *Engine) Quitting() bool {
	return e.quit
}

// Session exposes the running session.
func (e *Engine) Session() *Session {
	return e.session
}

// Clock returns the game time of the current game.
func (e *Engine) Clock() time.Duration {
	return e.clock
}

// HighScore returns the best score known to the engine.
func (e *Engine) HighScore() int {
	return e.highScore
}

// Result summarises the current or last game.
func (e *Engine) Result() Result {
	return Result{
		Score:        e.session.Score(),
		Length:       e.session.snake.Len(),
		Duration:     e.clock,
		Events:       append([]EventKind(nil), e.events...),
		HighScore:    e.highScore,
		NewHighScore: e.newHighScore,
		Debug:        e.settings.DebugMode,
	}
}

// CountdownSecondsLeft returns the whole seconds shown before an event, or 0.
func (e *Engine) CountdownSecondsLeft() int {
	if e.state != EventCountdown && !(e.state == Paused && e.resumeTo == EventCountdown) {
		return 0
	}

	return secondsLeft(e.rules.CountdownDuration - (e.clock - e.eventStart))
}

// RevertSecondsLeft returns the whole seconds until a size event reverts, or 0.
func (e *Engine) RevertSecondsLeft() int {
	if !e.session.Event().IsSize() {
		return 0
	}

	return secondsLeft(e.eventStart + e.rules.EventDuration - e.clock)
}

// EventTimeLeft returns how long the active event still runs.
func (e *Engine) EventTimeLeft() time.Duration {
	if e.session.Event() == NoEvent {
		return 0
	}

	return max(e.eventStart+e.rules.EventDuration-e.clock, 0)
}

// Notification returns the event name while it is being announced.
func (e *Engine) Notification() (string, bool) {
	if e.session.Event() == NoEvent || e.clock >= e.notificationEnd {
		return "", false
	}

	return e.session.Event().String(), true
}

// DebugLine is one row of the debug overlay.
type DebugLine struct {
	Label string
	Value string
}

// DebugInfo returns the overlay rows enabled in the debug settings, or nil
// outside debug mode.
func (e *Engine) DebugInfo() []DebugLine {
	if !e.settings.DebugMode {
		return nil
	}

	s := e.session
	all := []struct {
		flag  string
		label string
		value string
	}{
		{settings.ShowState, "State", e.state.String()},
		{settings.ShowSnakePos, "Snake Pos", s.snake.Head().String()},
		{settings.ShowSnakeLen, "Snake Len", fmt.Sprint(s.snake.Len())},
		{settings.ShowSpeed, "Speed", fmt.Sprintf("%.1f", float64(s.Speed()))},
		{settings.ShowNormalSpeed, "Normal Speed", fmt.Sprintf("%.1f", float64(s.NormalSpeed()))},
		{settings.ShowEventTimer, "Event Timer", fmt.Sprintf("%.1fs", (e.rules.EventTimer - e.eventTimer).Seconds())},
		{settings.ShowActiveEvent, "Active Event", s.Event().String()},
		{settings.ShowEventTimeLeft, "Event Time Left", fmt.Sprintf("%.1fs", e.EventTimeLeft().Seconds())},
		{settings.ShowSizeEventActive, "Size Event Active", fmt.Sprint(s.snake.SizeEventActive())},
		{settings.ShowPreEventLen, "Pre-Event Len", fmt.Sprint(s.snake.PreEventLength())},
	}

	lines := []DebugLine{{Label: "High Score Saving", Value: "DISABLED"}}

	for _, row := range all {
		if e.settings.Debug.Show[row.flag] {
			lines = append(lines, DebugLine{Label: row.label, Value: row.value})
		}
	}

	return lines
}

func secondsLeft(d time.Duration) int {
	if d <= 0 {
		return 0
	}

	return int(d/time.Second) + 1
}
