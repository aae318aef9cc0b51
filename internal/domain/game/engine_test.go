package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/snake-game/internal/domain/settings"
)

const frame = 100 * time.Millisecond

func newTestEngine(t *testing.T, rules Rules, prefs *settings.Settings, highScore int) *Engine {
	t.Helper()

	e, err := NewEngine(rules, testRand(), prefs, highScore)
	require.NoError(t, err)

	return e
}

// advanceFor feeds the engine fixed frames and reports whether the game ended.
func advanceFor(e *Engine, d time.Duration) bool {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		if e.Advance(frame) {
			return true
		}
	}

	return false
}

// eventRules make the event cycle short and harmless: one move per second,
// a guaranteed roll every second and no speed or food side effects.
func eventRules() Rules {
	r := DefaultRules()
	r.StartSpeed = 1
	r.MinSpeed = 1
	r.EventTimer = time.Second
	r.EventChance = 100
	r.CountdownDuration = 2 * time.Second
	r.EventDuration = 3 * time.Second
	r.NotificationTime = time.Second
	r.ApplesGaloreCount = 0
	r.GoldenAppleRainCount = 0
	r.RacecarSpeedBoost = 0

	return r
}

// TestNewEngineRejectsBadRules ensures nonsense rules are refused.
func TestNewEngineRejectsBadRules(t *testing.T) {
	t.Parallel()

	r := DefaultRules()
	r.StartSpeed = 0

	_, err := NewEngine(r, testRand(), nil, 0)
	require.ErrorIs(t, err, errInvalidRules)
}

// TestEngineMenuAndMovement starts from the menu and moves at the start speed.
func TestEngineMenuAndMovement(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultRules(), nil, 0)
	require.Equal(t, MainMenu, e.State())
	require.False(t, e.Advance(time.Second), "menu does not consume time")

	require.True(t, e.HandleKey("return"))
	require.Equal(t, Playing, e.State())
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})

	require.False(t, e.Advance(time.Second))
	require.Equal(t, Point{X: 47, Y: 18}, e.Session().Snake().Head())
	require.Equal(t, time.Second, e.Clock())
}

// TestEngineKeysFollowBindings turns with the bound keys only.
func TestEngineKeysFollowBindings(t *testing.T) {
	t.Parallel()

	prefs := settings.Defaults()
	require.NoError(t, prefs.Rebind(settings.ActionUp, "i"))

	e := newTestEngine(t, DefaultRules(), prefs, 0)
	e.Start()

	require.False(t, e.HandleKey("up"), "primary key was rebound")
	require.True(t, e.HandleKey("i"))
	require.Equal(t, Up, e.Session().Snake().Pending())
	require.False(t, e.HandleKey("a"), "reverse of the current heading is ignored")
}

// TestEnginePauseFreezesTime checks that nothing moves while paused.
func TestEnginePauseFreezesTime(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultRules(), nil, 0)
	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})

	require.True(t, e.HandleKey("p"))
	require.Equal(t, Paused, e.State())

	head := e.Session().Snake().Head()
	require.False(t, e.Advance(time.Minute))
	require.Equal(t, head, e.Session().Snake().Head())
	require.Zero(t, e.Clock())

	require.True(t, e.HandleKey("escape"))
	require.Equal(t, Playing, e.State())
	require.False(t, e.Resume())
}

// TestEngineEventCycle walks timer, countdown, event and expiry.
func TestEngineEventCycle(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, eventRules(), nil, 0)
	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})

	require.False(t, advanceFor(e, time.Second))
	require.Equal(t, EventCountdown, e.State())
	require.Equal(t, 3, e.CountdownSecondsLeft())

	// A pause during the countdown resumes the countdown.
	require.True(t, e.Pause())
	require.Equal(t, 3, e.CountdownSecondsLeft())
	require.True(t, e.Resume())
	require.Equal(t, EventCountdown, e.State())

	require.False(t, advanceFor(e, 2*time.Second))
	require.Equal(t, Playing, e.State())
	require.Len(t, e.Result().Events, 1)

	active := e.Session().Event()
	require.NotEqual(t, NoEvent, active)

	name, ok := e.Notification()
	require.True(t, ok)
	require.Equal(t, active.String(), name)
	require.Equal(t, 3*time.Second, e.EventTimeLeft())

	if active.IsSize() {
		require.Equal(t, 4, e.RevertSecondsLeft())
	}

	require.False(t, advanceFor(e, 3*time.Second+frame))
	require.Equal(t, NoEvent, e.Session().Event())
	_, ok = e.Notification()
	require.False(t, ok)
}

// TestEngineNoEventWithZeroChance keeps playing without countdowns.
func TestEngineNoEventWithZeroChance(t *testing.T) {
	t.Parallel()

	r := eventRules()
	r.EventChance = 0

	e := newTestEngine(t, r, nil, 0)
	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})

	require.False(t, advanceFor(e, 5*time.Second))
	require.Equal(t, Playing, e.State())
	require.Empty(t, e.Result().Events)
}

// TestEngineDebugOverridesEventChance uses the debug odds in debug mode.
func TestEngineDebugOverridesEventChance(t *testing.T) {
	t.Parallel()

	r := eventRules()
	r.EventChance = 0

	prefs := settings.Defaults()
	prefs.DebugMode = true
	require.NoError(t, prefs.SetDebugValue(settings.EventChanceOverride, 100))

	e := newTestEngine(t, r, prefs, 0)
	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})

	require.False(t, advanceFor(e, time.Second))
	require.Equal(t, EventCountdown, e.State())
}

// TestEngineGameOverHighScore raises the high score only outside debug mode.
func TestEngineGameOverHighScore(t *testing.T) {
	t.Parallel()

	small := testRules(Grid{Width: 4, Height: 4})

	e := newTestEngine(t, small, nil, 5)
	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})
	e.Session().score = 10

	require.True(t, e.Advance(time.Second))
	require.Equal(t, GameOver, e.State())

	res := e.Result()
	require.True(t, res.NewHighScore)
	require.Equal(t, 10, res.HighScore)
	require.Equal(t, 10, e.HighScore())

	prefs := settings.Defaults()
	prefs.DebugMode = true

	e = newTestEngine(t, small, prefs, 5)
	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})
	e.Session().score = 10

	require.True(t, e.Advance(time.Second))
	require.False(t, e.Result().NewHighScore)
	require.Equal(t, 5, e.HighScore())
}

// TestEngineGameOverKeys restarts, returns to the menu and quits.
func TestEngineGameOverKeys(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testRules(Grid{Width: 4, Height: 4}), nil, 0)
	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})
	require.True(t, e.Advance(time.Second))

	require.True(t, e.HandleKey("r"))
	require.Equal(t, Playing, e.State())
	require.Zero(t, e.Clock())
	require.Equal(t, 2, e.Session().Snake().Len())

	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})
	require.True(t, e.Advance(time.Second))
	require.True(t, e.HandleKey("m"))
	require.Equal(t, MainMenu, e.State())

	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 0}})
	require.True(t, e.Advance(time.Second))
	require.True(t, e.HandleKey("q"))
	require.True(t, e.Quitting())
}

// TestEngineDebugInfo lists only the enabled overlay rows.
func TestEngineDebugInfo(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultRules(), nil, 0)
	require.Nil(t, e.DebugInfo())

	prefs := settings.Defaults()
	prefs.DebugMode = true
	require.NoError(t, prefs.SetDebugValue(settings.ShowSpeed, 0))
	e.SetSettings(prefs)
	e.Start()

	info := e.DebugInfo()
	require.Equal(t, DebugLine{Label: "High Score Saving", Value: "DISABLED"}, info[0])
	require.Len(t, info, len(settings.ShowFlags))

	labels := make(map[string]string, len(info))
	for _, line := range info {
		labels[line.Label] = line.Value
	}

	require.NotContains(t, labels, "Speed")
	require.Equal(t, "PLAYING", labels["State"])
	require.Equal(t, "15.0", labels["Normal Speed"])
	require.Equal(t, "[32, 18]", labels["Snake Pos"])
}

// countingPilot always steers up and counts how often it was asked.
type countingPilot struct {
	calls int
}

func (p *countingPilot) Steer(*Session) (Direction, bool) {
	p.calls++
	return Up, true
}

// TestEnginePilotSteersEveryMove asks the pilot before each step.
func TestEnginePilotSteersEveryMove(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultRules(), nil, 0)
	pilot := new(countingPilot)
	e.SetPilot(pilot)
	e.Start()
	placeFood(e.Session(), FoodItem{Pos: Point{X: 0, Y: 35}})

	require.False(t, e.Advance(time.Second/3))
	require.Equal(t, 5, pilot.calls)
	require.Equal(t, Point{X: 32, Y: 13}, e.Session().Snake().Head())
}
