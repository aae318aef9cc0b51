package settings

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// RGB is a colour with components in 0..255.
type RGB [3]int

// CustomColorName selects Settings.CustomColor.
const CustomColorName = "Custom"

// Presets lists the built-in colours in menu order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Presets = []struct {
	Name  string
	Color RGB
}{
	{"Green", RGB{0, 255, 0}},
	{"Blue", RGB{0, 100, 255}},
	{"Purple", RGB{148, 0, 211}},
	{"Orange", RGB{255, 165, 0}},
	{"Pink", RGB{255, 105, 180}},
	{"Cyan", RGB{0, 255, 255}},
}

// Actions that can be bound to keys.
const (
	ActionUp    = "UP"
	ActionDown  = "DOWN"
	ActionLeft  = "LEFT"
	ActionRight = "RIGHT"
)

// Debug option names. The show* flags select overlay lines.
const (
	ShowState            = "showState"
	ShowSnakePos         = "showSnakePos"
	ShowSnakeLen         = "showSnakeLen"
	ShowSpeed            = "showSpeed"
	ShowNormalSpeed      = "showNormalSpeed"
	ShowEventTimer       = "showEventTimer"
	ShowActiveEvent      = "showActiveEvent"
	ShowEventTimeLeft    = "showEventTimeLeft"
	ShowSizeEventActive  = "showSizeEventActive"
	ShowPreEventLen      = "showPreEventLen"
	EventChanceOverride  = "eventChanceOverride"
	GoldenChanceOverride = "goldenAppleChanceOverride"
)

const (
	defaultEventChance  = 25
	defaultGoldenChance = 15
	maxColorComponent   = 255
	defaultColorName    = "Green"
	primaryKeySlot      = 0
)

// ShowFlags lists the overlay flags in overlay order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ShowFlags = []string{
	ShowState, ShowSnakePos, ShowSnakeLen, ShowSpeed, ShowNormalSpeed,
	ShowEventTimer, ShowActiveEvent, ShowEventTimeLeft, ShowSizeEventActive, ShowPreEventLen,
}

var (
	// ErrUnknownColor is returned for a colour name that is neither a preset nor Custom.
	ErrUnknownColor = errors.New("unknown colour")
	// ErrUnknownAction is returned when rebinding something other than UP/DOWN/LEFT/RIGHT.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUnknownDebugOption is returned for an unrecognised debug option.
	ErrUnknownDebugOption = errors.New("unknown debug option")
	// ErrEmptyKey is returned when binding an empty key name.
	ErrEmptyKey = errors.New("key name must not be empty")
)

// Debug holds the debug overlay switches and the odds overrides.
type Debug struct {
	Show map[string]bool
	// EventChance replaces the event percentage while debug mode is on.
	EventChance int
	// GoldenChance replaces the golden apple odds while debug mode is on.
	GoldenChance int
}

// Settings is everything the player can change from the menus.
type Settings struct {
	SnakeColorName string
	CustomColor    *RGB
	// Keybinds maps an action to its keys, primary first.
	Keybinds  map[string][]string
	DebugMode bool
	Debug     Debug
}

// Defaults returns the settings of a fresh install.
func Defaults() *Settings {
	show := make(map[string]bool, len(ShowFlags))
	for _, f := range ShowFlags {
		show[f] = true
	}

	return &Settings{
		SnakeColorName: defaultColorName,
		Keybinds: map[string][]string{
			ActionUp:    {"up", "w"},
			ActionDown:  {"down", "s"},
			ActionLeft:  {"left", "a"},
			ActionRight: {"right", "d"},
		},
		Debug: Debug{
			Show:         show,
			EventChance:  defaultEventChance,
			GoldenChance: defaultGoldenChance,
		},
	}
}

// Normalize fills whatever an older or hand-edited file left out.
func (s *Settings) Normalize() {
	def := Defaults()

	if s.SnakeColorName == "" || (s.SnakeColorName != CustomColorName && !isPreset(s.SnakeColorName)) {
		s.SnakeColorName = def.SnakeColorName
	}

	if s.CustomColor != nil {
		c := clampRGB(*s.CustomColor)
		s.CustomColor = &c
	}

	if s.Keybinds == nil {
		s.Keybinds = def.Keybinds
	}

	for action, keys := range def.Keybinds {
		if len(s.Keybinds[action]) == 0 {
			s.Keybinds[action] = keys
		}
	}

	if s.Debug.Show == nil {
		s.Debug.Show = def.Debug.Show
	}

	for _, f := range ShowFlags {
		if _, ok := s.Debug.Show[f]; !ok {
			s.Debug.Show[f] = true
		}
	}

	if s.Debug.EventChance < 1 {
		s.Debug.EventChance = def.Debug.EventChance
	}

	if s.Debug.GoldenChance < 1 {
		s.Debug.GoldenChance = def.Debug.GoldenChance
	}
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s

	if s.CustomColor != nil {
		rgb := *s.CustomColor
		c.CustomColor = &rgb
	}

	c.Keybinds = make(map[string][]string, len(s.Keybinds))
	for k, v := range s.Keybinds {
		c.Keybinds[k] = slices.Clone(v)
	}

	c.Debug.Show = make(map[string]bool, len(s.Debug.Show))
	for k, v := range s.Debug.Show {
		c.Debug.Show[k] = v
	}

	return &c
}

// ColorNames returns the menu entries: presets then Custom.
func ColorNames() []string {
	names := make([]string, 0, len(Presets)+1)
	for _, p := range Presets {
		names = append(names, p.Name)
	}

	return append(names, CustomColorName)
}

// SnakeColor resolves the selected colour. Custom without a saved colour is Green.
func (s *Settings) SnakeColor() RGB {
	if s.SnakeColorName == CustomColorName {
		if s.CustomColor != nil {
			return *s.CustomColor
		}

		return Presets[0].Color
	}

	for _, p := range Presets {
		if p.Name == s.SnakeColorName {
			return p.Color
		}
	}

	return Presets[0].Color
}

// SelectColor selects a preset or Custom by name (case-insensitive).
func (s *Settings) SelectColor(name string) error {
	for _, n := range ColorNames() {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			s.SnakeColorName = n
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// CycleColor moves the selection by step through ColorNames, wrapping around.
func (s *Settings) CycleColor(step int) string {
	names := ColorNames()

	idx := slices.Index(names, s.SnakeColorName)
	if idx < 0 {
		idx = 0
	}

	idx = ((idx+step)%len(names) + len(names)) % len(names)
	s.SnakeColorName = names[idx]

	return s.SnakeColorName
}

// SetCustomColor stores a clamped custom colour and selects it.
func (s *Settings) SetCustomColor(c RGB) RGB {
	c = clampRGB(c)
	s.CustomColor = &c
	s.SnakeColorName = CustomColorName

	return c
}

// Rebind assigns key to the primary slot of action.
func (s *Settings) Rebind(action, key string) error {
	action = strings.ToUpper(strings.TrimSpace(action))
	key = strings.ToLower(strings.TrimSpace(key))

	if key == "" {
		return ErrEmptyKey
	}

	keys, ok := s.Keybinds[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if len(keys) == 0 {
		keys = []string{key}
	} else {
		keys = slices.Clone(keys)
		keys[primaryKeySlot] = key
	}

	s.Keybinds[action] = keys

	return nil
}

// ActionForKey returns the action bound to key. Actions are checked in
// UP, DOWN, LEFT, RIGHT order, so a key bound twice resolves to the first.
func (s *Settings) ActionForKey(key string) (string, bool) {
	key = strings.ToLower(strings.TrimSpace(key))

	for _, action := range []string{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if slices.Contains(s.Keybinds[action], key) {
			return action, true
		}
	}

	return "", false
}

// ToggleDebug flips debug mode and returns the new value.
func (s *Settings) ToggleDebug() bool {
	s.DebugMode = !s.DebugMode
	return s.DebugMode
}

// SetDebugValue sets a show* flag (non-zero turns it on) or an odds
// override (clamped to at least 1).
func (s *Settings) SetDebugValue(name string, value int) error {
	switch name {
	case EventChanceOverride:
		s.Debug.EventChance = max(1, value)
	case GoldenChanceOverride:
		s.Debug.GoldenChance = max(1, value)
	default:
		if !slices.Contains(ShowFlags, name) {
			return fmt.Errorf("%w: %q", ErrUnknownDebugOption, name)
		}

		if s.Debug.Show == nil {
			s.Debug.Show = make(map[string]bool, len(ShowFlags))
		}

		s.Debug.Show[name] = value != 0
	}

	return nil
}

func isPreset(name string) bool {
	for _, p := range Presets {
		if p.Name == name {
			return true
		}
	}

	return false
}

func clampRGB(c RGB) RGB {
	for i := range c {
		c[i] = min(max(c[i], 0), maxColorComponent)
	}

	return c
}
