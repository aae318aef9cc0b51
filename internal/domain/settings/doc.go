// Package settings holds the player's preferences: snake colour, key
// bindings and the debug overlay options, with the edit operations the
// settings menus perform on them.
package settings
