// Package settings loads and edits the player settings on top of the
// settings repository. Unreadable files fall back to the defaults with a
// warning, and every successful edit is written back immediately.
package settings
