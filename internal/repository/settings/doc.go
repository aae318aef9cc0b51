// Package settings persists the player's settings.
//
// FileRepository reads and writes settings.dat, a JSON document indented with
// four spaces, and exposes a Repository interface that services depend on.
package settings
