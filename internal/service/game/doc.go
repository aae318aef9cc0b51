// Package game runs headless games driven by the autopilot.
//
// Run wires the configuration, the data folder lock, the settings, high score
// and history repositories, and a settings watcher, then plays the requested
// number of games either in real time or as fast as possible.
package game
