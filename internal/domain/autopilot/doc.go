// Package autopilot steers a snake without a player: it heads for the
// nearest apple by breadth-first search and, when no safe path exists,
// turns towards the largest open area.
package autopilot
