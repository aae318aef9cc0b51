// Package game contains the headless snake rules.
//
// Snake and Food are plain entities on a fixed Grid. Session applies one move
// at a time (eating, scoring, events) and Engine drives sessions through the
// menu, play, pause, countdown and game-over states on an internal game clock.
// Nothing here touches the filesystem; persistence lives in the repositories.
package game
