// Package config defines the game tunables and where the game keeps its data,
// and provides helpers to load, validate and save them in YAML format.
//
// A missing configuration file is not an error for the game: Default returns
// the values the original arcade release shipped with.
package config
