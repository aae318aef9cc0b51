// Package version exposes build metadata for the game binary.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
// Validate guards against stamping a release with a version that is not
// major.minor.patch.
package version
