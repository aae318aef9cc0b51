package version

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "1.4.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// ErrMalformed is returned for versions that are not plain major.minor.patch.
var ErrMalformed = errors.New("version must look like major.minor.patch")

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}

// Validate checks that v is a canonical major.minor.patch version.
// A leading "v" is accepted; prerelease and build suffixes are not.
func Validate(v string) error {
	canonical := "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")

	if !semver.IsValid(canonical) || semver.Canonical(canonical) != canonical ||
		semver.Prerelease(canonical) != "" || semver.Build(canonical) != "" {
		return fmt.Errorf("%w: %q", ErrMalformed, v)
	}

	return nil
}

// Compare reports -1, 0 or +1 like semver.Compare for two validated versions.
func Compare(a, b string) int {
	return semver.Compare("v"+strings.TrimPrefix(a, "v"), "v"+strings.TrimPrefix(b, "v"))
}
