// Package history records finished games in a SQLite database (history.db)
// so the CLI can list recent games and the best run.
package history
