package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // database/sql driver "sqlite".

	"github.com/oshokin/snake-game/internal/config"
)

// Filename is the database file inside the data folder.
const Filename = "history.db"

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	game_uuid   TEXT    NOT NULL UNIQUE,
	player      TEXT    NOT NULL,
	score       INTEGER NOT NULL,
	length      INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	events      TEXT    NOT NULL DEFAULT '',
	seed        INTEGER NOT NULL,
	debug       INTEGER NOT NULL DEFAULT 0,
	finished_at TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_games_finished_at ON games(finished_at);
`

const columns = `id, game_uuid, player, score, length, duration_ms, events, seed, debug, finished_at`

const eventSeparator = ","

// timestampLayout keeps every finished_at the same width so text order
// matches time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNoGames is returned by Best when nothing has been recorded yet.
var ErrNoGames = errors.New("no games recorded")

// Game is one finished game.
type Game struct {
	ID         int64
	UUID       string
	Player     string
	Score      int
	Length     int
	Duration   time.Duration
	Events     []string
	Seed       uint64
	Debug      bool
	FinishedAt time.Time
}

// Repository defines the game history operations.
type Repository interface {
	Record(ctx context.Context, g *Game) error
	Recent(ctx context.Context, limit int) ([]*Game, error)
	Best(ctx context.Context) (*Game, error)
	Close() error
}

// Store is the SQLite implementation of Repository.
type Store struct {
	db *sql.DB
}

// Open creates or migrates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts g, filling UUID, Player and FinishedAt when empty.
// g.ID is set to the new row id.
func (s *Store) Record(ctx context.Context, g *Game) error {
	if g.UUID == "" {
		g.UUID = uuid.NewString()
	}

	if g.Player == "" {
		g.Player = DetectPlayer()
	}

	if g.FinishedAt.IsZero() {
		g.FinishedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO games (game_uuid, player, score, length, duration_ms, events, seed, debug, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.UUID, g.Player, g.Score, g.Length, g.Duration.Milliseconds(),
		strings.Join(g.Events, eventSeparator), int64(g.Seed), g.Debug, //nolint:gosec // Bit-preserving round trip.
		g.FinishedAt.UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	if g.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("game id: %w", err)
	}

	return nil
}

// Recent returns up to limit games, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM games ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent games: %w", err)
	}
	defer rows.Close()

	var games []*Game

	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}

		games = append(games, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	return games, nil
}

// Best returns the highest scoring non-debug game, earliest first on ties.
func (s *Store) Best(ctx context.Context) (*Game, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM games WHERE debug = 0 ORDER BY score DESC, id ASC LIMIT 1`)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoGames
	}

	return g, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(sc scanner) (*Game, error) {
	var (
		g          Game
		durationMS int64
		events     string
		seed       int64
		finishedAt string
	)

	err := sc.Scan(&g.ID, &g.UUID, &g.Player, &g.Score, &g.Length, &durationMS,
		&events, &seed, &g.Debug, &finishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("scan game: %w", err)
	}

	g.Duration = time.Duration(durationMS) * time.Millisecond
	g.Seed = uint64(seed) //nolint:gosec // Bit-preserving round trip.

	if events != "" {
		g.Events = strings.Split(events, eventSeparator)
	}

	if g.FinishedAt, err = time.Parse(timestampLayout, finishedAt); err != nil {
		return nil, fmt.Errorf("parse finish time: %w", err)
	}

	return &g, nil
}

// DetectPlayer returns "user@host" for the history rows. Unknown parts are
// reported as "unknown".
func DetectPlayer() string {
	const unknown = "unknown"

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = unknown
	}

	username := unknown
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = u.Username
	}

	return username + "@" + hostname
}
