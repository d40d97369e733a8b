// Package storage persists finished games in SQLite.
// Uses the pure-Go modernc.org/sqlite driver, so no CGO is needed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit is used when a query is given a non-positive limit.
const DefaultLimit = 10

// Store is a scores database.
type Store struct {
	db *sql.DB
}

// Result is one finished (or abandoned) game.
type Result struct {
	Player        string
	GameID        string
	SessionID     string // SSH session or local run id, may be empty
	Score         int
	MaxTile       int
	Moves         int
	ReachedTarget bool
}

// ScoreEntry is a stored result.
type ScoreEntry struct {
	ID int64
	Result
	CreatedAt time.Time
}

// GameStats aggregates the results of one game variant.
type GameStats struct {
	GameID         string
	GamesCount     int
	HighScore      int
	AvgScore       float64
	BestTile       int
	TargetsReached int
	LastPlayed     time.Time
}

// Open creates or opens the database at dbPath, creating parent
// directories and the schema as needed. A leading ~ is expanded.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer; SSH sessions share the store
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			game_id TEXT NOT NULL,
			session_id TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			reached_target INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player, game_id, score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore inserts r and returns its row ID.
func (s *Store) SaveScore(r Result) (int64, error) {
	return saveScore(s.db, r)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveScore(db execer, r Result) (int64, error) {
	if r.GameID == "" {
		return 0, errors.New("storage: cannot save score: empty game id")
	}
	result, err := db.Exec(
		`INSERT INTO scores (player, game_id, session_id, score, max_tile, moves, reached_target)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.GameID, r.SessionID, r.Score, r.MaxTile, r.Moves, r.ReachedTarget,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordResult saves r and reports whether it beats the player's previous
// best for the same game. A player's first result is always a new best.
func (s *Store) RecordResult(r Result) (newBest bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	var prev sql.NullInt64
	if err := tx.QueryRow(
		"SELECT MAX(score) FROM scores WHERE player = ? AND game_id = ?",
		r.Player, r.GameID,
	).Scan(&prev); err != nil {
		return false, fmt.Errorf("storage: cannot query personal best: %w", err)
	}

	if _, err := saveScore(tx, r); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return !prev.Valid || int64(r.Score) > prev.Int64, nil
}

const entryColumns = `id, player, game_id, session_id, score, max_tile, moves, reached_target, created_at`

// TopScores returns the best results for a game, highest first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.queryEntries(
		`SELECT `+entryColumns+` FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// PlayerScores returns one player's best results for a game.
func (s *Store) PlayerScores(player, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.queryEntries(
		`SELECT `+entryColumns+` FROM scores
		 WHERE player = ? AND game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, gameID, limit,
	)
}

func (s *Store) queryEntries(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.GameID, &e.SessionID, &e.Score,
			&e.MaxTile, &e.Moves, &e.ReachedTarget, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score for a game, 0 if none.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil
}

// PlayerHighScore returns a player's best score for a game, 0 if none.
func (s *Store) PlayerHighScore(player, gameID string) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE player = ? AND game_id = ?",
		player, gameID,
	).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query personal best: %w", err)
	}
	return int(score.Int64), nil
}

// ClearScores deletes all results for a game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

const statsColumns = `game_id, COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(MAX(max_tile), 0), COALESCE(SUM(reached_target), 0), MAX(created_at)`

// GameStats aggregates the results of one game. A game without results
// yields zero stats.
func (s *Store) GameStats(gameID string) (*GameStats, error) {
	all, err := s.queryStats(`SELECT `+statsColumns+` FROM scores WHERE game_id = ? GROUP BY game_id`, gameID)
	if err != nil {
		return nil, err
	}
	if st, ok := all[gameID]; ok {
		return st, nil
	}
	return &GameStats{GameID: gameID}, nil
}

// AllGamesStats aggregates results per game.
func (s *Store) AllGamesStats() (map[string]*GameStats, error) {
	return s.queryStats(`SELECT ` + statsColumns + ` FROM scores GROUP BY game_id`)
}

func (s *Store) queryStats(query string, args ...any) (map[string]*GameStats, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore,
			&st.BestTile, &st.TargetsReached, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
