// Package store handles SQLite persistence of the game history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/safecast"

	"github.com/verte-zerg/tuidle/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for game data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			secret TEXT NOT NULL,
			word_length INTEGER NOT NULL,
			oracle TEXT NOT NULL,
			source TEXT NOT NULL,
			won INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_turns (
			game_id INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			guess TEXT NOT NULL,
			pattern TEXT NOT NULL,
			remaining_lexicon INTEGER NOT NULL,
			remaining_common INTEGER NOT NULL,
			PRIMARY KEY (game_id, idx)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_games_source ON games(source);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame stores a finished game and its turns.
func (s *Store) InsertGame(ctx context.Context, rec model.GameRecord) (id int64, err error) {
	durationMs := rec.EndedAt.Sub(rec.StartedAt).Milliseconds()
	won := 0
	if rec.Won {
		won = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (started_at, ended_at, secret, word_length, oracle, source, won, attempts, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Secret,
		rec.WordLength,
		rec.Oracle,
		rec.Source,
		won,
		rec.Attempts,
		durationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(rec.Turns) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO game_turns (game_id, idx, guess, pattern, remaining_lexicon, remaining_common)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, turn := range rec.Turns {
			if _, err = stmt.ExecContext(ctx, id, i, turn.Guess, turn.Pattern, turn.RemainingLexicon, turn.RemainingCommon); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func filterClause(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.WordLength > 0 {
		clauses = append(clauses, "word_length = ?")
		args = append(args, cfg.WordLength)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

// ListGames returns game aggregates filtered by stats config, oldest first.
// When cfg.Last is positive only the most recent games are returned.
func (s *Store) ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameAggregate, error) {
	where, args := filterClause(cfg)
	limit := -1
	if cfg.Last > 0 {
		limit = cfg.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, ended_at, secret, word_length, source, won, attempts, duration_ms FROM (
		SELECT * FROM games
		WHERE %s
		ORDER BY ended_at DESC, id DESC
		LIMIT ?
	) ORDER BY ended_at ASC, id ASC`, where)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameAggregate
	for rows.Next() {
		var agg model.GameAggregate
		var endedAt string
		var wordLength, won, attempts int64
		if err := rows.Scan(&agg.GameID, &endedAt, &agg.Secret, &wordLength, &agg.Source, &won, &attempts, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Won = won != 0
		if agg.WordLength, err = safecast.Conv[int](wordLength); err != nil {
			return nil, fmt.Errorf("game %d word length: %w", agg.GameID, err)
		}
		if agg.Attempts, err = safecast.Conv[int](attempts); err != nil {
			return nil, fmt.Errorf("game %d attempts: %w", agg.GameID, err)
		}
		games = append(games, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// GuessDistribution counts won games by number of attempts.
func (s *Store) GuessDistribution(ctx context.Context, cfg model.StatsConfig) (map[int]int, error) {
	where, args := filterClause(cfg)
	query := fmt.Sprintf(`SELECT attempts, COUNT(*) FROM games
		WHERE won = 1 AND %s
		GROUP BY attempts`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	dist := map[int]int{}
	for rows.Next() {
		var attempts, count int64
		if err := rows.Scan(&attempts, &count); err != nil {
			return nil, err
		}
		a, err := safecast.Conv[int](attempts)
		if err != nil {
			return nil, err
		}
		c, err := safecast.Conv[int](count)
		if err != nil {
			return nil, err
		}
		dist[a] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dist, nil
}

// ListTurns returns the turns of one game in play order.
func (s *Store) ListTurns(ctx context.Context, gameID int64) ([]model.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guess, pattern, remaining_lexicon, remaining_common
		 FROM game_turns WHERE game_id = ? ORDER BY idx ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var turns []model.Turn
	for rows.Next() {
		var turn model.Turn
		if err := rows.Scan(&turn.Guess, &turn.Pattern, &turn.RemainingLexicon, &turn.RemainingCommon); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}
