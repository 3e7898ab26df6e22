// Package sqlite provides a SQLite-backed saved game storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/equinox.space/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/equinox.space/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/equinox.space/internal/services/game/core/filter"
	"github.com/louisbranch/equinox.space/internal/services/game/storage"
	"github.com/louisbranch/equinox.space/internal/services/game/storage/cursor"
	"github.com/louisbranch/equinox.space/internal/services/game/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists saved games in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite saved game store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveGame inserts or overwrites one saved game record.
func (s *Store) SaveGame(ctx context.Context, game storage.SavedGame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(game.ID)
	if id == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(game.Snapshot) == "" {
		return fmt.Errorf("snapshot is required")
	}
	createdAt := game.CreatedAt.UTC()
	updatedAt := game.UpdatedAt.UTC()
	if createdAt.IsZero() && updatedAt.IsZero() {
		createdAt = time.Now().UTC()
		updatedAt = createdAt
	} else {
		if createdAt.IsZero() {
			createdAt = updatedAt
		}
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}
	}

	// created_at keeps the value recorded by the first save.
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO saved_games (
		   id,
		   snapshot,
		   difficulty,
		   size,
		   state,
		   seed,
		   created_at,
		   updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   snapshot = excluded.snapshot,
		   difficulty = excluded.difficulty,
		   size = excluded.size,
		   state = excluded.state,
		   seed = excluded.seed,
		   updated_at = excluded.updated_at`,
		id,
		game.Snapshot,
		strings.TrimSpace(game.Difficulty),
		game.Size,
		strings.TrimSpace(game.State),
		strings.TrimSpace(game.Seed),
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// GetGame returns one saved game by ID.
func (s *Store) GetGame(ctx context.Context, id string) (storage.SavedGame, error) {
	if err := ctx.Err(); err != nil {
		return storage.SavedGame{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SavedGame{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.SavedGame{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, snapshot, difficulty, size, state, seed, created_at, updated_at
		   FROM saved_games
		  WHERE id = ?`,
		id,
	)
	game, err := scanSavedGame(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SavedGame{}, storage.ErrNotFound
		}
		return storage.SavedGame{}, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

// DeleteGame removes one saved game by ID.
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("game id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saved_games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListGames returns one page of saved games, most recently updated first.
func (s *Store) ListGames(ctx context.Context, query storage.ListSavedGamesQuery) (storage.SavedGamePage, error) {
	if err := ctx.Err(); err != nil {
		return storage.SavedGamePage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SavedGamePage{}, fmt.Errorf("storage is not configured")
	}
	if query.PageSize <= 0 {
		return storage.SavedGamePage{}, fmt.Errorf("page size must be greater than zero")
	}

	fingerprint := conditionFingerprint(query.Condition)

	var clauses []string
	var args []any
	if query.Condition.Clause != "" {
		clauses = append(clauses, query.Condition.Clause)
		args = append(args, query.Condition.Params...)
	}
	if token := strings.TrimSpace(query.PageToken); token != "" {
		cur, err := cursor.Decode(token)
		if err != nil {
			return storage.SavedGamePage{}, apperrors.Wrap(apperrors.CodePageTokenInvalid, "page token is invalid", err)
		}
		if cur.FilterHash != fingerprint {
			return storage.SavedGamePage{}, apperrors.New(apperrors.CodePageTokenInvalid, "page token does not match the filter")
		}
		clauses = append(clauses, "(updated_at < ? OR (updated_at = ? AND id < ?))")
		args = append(args, cur.UpdatedAt, cur.UpdatedAt, cur.LastID)
	}

	stmt := "SELECT id, snapshot, difficulty, size, state, seed, created_at, updated_at FROM saved_games"
	if len(clauses) > 0 {
		stmt += " WHERE " + strings.Join(clauses, " AND ")
	}
	stmt += " ORDER BY updated_at DESC, id DESC LIMIT ?"
	args = append(args, query.PageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return storage.SavedGamePage{}, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	page := storage.SavedGamePage{
		Games: make([]storage.SavedGame, 0, query.PageSize),
	}
	for rows.Next() {
		game, err := scanSavedGame(rows.Scan)
		if err != nil {
			return storage.SavedGamePage{}, fmt.Errorf("list games: %w", err)
		}
		page.Games = append(page.Games, game)
	}
	if err := rows.Err(); err != nil {
		return storage.SavedGamePage{}, fmt.Errorf("list games: %w", err)
	}
	if len(page.Games) > query.PageSize {
		last := page.Games[query.PageSize-1]
		token, err := cursor.Encode(cursor.Cursor{
			UpdatedAt:  toMillis(last.UpdatedAt),
			LastID:     last.ID,
			FilterHash: fingerprint,
		})
		if err != nil {
			return storage.SavedGamePage{}, fmt.Errorf("encode page token: %w", err)
		}
		page.NextPageToken = token
		page.Games = page.Games[:query.PageSize]
	}

	return page, nil
}

func scanSavedGame(scan func(dest ...any) error) (storage.SavedGame, error) {
	var game storage.SavedGame
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&game.ID,
		&game.Snapshot,
		&game.Difficulty,
		&game.Size,
		&game.State,
		&game.Seed,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.SavedGame{}, err
	}
	game.CreatedAt = fromMillis(createdAt)
	game.UpdatedAt = fromMillis(updatedAt)
	return game, nil
}

func conditionFingerprint(cond filter.SQLCondition) string {
	if cond.Clause == "" && len(cond.Params) == 0 {
		return ""
	}
	return cursor.HashFilter(fmt.Sprintf("%s|%v", cond.Clause, cond.Params))
}

var _ storage.SavedGameStore = (*Store)(nil)
