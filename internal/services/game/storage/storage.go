// Package storage defines persistence contracts for game service state.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/equinox.space/internal/platform/errors"
	"github.com/louisbranch/equinox.space/internal/services/game/core/filter"
)

// ErrNotFound indicates a requested saved game record is missing.
// Callers use this to differentiate between legitimate "no such save" states
// and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// SavedGame stores one persisted game session.
type SavedGame struct {
	ID         string
	Snapshot   string // serialized session layout as produced by session.Snapshot
	Difficulty string
	Size       int
	State      string
	Seed       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SavedGamePage stores one page of saved game records.
type SavedGamePage struct {
	Games         []SavedGame
	NextPageToken string
}

// ListSavedGamesQuery bundles pagination and filtering inputs for listings.
type ListSavedGamesQuery struct {
	PageSize  int
	PageToken string
	Condition filter.SQLCondition
}

// SavedGameStore persists serialized game sessions.
//
// SaveGame upserts by ID: saving the same session twice overwrites the
// snapshot and bumps UpdatedAt while CreatedAt keeps its original value.
type SavedGameStore interface {
	SaveGame(ctx context.Context, game SavedGame) error
	GetGame(ctx context.Context, id string) (SavedGame, error)
	DeleteGame(ctx context.Context, id string) error
	ListGames(ctx context.Context, query ListSavedGamesQuery) (SavedGamePage, error)
}
