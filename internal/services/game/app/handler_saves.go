package app

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/equinox.space/internal/platform/errors"
	"github.com/louisbranch/equinox.space/internal/services/game/core/filter"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
	"github.com/louisbranch/equinox.space/internal/services/game/storage"
)

const (
	defaultSavesPageSize = 20
	maxSavesPageSize     = 100
)

// savedGameView is the API view of one saved game record. The snapshot
// itself stays server-side; loading goes through /api/games/{id}/load.
type savedGameView struct {
	ID         string    `json:"id"`
	Difficulty string    `json:"difficulty"`
	Size       int       `json:"size"`
	State      string    `json:"state"`
	Seed       string    `json:"seed"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type listSavesResponse struct {
	Games         []savedGameView `json:"games"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

func newSavedGameView(game storage.SavedGame) savedGameView {
	return savedGameView{
		ID:         game.ID,
		Difficulty: game.Difficulty,
		Size:       game.Size,
		State:      game.State,
		Seed:       game.Seed,
		CreatedAt:  game.CreatedAt,
		UpdatedAt:  game.UpdatedAt,
	}
}

// handleGameSave persists the session's serialized state keyed by its id.
// Saving twice upserts: the snapshot is replaced and UpdatedAt bumped.
func (h *Handler) handleGameSave(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var record storage.SavedGame
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		snap := s.Snapshot()
		encoded, err := json.Marshal(snap)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeGameSnapshotInvalid, "encode snapshot", err)
		}
		record = storage.SavedGame{
			ID:         sessionID,
			Snapshot:   string(encoded),
			Difficulty: string(snap.Difficulty),
			Size:       snap.Size,
			State:      string(snap.GameState),
			Seed:       snap.Seed,
			UpdatedAt:  h.now(),
		}
		return nil
	})
	if err != nil {
		writeError(w, r, mapRegistryErr(err))
		return
	}

	if err := h.store.SaveGame(r.Context(), record); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.store.GetGame(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSavedGameView(saved))
}

// handleGameLoad restores a saved snapshot into the session registry under
// the same id, replacing any live session while keeping its watchers.
func (h *Handler) handleGameLoad(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	record, err := h.store.GetGame(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(record.Snapshot), &snap); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeGameSnapshotInvalid, "decode snapshot", err))
		return
	}

	sess := session.Restore(snap, h.now)
	h.registry.Put(sessionID, sess)
	h.registry.Publish(sessionID)

	writeJSON(w, http.StatusOK, newStateResponse(sessionID, sess))
}

func (h *Handler) handleListSaves(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	pageSize := defaultSavesPageSize
	if raw := strings.TrimSpace(params.Get("page_size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, r, apperrors.WithMetadata(apperrors.CodeFilterInvalid, "page_size must be a positive integer", map[string]string{
				"PageSize": raw,
			}))
			return
		}
		pageSize = parsed
	}
	if pageSize > maxSavesPageSize {
		pageSize = maxSavesPageSize
	}

	condition, err := filter.ParseSavedGameFilter(params.Get("filter"))
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeFilterInvalid, "filter is invalid", err))
		return
	}

	page, err := h.store.ListGames(r.Context(), storage.ListSavedGamesQuery{
		PageSize:  pageSize,
		PageToken: params.Get("page_token"),
		Condition: condition,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := listSavesResponse{
		Games:         make([]savedGameView, 0, len(page.Games)),
		NextPageToken: page.NextPageToken,
	}
	for _, game := range page.Games {
		resp.Games = append(resp.Games, newSavedGameView(game))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
