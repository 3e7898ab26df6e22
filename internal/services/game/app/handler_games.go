package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/equinox.space/internal/platform/errors"
	"github.com/louisbranch/equinox.space/internal/platform/id"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
	"github.com/louisbranch/equinox.space/internal/services/game/registry"
)

// Board size bounds accepted at the API boundary. The engine itself places
// no upper bound, but the generator's balance targets and the web board
// degrade past these.
const (
	minBoardSize = 2
	maxBoardSize = 12
)

type createGameRequest struct {
	Size       int    `json:"size"`
	Difficulty string `json:"difficulty"`
	Seed       string `json:"seed"`
}

type moveRequest struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// moveResponse pairs an operation result with the refreshed session state.
type moveResponse struct {
	Result session.MoveResult `json:"result"`
	State  stateResponse      `json:"state"`
}

type historyResponse struct {
	Result session.HistoryResult `json:"result"`
	State  stateResponse         `json:"state"`
}

// validateGameParams normalizes and bounds-checks new-game inputs. A blank
// seed draws a fresh one; unknown difficulties are rejected here even
// though the engine would fall back to medium.
func validateGameParams(size int, difficulty, seed string) (session.Difficulty, string, error) {
	if size < minBoardSize || size > maxBoardSize {
		return "", "", apperrors.WithMetadata(apperrors.CodeGameInvalidSize, fmt.Sprintf("size %d is out of range", size), map[string]string{
			"Size": strconv.Itoa(size),
			"Min":  strconv.Itoa(minBoardSize),
			"Max":  strconv.Itoa(maxBoardSize),
		})
	}
	normalized, ok := session.NormalizeDifficulty(difficulty)
	if !ok {
		return "", "", apperrors.WithMetadata(apperrors.CodeGameInvalidDifficulty, fmt.Sprintf("difficulty %q is not supported", difficulty), map[string]string{
			"Difficulty": difficulty,
		})
	}
	seed = strings.TrimSpace(seed)
	if seed == "" {
		generated, err := id.NewID()
		if err != nil {
			return "", "", err
		}
		seed = generated
	}
	return normalized, seed, nil
}

// decodeBody parses a JSON request body. An empty body leaves the target
// zero-valued; several operations accept that.
func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(target)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperrors.Wrap(apperrors.CodeUnknown, "decode request body", err)
}

// mapRegistryErr converts registry misses to the coded not-found error.
func mapRegistryErr(err error) error {
	if errors.Is(err, registry.ErrSessionNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, "session not found", err)
	}
	return err
}

func (h *Handler) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	difficulty, seed, err := validateGameParams(req.Size, req.Difficulty, req.Seed)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess := session.New(req.Size, difficulty, seed, h.now)
	sessionID, err := h.registry.Add(sess)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newStateResponse(sessionID, sess))
}

func (h *Handler) handleGameState(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	var state stateResponse
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		state = newStateResponse(sessionID, s)
		return nil
	})
	if err != nil {
		writeError(w, r, mapRegistryErr(err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleGameMove(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	value, err := board.NormalizeSymbol(req.Value)
	if err != nil {
		writeError(w, r, apperrors.WithMetadata(apperrors.CodeGameInvalidSymbol, err.Error(), map[string]string{
			"Value": req.Value,
		}))
		return
	}

	var resp moveResponse
	err = h.registry.Do(sessionID, func(s *session.Session) error {
		if req.Row < 0 || req.Row >= s.Size() || req.Col < 0 || req.Col >= s.Size() {
			return apperrors.WithMetadata(apperrors.CodeGameInvalidPosition, fmt.Sprintf("position (%d,%d) is out of range", req.Row, req.Col), map[string]string{
				"Row": strconv.Itoa(req.Row),
				"Col": strconv.Itoa(req.Col),
			})
		}
		resp.Result = s.MakeMove(req.Row, req.Col, value)
		resp.State = newStateResponse(sessionID, s)
		return nil
	})
	if err != nil {
		writeError(w, r, mapRegistryErr(err))
		return
	}

	h.registry.Publish(sessionID)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGameUndo(w http.ResponseWriter, r *http.Request) {
	h.handleHistory(w, r, func(s *session.Session) session.HistoryResult { return s.Undo() })
}

func (h *Handler) handleGameRedo(w http.ResponseWriter, r *http.Request) {
	h.handleHistory(w, r, func(s *session.Session) session.HistoryResult { return s.Redo() })
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request, op func(*session.Session) session.HistoryResult) {
	sessionID := r.PathValue("id")
	var resp historyResponse
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		resp.Result = op(s)
		resp.State = newStateResponse(sessionID, s)
		return nil
	})
	if err != nil {
		writeError(w, r, mapRegistryErr(err))
		return
	}

	h.registry.Publish(sessionID)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGameHint(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	var result session.HintResult
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		result = s.Hint()
		return nil
	})
	if err != nil {
		writeError(w, r, mapRegistryErr(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGameStart(w http.ResponseWriter, r *http.Request) {
	h.handleLifecycle(w, r, func(s *session.Session) { s.Start() })
}

func (h *Handler) handleGamePause(w http.ResponseWriter, r *http.Request) {
	h.handleLifecycle(w, r, func(s *session.Session) { s.Pause() })
}

func (h *Handler) handleGameReset(w http.ResponseWriter, r *http.Request) {
	h.handleLifecycle(w, r, func(s *session.Session) { s.Reset() })
}

func (h *Handler) handleLifecycle(w http.ResponseWriter, r *http.Request, op func(*session.Session)) {
	sessionID := r.PathValue("id")
	var state stateResponse
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		op(s)
		state = newStateResponse(sessionID, s)
		return nil
	})
	if err != nil {
		writeError(w, r, mapRegistryErr(err))
		return
	}

	h.registry.Publish(sessionID)
	writeJSON(w, http.StatusOK, state)
}

// handleGameNew rebuilds the session in place with optionally new
// parameters; omitted fields keep the current game's values.
func (h *Handler) handleGameNew(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var state stateResponse
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		size := req.Size
		if size == 0 {
			size = s.Size()
		}
		difficultyValue := req.Difficulty
		if strings.TrimSpace(difficultyValue) == "" {
			difficultyValue = string(s.Difficulty())
		}
		difficulty, seed, err := validateGameParams(size, difficultyValue, req.Seed)
		if err != nil {
			return err
		}
		s.NewGame(size, difficulty, seed)
		state = newStateResponse(sessionID, s)
		return nil
	})
	if err != nil {
		writeError(w, r, mapRegistryErr(err))
		return
	}

	h.registry.Publish(sessionID)
	writeJSON(w, http.StatusOK, state)
}
