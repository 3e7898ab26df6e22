package app

import (
	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/rules"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
)

// stateResponse is the full session view returned by the API and pushed
// over the live stream: the persisted layout plus the derived validation
// and progress fields a client needs to draw the board.
type stateResponse struct {
	ID               string                  `json:"id"`
	Size             int                     `json:"size"`
	Difficulty       session.Difficulty      `json:"difficulty"`
	Seed             string                  `json:"seed"`
	State            session.GameState       `json:"state"`
	Grid             [][]board.Cell          `json:"grid"`
	Constraints      []board.ConstraintEntry `json:"constraints"`
	Valid            bool                    `json:"valid"`
	Violations       []rules.Violation       `json:"violations"`
	ErrorCells       []rules.ErrorCell       `json:"errorCells"`
	Completed        bool                    `json:"completed"`
	CanUndo          bool                    `json:"canUndo"`
	CanRedo          bool                    `json:"canRedo"`
	MoveCount        int                     `json:"moveCount"`
	Elapsed          int64                   `json:"elapsed"`
	FormattedElapsed string                  `json:"formattedElapsed"`
}

// newStateResponse reads a session into its API view. Callers hold the
// session via the registry while this runs.
func newStateResponse(sessionID string, s *session.Session) stateResponse {
	snap := s.Snapshot()
	return stateResponse{
		ID:               sessionID,
		Size:             snap.Size,
		Difficulty:       snap.Difficulty,
		Seed:             snap.Seed,
		State:            snap.GameState,
		Grid:             snap.Grid,
		Constraints:      snap.Constraints,
		Valid:            s.IsValid(),
		Violations:       s.Violations(),
		ErrorCells:       s.ErrorCells(),
		Completed:        s.IsCompleted(),
		CanUndo:          s.CanUndo(),
		CanRedo:          s.CanRedo(),
		MoveCount:        s.MoveCount(),
		Elapsed:          s.Elapsed().Milliseconds(),
		FormattedElapsed: s.FormattedElapsed(),
	}
}
