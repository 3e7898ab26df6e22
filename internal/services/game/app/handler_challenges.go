package app

import (
	"net/http"
	"time"

	apperrors "github.com/louisbranch/equinox.space/internal/platform/errors"
	"github.com/louisbranch/equinox.space/internal/services/game/challenge"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
)

type issueChallengeRequest struct {
	Size       int    `json:"size"`
	Difficulty string `json:"difficulty"`
	Seed       string `json:"seed"`
}

type issueChallengeResponse struct {
	Grant      string    `json:"grant"`
	Size       int       `json:"size"`
	Difficulty string    `json:"difficulty"`
	Seed       string    `json:"seed"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// handleIssueChallenge signs a grant for a specific puzzle so two players
// can race the identical board.
func (h *Handler) handleIssueChallenge(w http.ResponseWriter, r *http.Request) {
	if h.challenge == nil {
		writeError(w, r, apperrors.New(apperrors.CodeChallengeUnavailable, "challenge grants are not configured"))
		return
	}

	var req issueChallengeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	difficulty, seed, err := validateGameParams(req.Size, req.Difficulty, req.Seed)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ch := challenge.Challenge{
		Size:       req.Size,
		Difficulty: string(difficulty),
		Seed:       seed,
	}
	grant, err := challenge.Issue(ch, *h.challenge)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, issueChallengeResponse{
		Grant:      grant,
		Size:       ch.Size,
		Difficulty: ch.Difficulty,
		Seed:       ch.Seed,
		ExpiresAt:  h.now().Add(h.challenge.TTL).UTC(),
	})
}

// handleAcceptChallenge verifies a grant and opens a session with the
// grant's exact parameters.
func (h *Handler) handleAcceptChallenge(w http.ResponseWriter, r *http.Request) {
	if h.challenge == nil {
		writeError(w, r, apperrors.New(apperrors.CodeChallengeUnavailable, "challenge grants are not configured"))
		return
	}

	claims, err := challenge.Verify(r.PathValue("grant"), *h.challenge)
	if err != nil {
		writeError(w, r, err)
		return
	}

	difficulty, seed, err := validateGameParams(claims.Challenge.Size, claims.Challenge.Difficulty, claims.Challenge.Seed)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess := session.New(claims.Challenge.Size, difficulty, seed, h.now)
	sessionID, err := h.registry.Add(sess)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newStateResponse(sessionID, sess))
}
