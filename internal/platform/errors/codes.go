// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game errors
	CodeGameInvalidSize       Code = "GAME_INVALID_SIZE"
	CodeGameInvalidDifficulty Code = "GAME_INVALID_DIFFICULTY"
	CodeGameInvalidSymbol     Code = "GAME_INVALID_SYMBOL"
	CodeGameInvalidPosition   Code = "GAME_INVALID_POSITION"
	CodeGameSnapshotInvalid   Code = "GAME_SNAPSHOT_INVALID"

	// Challenge errors
	CodeChallengeGrantInvalid  Code = "CHALLENGE_GRANT_INVALID"
	CodeChallengeGrantExpired  Code = "CHALLENGE_GRANT_EXPIRED"
	CodeChallengeGrantMismatch Code = "CHALLENGE_GRANT_MISMATCH"
	CodeChallengeUnavailable   Code = "CHALLENGE_UNAVAILABLE"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// Listing errors
	CodeFilterInvalid    Code = "FILTER_INVALID"
	CodePageTokenInvalid Code = "PAGE_TOKEN_INVALID"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeGameInvalidSize,
		CodeGameInvalidDifficulty,
		CodeGameInvalidSymbol,
		CodeGameInvalidPosition,
		CodeGameSnapshotInvalid,
		CodeChallengeGrantInvalid,
		CodeChallengeGrantMismatch,
		CodeFilterInvalid,
		CodePageTokenInvalid:
		return http.StatusBadRequest

	// Gone - the grant was once valid but no longer is
	case CodeChallengeGrantExpired:
		return http.StatusGone

	// Not found - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	// Conflict - unique resource constraint
	case CodeAlreadyExists:
		return http.StatusConflict

	// Service unavailable - the surface exists but is not configured
	case CodeChallengeUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
