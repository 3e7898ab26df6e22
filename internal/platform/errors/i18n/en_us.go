package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeGameInvalidSize       = "GAME_INVALID_SIZE"
	CodeGameInvalidDifficulty = "GAME_INVALID_DIFFICULTY"
	CodeGameInvalidSymbol     = "GAME_INVALID_SYMBOL"
	CodeGameInvalidPosition   = "GAME_INVALID_POSITION"
	CodeGameSnapshotInvalid   = "GAME_SNAPSHOT_INVALID"

	CodeChallengeGrantInvalid  = "CHALLENGE_GRANT_INVALID"
	CodeChallengeGrantExpired  = "CHALLENGE_GRANT_EXPIRED"
	CodeChallengeGrantMismatch = "CHALLENGE_GRANT_MISMATCH"
	CodeChallengeUnavailable   = "CHALLENGE_UNAVAILABLE"

	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"

	CodeFilterInvalid    = "FILTER_INVALID"
	CodePageTokenInvalid = "PAGE_TOKEN_INVALID"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Game errors
		CodeGameInvalidSize:       "Board size {{.Size}} is not supported",
		CodeGameInvalidDifficulty: "Difficulty {{.Difficulty}} is not one of easy, medium, hard",
		CodeGameInvalidSymbol:     "Cell value {{.Value}} is not a valid symbol",
		CodeGameInvalidPosition:   "Position {{.Row}},{{.Col}} is outside the board",
		CodeGameSnapshotInvalid:   "Saved game data could not be restored",

		// Challenge errors
		CodeChallengeGrantInvalid:  "Challenge link is invalid",
		CodeChallengeGrantExpired:  "Challenge link has expired",
		CodeChallengeGrantMismatch: "Challenge {{.Field}} does not match",
		CodeChallengeUnavailable:   "Challenge links are not available on this server",

		// Storage errors
		CodeNotFound:      "The requested resource was not found",
		CodeAlreadyExists: "A saved game with this ID already exists",

		// Listing errors
		CodeFilterInvalid:    "Filter expression could not be parsed",
		CodePageTokenInvalid: "Page token is invalid",
	},
}
