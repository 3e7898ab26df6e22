package session

import "strings"

// GameState identifies the session lifecycle label.
type GameState string

const (
	StateReady     GameState = "READY"
	StatePlaying   GameState = "PLAYING"
	StatePaused    GameState = "PAUSED"
	StateCompleted GameState = "COMPLETED"
)

// NormalizeGameState parses a lifecycle label into a canonical value.
func NormalizeGameState(value string) (GameState, bool) {
	switch GameState(strings.ToUpper(strings.TrimSpace(value))) {
	case StateReady:
		return StateReady, true
	case StatePlaying:
		return StatePlaying, true
	case StatePaused:
		return StatePaused, true
	case StateCompleted:
		return StateCompleted, true
	default:
		return "", false
	}
}

// Difficulty controls how much of the grid generation prefills.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// NormalizeDifficulty parses a difficulty label into a canonical value.
func NormalizeDifficulty(value string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(value))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

// prefillRatio maps a difficulty to the fraction of cells generation
// locks in. Unrecognized difficulties fall through to the medium ratio;
// the session keeps the label it was given either way.
func (d Difficulty) prefillRatio() float64 {
	switch d {
	case DifficultyEasy:
		return 0.40
	case DifficultyHard:
		return 0.15
	default:
		return 0.25
	}
}
