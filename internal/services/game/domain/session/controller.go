package session

import (
	"time"

	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/core/random"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/rules"
)

// MoveRecord is one applied player move. Timestamps are UTC milliseconds.
type MoveRecord struct {
	Row           int          `json:"row"`
	Col           int          `json:"col"`
	PreviousValue board.Symbol `json:"previousValue"`
	NewValue      board.Symbol `json:"newValue"`
	Timestamp     int64        `json:"timestamp"`
}

// MoveResult reports one attempted move. Valid and Violations describe the
// board after a successful move; they are zero-valued on failure. Summary
// is present only when the move completed the puzzle.
type MoveResult struct {
	Success    bool              `json:"success"`
	Reason     string            `json:"reason,omitempty"`
	Valid      bool              `json:"valid"`
	Violations []rules.Violation `json:"violations"`
	Completed  bool              `json:"completed"`
	Summary    *Summary          `json:"summary,omitempty"`
}

// HistoryResult reports one undo or redo attempt, with the cursor headroom
// remaining in both directions afterwards.
type HistoryResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	CanUndo bool   `json:"canUndo"`
	CanRedo bool   `json:"canRedo"`
}

// Hint is a suggested placement derived from a constraint.
type Hint struct {
	Row   int          `json:"row"`
	Col   int          `json:"col"`
	Value board.Symbol `json:"value"`
}

// HintResult reports a hint request.
type HintResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	Hint    *Hint  `json:"hint,omitempty"`
}

// Summary describes a finished game.
type Summary struct {
	Time          int64      `json:"time"`
	FormattedTime string     `json:"formattedTime"`
	MoveCount     int        `json:"moveCount"`
	Difficulty    Difficulty `json:"difficulty"`
	Size          int        `json:"size"`
	Seed          string     `json:"seed"`
}

// Session is one puzzle instance: board, validator, history, timer, and
// lifecycle state. The zero value is not usable; construct with New or
// Restore.
type Session struct {
	size       int
	difficulty Difficulty
	seed       string
	b          *board.Board
	v          *rules.Validator
	state      GameState
	history    []MoveRecord
	cursor     int
	timer      Timer
	initial    board.Snapshot
	now        func() time.Time
}

// New creates a session in the Ready state and generates its puzzle from
// the seed. Any seed string is accepted, including empty. A nil clock
// falls back to time.Now.
func New(size int, difficulty Difficulty, seed string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{difficulty: difficulty, seed: seed, now: now}
	s.rebuild(size)
	return s
}

// rebuild discards the current puzzle and generates a fresh one from the
// session's seed and difficulty.
func (s *Session) rebuild(size int) {
	s.size = size
	s.b = board.New(size)
	generate(s.b, s.difficulty, random.NewStream(s.seed))
	s.v = rules.New(s.b)
	s.initial = s.b.Snapshot()
	s.history = nil
	s.cursor = -1
	s.timer = Timer{}
	s.state = StateReady
}

// Size returns the board side length.
func (s *Session) Size() int { return s.size }

// Difficulty returns the difficulty label the session was created with.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Seed returns the seed string the puzzle was generated from.
func (s *Session) Seed() string { return s.seed }

// State returns the current lifecycle state.
func (s *Session) State() GameState { return s.state }

// Cell exposes a bounds-checked board read for rendering.
func (s *Session) Cell(row, col int) (board.Cell, bool) { return s.b.Cell(row, col) }

// Constraints returns the puzzle constraints in insertion order.
func (s *Session) Constraints() []board.Constraint { return s.b.Constraints() }

// Start begins a Ready game or resumes a Paused one. In any other state it
// is a no-op.
func (s *Session) Start() {
	switch s.state {
	case StateReady, StatePaused:
		s.timer.Start(s.now())
		s.state = StatePlaying
	}
}

// Pause freezes a Playing game. In any other state it is a no-op.
func (s *Session) Pause() {
	if s.state != StatePlaying {
		return
	}
	s.timer.Pause(s.now())
	s.state = StatePaused
}

// Reset returns the puzzle to its generated layout: history cleared, timer
// zeroed, state back to Ready. The stored initial snapshot is restored
// rather than regenerating, so the layout is identical down to the cell.
func (s *Session) Reset() {
	s.b = board.FromSnapshot(s.initial)
	s.v = rules.New(s.b)
	s.history = nil
	s.cursor = -1
	s.timer.Reset()
	s.state = StateReady
}

// NewGame discards the current puzzle entirely and generates a new one
// with the given parameters.
func (s *Session) NewGame(size int, difficulty Difficulty, seed string) {
	s.difficulty = difficulty
	s.seed = seed
	s.rebuild(size)
}

// MakeMove applies a player move. Moves are accepted only in Ready or
// Playing; a move from Ready starts the game first, even when the move
// itself then fails. Writing SymbolNone erases. Successful moves truncate
// any redo tail, append to history, and re-check completion.
func (s *Session) MakeMove(row, col int, value board.Symbol) MoveResult {
	if s.state != StateReady && s.state != StatePlaying {
		return MoveResult{Reason: "Game not active"}
	}
	if s.state == StateReady {
		s.Start()
	}

	previous, ok := s.b.Cell(row, col)
	if !ok || !s.b.SetCell(row, col, value) {
		return MoveResult{Reason: "Invalid move"}
	}

	s.history = append(s.history[:s.cursor+1], MoveRecord{
		Row:           row,
		Col:           col,
		PreviousValue: previous.Value,
		NewValue:      value,
		Timestamp:     s.now().UTC().UnixMilli(),
	})
	s.cursor++

	violations := s.v.ValidateAll()
	result := MoveResult{
		Success:    true,
		Valid:      len(violations) == 0,
		Violations: violations,
	}
	if result.Valid && s.allFilled() {
		summary := s.completeGame()
		result.Completed = true
		result.Summary = &summary
	}
	return result
}

// Undo rewinds the last applied move.
func (s *Session) Undo() HistoryResult {
	if s.cursor < 0 {
		return HistoryResult{Reason: "No moves to undo", CanRedo: s.CanRedo()}
	}
	record := s.history[s.cursor]
	s.b.SetCell(record.Row, record.Col, record.PreviousValue)
	s.cursor--
	return HistoryResult{Success: true, CanUndo: s.CanUndo(), CanRedo: s.CanRedo()}
}

// Redo reapplies the move just ahead of the cursor.
func (s *Session) Redo() HistoryResult {
	if s.cursor >= len(s.history)-1 {
		return HistoryResult{Reason: "No moves to redo", CanUndo: s.CanUndo()}
	}
	s.cursor++
	record := s.history[s.cursor]
	s.b.SetCell(record.Row, record.Col, record.NewValue)
	return HistoryResult{Success: true, CanUndo: s.CanUndo(), CanRedo: s.CanRedo()}
}

// CanUndo reports whether any move is behind the cursor.
func (s *Session) CanUndo() bool { return s.cursor >= 0 }

// CanRedo reports whether any undone move is ahead of the cursor.
func (s *Session) CanRedo() bool { return s.cursor < len(s.history)-1 }

// MoveCount returns the number of recorded moves, including any undone
// tail still available for redo.
func (s *Session) MoveCount() int { return len(s.history) }

// Hint suggests a placement for the first empty mutable cell, scanning in
// row-major order, that participates in a constraint whose other endpoint
// is already filled. Hints are only available while Playing.
func (s *Session) Hint() HintResult {
	if s.state != StatePlaying {
		return HintResult{Reason: "No obvious hints available"}
	}
	constraints := s.b.Constraints()
	for row := 0; row < s.size; row++ {
		for col := 0; col < s.size; col++ {
			cell, _ := s.b.Cell(row, col)
			if cell.Immutable || cell.Value.Filled() {
				continue
			}
			pos := board.Position{Row: row, Col: col}
			for _, c := range constraints {
				var other board.Position
				switch pos {
				case c.CellA:
					other = c.CellB
				case c.CellB:
					other = c.CellA
				default:
					continue
				}
				otherCell, ok := s.b.Cell(other.Row, other.Col)
				if !ok || !otherCell.Value.Filled() {
					continue
				}
				value := otherCell.Value
				if c.Kind == board.ConstraintNotEqual {
					value = value.Opposite()
				}
				return HintResult{Success: true, Hint: &Hint{Row: row, Col: col, Value: value}}
			}
		}
	}
	return HintResult{Reason: "No obvious hints available"}
}

// IsValid reports whether the current board breaks no rules.
func (s *Session) IsValid() bool { return s.v.IsValid() }

// Violations returns every current rule violation.
func (s *Session) Violations() []rules.Violation { return s.v.ValidateAll() }

// ErrorCells returns every implicated position tagged by rule.
func (s *Session) ErrorCells() []rules.ErrorCell { return s.v.ErrorCells() }

// IsCompleted reports whether every cell is filled and the board is valid.
// It is computed from the grid, not from the lifecycle state: an empty
// cell anywhere means false regardless of validity.
func (s *Session) IsCompleted() bool {
	return s.allFilled() && s.v.IsValid()
}

// Elapsed returns the current play duration.
func (s *Session) Elapsed() time.Duration {
	return s.timer.Elapsed(s.now())
}

// FormattedElapsed renders the current play duration as "MM:SS.CC".
func (s *Session) FormattedElapsed() string {
	return FormatDuration(s.Elapsed())
}

// completeGame finishes the session: timer paused, state Completed, and
// the closing summary built from the frozen elapsed time.
func (s *Session) completeGame() Summary {
	now := s.now()
	s.timer.Pause(now)
	s.state = StateCompleted
	elapsed := s.timer.Elapsed(now)
	return Summary{
		Time:          elapsed.Milliseconds(),
		FormattedTime: FormatDuration(elapsed),
		MoveCount:     len(s.history),
		Difficulty:    s.difficulty,
		Size:          s.size,
		Seed:          s.seed,
	}
}

func (s *Session) allFilled() bool {
	for row := 0; row < s.size; row++ {
		for col := 0; col < s.size; col++ {
			cell, _ := s.b.Cell(row, col)
			if !cell.Value.Filled() {
				return false
			}
		}
	}
	return true
}
