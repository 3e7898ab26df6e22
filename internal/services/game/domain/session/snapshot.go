package session

import (
	"time"

	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/rules"
)

// TimerSnapshot is the serialized timer: raw field values, not a computed
// elapsed reading. StartTime is UTC milliseconds, zero when the timer has
// never started. A snapshot saved mid-run keeps IsRunning true, so the
// clock keeps ticking across a save and restore.
type TimerSnapshot struct {
	StartTime   int64 `json:"startTime"`
	ElapsedTime int64 `json:"elapsedTime"`
	IsRunning   bool  `json:"isRunning"`
}

// Snapshot is the full persisted session layout. It carries everything a
// fresh process needs to continue the game: grid, constraints, lifecycle
// state, seed, timer fields, and the complete move history with its
// cursor.
type Snapshot struct {
	Size             int                     `json:"size"`
	Grid             [][]board.Cell          `json:"grid"`
	Constraints      []board.ConstraintEntry `json:"constraints"`
	GameState        GameState               `json:"gameState"`
	Difficulty       Difficulty              `json:"difficulty"`
	Seed             string                  `json:"seed"`
	Timer            TimerSnapshot           `json:"timer"`
	MoveHistory      []MoveRecord            `json:"moveHistory"`
	CurrentMoveIndex int                     `json:"currentMoveIndex"`
}

// Snapshot serializes the session with full fidelity.
func (s *Session) Snapshot() Snapshot {
	bs := s.b.Snapshot()
	history := make([]MoveRecord, len(s.history))
	copy(history, s.history)

	var start int64
	if !s.timer.startTime.IsZero() {
		start = s.timer.startTime.UTC().UnixMilli()
	}
	return Snapshot{
		Size:        bs.Size,
		Grid:        bs.Grid,
		Constraints: bs.Constraints,
		GameState:   s.state,
		Difficulty:  s.difficulty,
		Seed:        s.seed,
		Timer: TimerSnapshot{
			StartTime:   start,
			ElapsedTime: s.timer.elapsed.Milliseconds(),
			IsRunning:   s.timer.running,
		},
		MoveHistory:      history,
		CurrentMoveIndex: s.cursor,
	}
}

// Restore rebuilds a session from a snapshot produced by Snapshot. The
// board is fully replaced and a fresh validator bound to it. The initial
// layout for Reset is recovered by clearing the restored board's mutable
// cells, which matches the state generation snapshotted originally. The
// history cursor is clamped to the restored history's bounds.
func Restore(snap Snapshot, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}

	b := board.FromSnapshot(board.Snapshot{
		Size:        snap.Size,
		Grid:        snap.Grid,
		Constraints: snap.Constraints,
	})

	state, ok := NormalizeGameState(string(snap.GameState))
	if !ok {
		state = StateReady
	}

	cursor := snap.CurrentMoveIndex
	if cursor < -1 {
		cursor = -1
	}
	if cursor > len(snap.MoveHistory)-1 {
		cursor = len(snap.MoveHistory) - 1
	}

	s := &Session{
		size:       b.Size(),
		difficulty: snap.Difficulty,
		seed:       snap.Seed,
		b:          b,
		v:          rules.New(b),
		state:      state,
		history:    append([]MoveRecord(nil), snap.MoveHistory...),
		cursor:     cursor,
		now:        now,
	}

	var start time.Time
	if snap.Timer.StartTime != 0 {
		start = time.UnixMilli(snap.Timer.StartTime).UTC()
	}
	s.timer = Timer{
		startTime: start,
		elapsed:   time.Duration(snap.Timer.ElapsedTime) * time.Millisecond,
		running:   snap.Timer.IsRunning,
	}

	initial := board.FromSnapshot(b.Snapshot())
	initial.Clear()
	s.initial = initial.Snapshot()

	return s
}
