package session

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// emptySnapshot builds a restorable session snapshot with an all-empty
// mutable grid, ready for tests that need exact control over the layout.
func emptySnapshot(size int) Snapshot {
	grid := make([][]board.Cell, size)
	for row := range grid {
		grid[row] = make([]board.Cell, size)
	}
	return Snapshot{
		Size:             size,
		Grid:             grid,
		GameState:        StateReady,
		Difficulty:       DifficultyMedium,
		Seed:             "fixture",
		MoveHistory:      nil,
		CurrentMoveIndex: -1,
	}
}

func constraintEntry(r1, c1, r2, c2 int, kind board.ConstraintKind) board.ConstraintEntry {
	c := board.Constraint{
		CellA: board.Position{Row: r1, Col: c1},
		CellB: board.Position{Row: r2, Col: c2},
		Kind:  kind,
	}
	return board.ConstraintEntry{Key: c.Key(), Constraint: c}
}

func TestNewSessionStartsReady(t *testing.T) {
	s := New(4, DifficultyMedium, "TEST1234", newFakeClock().Now)
	if s.State() != StateReady {
		t.Errorf("expected READY, got %q", s.State())
	}
	if s.Elapsed() != 0 {
		t.Errorf("expected zero elapsed, got %v", s.Elapsed())
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("expected empty history")
	}
}

func TestMakeMoveAutoStarts(t *testing.T) {
	clock := newFakeClock()
	s := Restore(emptySnapshot(2), clock.Now)

	result := s.MakeMove(0, 0, board.SymbolSun)
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if s.State() != StatePlaying {
		t.Errorf("expected PLAYING after first move, got %q", s.State())
	}
	clock.Advance(time.Second)
	if s.Elapsed() != time.Second {
		t.Errorf("expected timer running, got %v", s.Elapsed())
	}
	cell, _ := s.Cell(0, 0)
	if cell.Value != board.SymbolSun {
		t.Errorf("expected SUN placed, got %q", cell.Value)
	}
}

func TestMakeMoveFailureStillStartsFromReady(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	result := s.MakeMove(5, 5, board.SymbolSun)
	if result.Success || result.Reason != "Invalid move" {
		t.Fatalf("expected invalid move, got %+v", result)
	}
	if s.State() != StatePlaying {
		t.Errorf("expected the attempt to start the game, got %q", s.State())
	}
	if s.MoveCount() != 0 {
		t.Errorf("expected nothing recorded, got %d moves", s.MoveCount())
	}
}

func TestMakeMoveRejectedWhenPaused(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)
	s.Pause()

	result := s.MakeMove(0, 1, board.SymbolMoon)
	if result.Success || result.Reason != "Game not active" {
		t.Fatalf("expected game-not-active rejection, got %+v", result)
	}
	if s.MoveCount() != 1 {
		t.Errorf("expected history untouched, got %d moves", s.MoveCount())
	}
}

func TestMakeMoveRejectsImmutableCell(t *testing.T) {
	snap := emptySnapshot(2)
	snap.Grid[0][0] = board.Cell{Value: board.SymbolSun, Immutable: true}
	s := Restore(snap, newFakeClock().Now)

	result := s.MakeMove(0, 0, board.SymbolMoon)
	if result.Success || result.Reason != "Invalid move" {
		t.Fatalf("expected invalid move, got %+v", result)
	}
	cell, _ := s.Cell(0, 0)
	if cell.Value != board.SymbolSun {
		t.Errorf("expected immutable value kept, got %q", cell.Value)
	}
}

func TestMakeMoveReportsViolations(t *testing.T) {
	s := Restore(emptySnapshot(4), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)
	s.MakeMove(0, 1, board.SymbolSun)

	result := s.MakeMove(0, 2, board.SymbolSun)
	if !result.Success {
		t.Fatalf("expected move to land, got %+v", result)
	}
	if result.Valid {
		t.Error("expected invalid board after three consecutive suns")
	}
	if len(result.Violations) == 0 {
		t.Error("expected violations reported")
	}
	if result.Completed {
		t.Error("expected incomplete grid to stay incomplete")
	}
}

func TestErasingIsAMove(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)

	result := s.MakeMove(0, 0, board.SymbolNone)
	if !result.Success {
		t.Fatalf("expected erase to succeed, got %+v", result)
	}
	cell, _ := s.Cell(0, 0)
	if cell.Value != board.SymbolNone {
		t.Errorf("expected empty cell, got %q", cell.Value)
	}
	if s.MoveCount() != 2 {
		t.Errorf("expected erase recorded, got %d moves", s.MoveCount())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)
	s.MakeMove(0, 0, board.SymbolMoon)

	undo := s.Undo()
	if !undo.Success || !undo.CanUndo || !undo.CanRedo {
		t.Fatalf("expected undo with headroom both ways, got %+v", undo)
	}
	cell, _ := s.Cell(0, 0)
	if cell.Value != board.SymbolSun {
		t.Fatalf("expected SUN restored, got %q", cell.Value)
	}

	redo := s.Redo()
	if !redo.Success || !redo.CanUndo || redo.CanRedo {
		t.Fatalf("expected redo to the tip, got %+v", redo)
	}
	cell, _ = s.Cell(0, 0)
	if cell.Value != board.SymbolMoon {
		t.Fatalf("expected MOON reapplied, got %q", cell.Value)
	}
}

func TestUndoAtBoundary(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	result := s.Undo()
	if result.Success || result.Reason != "No moves to undo" {
		t.Fatalf("expected undo boundary failure, got %+v", result)
	}
}

func TestRedoAtBoundary(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)
	result := s.Redo()
	if result.Success || result.Reason != "No moves to redo" {
		t.Fatalf("expected redo boundary failure, got %+v", result)
	}
	if !result.CanUndo {
		t.Error("expected undo still possible")
	}
}

func TestNewMoveTruncatesRedoTail(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)  // A
	s.MakeMove(0, 1, board.SymbolMoon) // B
	s.MakeMove(1, 0, board.SymbolMoon) // C
	s.Undo()
	s.Undo()

	s.MakeMove(1, 1, board.SymbolSun) // D

	if s.MoveCount() != 2 {
		t.Fatalf("expected history [A, D], got %d moves", s.MoveCount())
	}
	history := s.Snapshot().MoveHistory
	if history[0].Row != 0 || history[0].Col != 0 || history[0].NewValue != board.SymbolSun {
		t.Errorf("expected A first, got %+v", history[0])
	}
	if history[1].Row != 1 || history[1].Col != 1 || history[1].NewValue != board.SymbolSun {
		t.Errorf("expected D second, got %+v", history[1])
	}
	if s.CanRedo() {
		t.Error("expected redo tail discarded")
	}
}

func TestMoveTimestamps(t *testing.T) {
	clock := newFakeClock()
	s := Restore(emptySnapshot(2), clock.Now)
	s.MakeMove(0, 0, board.SymbolSun)
	clock.Advance(3 * time.Second)
	s.MakeMove(0, 1, board.SymbolMoon)

	history := s.Snapshot().MoveHistory
	if history[0].Timestamp != clock.now.Add(-3*time.Second).UnixMilli() {
		t.Errorf("unexpected first timestamp %d", history[0].Timestamp)
	}
	if history[1].Timestamp != clock.now.UnixMilli() {
		t.Errorf("unexpected second timestamp %d", history[1].Timestamp)
	}
}

func TestCompletionOnValidFullGrid(t *testing.T) {
	clock := newFakeClock()
	s := Restore(emptySnapshot(2), clock.Now)

	s.MakeMove(0, 0, board.SymbolSun)
	clock.Advance(61250 * time.Millisecond)
	s.MakeMove(0, 1, board.SymbolMoon)
	s.MakeMove(1, 0, board.SymbolMoon)
	result := s.MakeMove(1, 1, board.SymbolSun)

	if !result.Success || !result.Completed {
		t.Fatalf("expected completing move, got %+v", result)
	}
	if s.State() != StateCompleted {
		t.Fatalf("expected COMPLETED, got %q", s.State())
	}
	if result.Summary == nil {
		t.Fatal("expected summary on completion")
	}
	if result.Summary.MoveCount != 4 || result.Summary.Size != 2 {
		t.Errorf("unexpected summary %+v", result.Summary)
	}
	if result.Summary.Time != 61250 || result.Summary.FormattedTime != "01:01.25" {
		t.Errorf("unexpected summary timing %+v", result.Summary)
	}
	if result.Summary.Seed != "fixture" || result.Summary.Difficulty != DifficultyMedium {
		t.Errorf("unexpected summary identity %+v", result.Summary)
	}

	// Completed is terminal for moves.
	blocked := s.MakeMove(0, 0, board.SymbolNone)
	if blocked.Success || blocked.Reason != "Game not active" {
		t.Fatalf("expected completed game to reject moves, got %+v", blocked)
	}

	// Timer frozen at completion.
	clock.Advance(time.Hour)
	if s.Elapsed() != 61250*time.Millisecond {
		t.Errorf("expected frozen elapsed, got %v", s.Elapsed())
	}
}

func TestNoCompletionOnInvalidFullGrid(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)
	s.MakeMove(0, 1, board.SymbolSun)
	s.MakeMove(1, 0, board.SymbolMoon)
	result := s.MakeMove(1, 1, board.SymbolMoon)

	if result.Completed {
		t.Fatal("expected full but invalid grid not to complete")
	}
	if s.State() != StatePlaying {
		t.Errorf("expected still PLAYING, got %q", s.State())
	}
	if s.IsCompleted() {
		t.Error("expected IsCompleted false on invalid grid")
	}
}

func TestIsCompletedRequiresFullGrid(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)
	if s.IsCompleted() {
		t.Error("expected incomplete grid to report false however valid")
	}
}

func TestPauseAndResume(t *testing.T) {
	clock := newFakeClock()
	s := Restore(emptySnapshot(2), clock.Now)
	s.MakeMove(0, 0, board.SymbolSun)

	clock.Advance(30 * time.Second)
	s.Pause()
	if s.State() != StatePaused {
		t.Fatalf("expected PAUSED, got %q", s.State())
	}
	clock.Advance(10 * time.Minute)
	if s.Elapsed() != 30*time.Second {
		t.Errorf("expected frozen 30s, got %v", s.Elapsed())
	}

	s.Start()
	if s.State() != StatePlaying {
		t.Fatalf("expected PLAYING after resume, got %q", s.State())
	}
	clock.Advance(15 * time.Second)
	if s.Elapsed() != 45*time.Second {
		t.Errorf("expected 45s after resume, got %v", s.Elapsed())
	}
}

func TestPauseOutsidePlayingIsNoop(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.Pause()
	if s.State() != StateReady {
		t.Errorf("expected READY untouched, got %q", s.State())
	}
}

func TestResetRestoresInitialLayout(t *testing.T) {
	clock := newFakeClock()
	snap := emptySnapshot(2)
	snap.Grid[0][0] = board.Cell{Value: board.SymbolSun, Immutable: true}
	snap.Constraints = []board.ConstraintEntry{
		constraintEntry(0, 0, 0, 1, board.ConstraintEqual),
	}
	s := Restore(snap, clock.Now)
	s.MakeMove(0, 1, board.SymbolMoon)
	clock.Advance(time.Minute)

	s.Reset()

	if s.State() != StateReady {
		t.Fatalf("expected READY, got %q", s.State())
	}
	locked, _ := s.Cell(0, 0)
	if locked.Value != board.SymbolSun || !locked.Immutable {
		t.Errorf("expected immutable cell kept, got %+v", locked)
	}
	played, _ := s.Cell(0, 1)
	if played.Value != board.SymbolNone {
		t.Errorf("expected played cell cleared, got %q", played.Value)
	}
	if len(s.Constraints()) != 1 {
		t.Errorf("expected constraints kept, got %d", len(s.Constraints()))
	}
	if s.MoveCount() != 0 || s.CanUndo() || s.CanRedo() {
		t.Error("expected history cleared")
	}
	if s.Elapsed() != 0 {
		t.Errorf("expected timer zeroed, got %v", s.Elapsed())
	}
}

func TestResetFromCompleted(t *testing.T) {
	s := Restore(emptySnapshot(2), newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)
	s.MakeMove(0, 1, board.SymbolMoon)
	s.MakeMove(1, 0, board.SymbolMoon)
	s.MakeMove(1, 1, board.SymbolSun)
	if s.State() != StateCompleted {
		t.Fatalf("expected COMPLETED, got %q", s.State())
	}

	s.Reset()
	if s.State() != StateReady {
		t.Fatalf("expected reset out of COMPLETED, got %q", s.State())
	}
	if result := s.MakeMove(0, 0, board.SymbolMoon); !result.Success {
		t.Errorf("expected play after reset, got %+v", result)
	}
}

func TestNewGameRegenerates(t *testing.T) {
	s := New(4, DifficultyMedium, "TEST1234", newFakeClock().Now)
	s.MakeMove(0, 0, board.SymbolSun)

	s.NewGame(6, DifficultyHard, "fresh-seed")

	if s.Size() != 6 || s.Difficulty() != DifficultyHard || s.Seed() != "fresh-seed" {
		t.Errorf("unexpected session identity: size %d difficulty %q seed %q",
			s.Size(), s.Difficulty(), s.Seed())
	}
	if s.State() != StateReady || s.MoveCount() != 0 {
		t.Error("expected a fresh READY session")
	}

	reference := New(6, DifficultyHard, "fresh-seed", newFakeClock().Now)
	if !reflect.DeepEqual(s.Snapshot().Grid, reference.Snapshot().Grid) {
		t.Error("expected NewGame output to match a fresh generation")
	}
}

func TestHintFromEqualConstraint(t *testing.T) {
	snap := emptySnapshot(3)
	snap.Grid[0][1] = board.Cell{Value: board.SymbolSun, Immutable: true}
	snap.Constraints = []board.ConstraintEntry{
		constraintEntry(0, 0, 0, 1, board.ConstraintEqual),
	}
	snap.GameState = StatePlaying
	s := Restore(snap, newFakeClock().Now)

	result := s.Hint()
	if !result.Success || result.Hint == nil {
		t.Fatalf("expected a hint, got %+v", result)
	}
	if result.Hint.Row != 0 || result.Hint.Col != 0 || result.Hint.Value != board.SymbolSun {
		t.Errorf("expected SUN at (0,0), got %+v", result.Hint)
	}
}

func TestHintFromNotEqualConstraint(t *testing.T) {
	snap := emptySnapshot(3)
	snap.Grid[1][1] = board.Cell{Value: board.SymbolMoon, Immutable: true}
	snap.Constraints = []board.ConstraintEntry{
		constraintEntry(1, 1, 2, 1, board.ConstraintNotEqual),
	}
	snap.GameState = StatePlaying
	s := Restore(snap, newFakeClock().Now)

	result := s.Hint()
	if !result.Success {
		t.Fatalf("expected a hint, got %+v", result)
	}
	if result.Hint.Row != 2 || result.Hint.Col != 1 || result.Hint.Value != board.SymbolSun {
		t.Errorf("expected SUN at (2,1), got %+v", result.Hint)
	}
}

func TestHintScansRowMajor(t *testing.T) {
	snap := emptySnapshot(3)
	snap.Grid[0][1] = board.Cell{Value: board.SymbolSun, Immutable: true}
	// Insertion order favors the (1,1) constraint; the scan order must not.
	snap.Constraints = []board.ConstraintEntry{
		constraintEntry(1, 1, 0, 1, board.ConstraintEqual),
		constraintEntry(0, 0, 0, 1, board.ConstraintNotEqual),
	}
	snap.GameState = StatePlaying
	s := Restore(snap, newFakeClock().Now)

	result := s.Hint()
	if !result.Success {
		t.Fatalf("expected a hint, got %+v", result)
	}
	if result.Hint.Row != 0 || result.Hint.Col != 0 || result.Hint.Value != board.SymbolMoon {
		t.Errorf("expected (0,0) MOON from row-major scan, got %+v", result.Hint)
	}
}

func TestHintOnlyWhilePlaying(t *testing.T) {
	snap := emptySnapshot(3)
	snap.Grid[0][1] = board.Cell{Value: board.SymbolSun, Immutable: true}
	snap.Constraints = []board.ConstraintEntry{
		constraintEntry(0, 0, 0, 1, board.ConstraintEqual),
	}
	s := Restore(snap, newFakeClock().Now)

	result := s.Hint()
	if result.Success || result.Reason != "No obvious hints available" {
		t.Fatalf("expected hint refusal outside PLAYING, got %+v", result)
	}
}

func TestHintWhenNothingObvious(t *testing.T) {
	snap := emptySnapshot(3)
	// Both endpoints empty: the constraint cannot drive a hint.
	snap.Constraints = []board.ConstraintEntry{
		constraintEntry(0, 0, 0, 1, board.ConstraintEqual),
	}
	snap.GameState = StatePlaying
	s := Restore(snap, newFakeClock().Now)

	result := s.Hint()
	if result.Success || result.Reason != "No obvious hints available" {
		t.Fatalf("expected no hint, got %+v", result)
	}
}

func TestSnapshotRestoreContinuesPlay(t *testing.T) {
	clock := newFakeClock()
	s := Restore(emptySnapshot(2), clock.Now)
	s.MakeMove(0, 0, board.SymbolSun)
	s.MakeMove(0, 1, board.SymbolMoon)
	s.Undo()
	clock.Advance(30 * time.Second)
	s.Pause()

	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored := Restore(snap, clock.Now)
	if restored.State() != StatePaused {
		t.Fatalf("expected PAUSED restored, got %q", restored.State())
	}
	if restored.Elapsed() != 30*time.Second {
		t.Errorf("expected 30s elapsed, got %v", restored.Elapsed())
	}
	if !restored.CanUndo() || !restored.CanRedo() {
		t.Error("expected cursor mid-history")
	}

	redo := restored.Redo()
	if !redo.Success {
		t.Fatalf("expected redo after restore, got %+v", redo)
	}
	cell, _ := restored.Cell(0, 1)
	if cell.Value != board.SymbolMoon {
		t.Errorf("expected redo to replay MOON, got %q", cell.Value)
	}
}

func TestRestoreRebuildsValidatorAndInitialLayout(t *testing.T) {
	snap := emptySnapshot(2)
	snap.Grid[0][0] = board.Cell{Value: board.SymbolSun, Immutable: true}
	snap.Grid[0][1] = board.Cell{Value: board.SymbolSun} // played, invalid balance
	snap.GameState = StatePlaying
	s := Restore(snap, newFakeClock().Now)

	if s.IsValid() {
		t.Error("expected restored validator to see the violation")
	}

	s.Reset()
	locked, _ := s.Cell(0, 0)
	played, _ := s.Cell(0, 1)
	if locked.Value != board.SymbolSun || played.Value != board.SymbolNone {
		t.Error("expected reset to clear played cells and keep immutable ones")
	}
}

func TestRestoreRunningTimerKeepsTicking(t *testing.T) {
	clock := newFakeClock()
	snap := emptySnapshot(2)
	snap.GameState = StatePlaying
	snap.Timer = TimerSnapshot{
		StartTime: clock.Now().Add(-61250 * time.Millisecond).UnixMilli(),
		IsRunning: true,
	}
	s := Restore(snap, clock.Now)
	if got := s.FormattedElapsed(); got != "01:01.25" {
		t.Errorf("expected 01:01.25, got %q", got)
	}
}

func TestRestoreClampsCursor(t *testing.T) {
	snap := emptySnapshot(2)
	snap.MoveHistory = []MoveRecord{{Row: 0, Col: 0, NewValue: board.SymbolSun}}
	snap.CurrentMoveIndex = 7
	s := Restore(snap, newFakeClock().Now)
	if s.CanRedo() {
		t.Error("expected clamped cursor at the history tip")
	}
	if !s.CanUndo() {
		t.Error("expected undo available")
	}
}

func TestRestoreUnknownStateFallsBackToReady(t *testing.T) {
	snap := emptySnapshot(2)
	snap.GameState = "LIMBO"
	s := Restore(snap, newFakeClock().Now)
	if s.State() != StateReady {
		t.Errorf("expected READY fallback, got %q", s.State())
	}
}
