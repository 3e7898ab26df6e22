// Package session owns one puzzle instance end to end.
//
// A session holds the board, the validator bound to it, the seeded
// generator output, a linear move history with an undo/redo cursor, and
// the play timer. Callers never touch the board directly: moves, hints,
// lifecycle transitions, and snapshots all go through the session so the
// history and timer stay consistent with what is on the grid.
//
// The package holds:
//   - the lifecycle state machine (Ready, Playing, Paused, Completed),
//   - deterministic puzzle generation from a seed string,
//   - move application with undo/redo and completion detection,
//   - and the snapshot layout used for saving and restoring games.
//
// Sessions are single-threaded by design. Anything that shares one across
// goroutines (the HTTP registry does) wraps calls in its own lock.
package session
