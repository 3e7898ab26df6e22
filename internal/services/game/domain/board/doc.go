// Package board models the puzzle grid and its pairwise constraints.
//
// A board is an N×N matrix of cells, each empty or holding one of the two
// symbols, plus an insertion-ordered set of constraints linking cell pairs.
// Cells placed during generation are immutable and reject later writes, so
// the prefilled puzzle skeleton survives any sequence of player moves.
//
// The package holds:
//   - the cell matrix with bounds-checked reads and writes,
//   - the constraint set keyed by canonical position pairs,
//   - and snapshot types for saving and restoring full board state.
//
// Boards do no rule checking themselves; the rules package inspects a board
// and reports violations without mutating it.
package board
