package session

import (
	"math"

	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/core/random"
)

// generate fills an empty board with the puzzle skeleton for a difficulty,
// consuming the stream in a fixed order so equal seeds yield equal puzzles.
//
// # Ordering
//
// The stream is drawn strictly in this sequence: one draw per swap of the
// backward Fisher-Yates shuffle over the row-major position list, one draw
// per prefilled cell to pick its symbol, then four draws per constraint
// iteration (row, column, kind, orientation). A vertical constraint drawn
// on the last row is discarded, but its four draws are still consumed, so
// later iterations stay aligned across implementations.
func generate(b *board.Board, difficulty Difficulty, stream *random.Stream) {
	size := b.Size()

	positions := make([]board.Position, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			positions = append(positions, board.Position{Row: row, Col: col})
		}
	}
	for i := len(positions) - 1; i > 0; i-- {
		j := int(math.Floor(stream.Next() * float64(i+1)))
		positions[i], positions[j] = positions[j], positions[i]
	}

	prefilled := int(math.Floor(difficulty.prefillRatio() * float64(size*size)))
	if prefilled > len(positions) {
		prefilled = len(positions)
	}
	for _, pos := range positions[:prefilled] {
		value := board.SymbolMoon
		if stream.Next() > 0.5 {
			value = board.SymbolSun
		}
		b.SetImmutable(pos.Row, pos.Col, value)
	}

	constraintCount := int(math.Floor(0.7 * float64(size)))
	for i := 0; i < constraintCount; i++ {
		row := int(math.Floor(stream.Next() * float64(size)))
		col := int(math.Floor(stream.Next() * float64(size-1)))
		kind := board.ConstraintNotEqual
		if stream.Next() > 0.5 {
			kind = board.ConstraintEqual
		}
		horizontal := stream.Next() > 0.5
		switch {
		case horizontal:
			b.AddConstraint(row, col, row, col+1, kind)
		case row < size-1:
			b.AddConstraint(row, col, row+1, col, kind)
		}
	}
}
