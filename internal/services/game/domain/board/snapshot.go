package board

// ConstraintEntry pairs a constraint with its canonical key for snapshot
// layouts that must preserve insertion order.
type ConstraintEntry struct {
	Key        string     `json:"key"`
	Constraint Constraint `json:"constraint"`
}

// Snapshot is the full serializable state of a board.
type Snapshot struct {
	Size        int               `json:"size"`
	Grid        [][]Cell          `json:"grid"`
	Constraints []ConstraintEntry `json:"constraints"`
}

// Snapshot returns a deep copy of the board state. The copy shares no
// memory with the board, so later moves do not leak into saved snapshots.
func (b *Board) Snapshot() Snapshot {
	grid := make([][]Cell, b.size)
	for row := range b.cells {
		grid[row] = make([]Cell, b.size)
		copy(grid[row], b.cells[row])
	}
	constraints := make([]ConstraintEntry, 0, len(b.order))
	for _, key := range b.order {
		constraints = append(constraints, ConstraintEntry{
			Key:        key,
			Constraint: b.constraints[key],
		})
	}
	return Snapshot{Size: b.size, Grid: grid, Constraints: constraints}
}

// FromSnapshot rebuilds a board from a snapshot produced by Snapshot.
// Entries outside the snapshot's declared size are dropped rather than
// widening the grid; constraint keys are re-derived from cell positions.
func FromSnapshot(s Snapshot) *Board {
	b := New(s.Size)
	for row := range s.Grid {
		for col := range s.Grid[row] {
			cell := s.Grid[row][col]
			if cell.Immutable {
				b.SetImmutable(row, col, cell.Value)
				continue
			}
			b.SetCell(row, col, cell.Value)
		}
	}
	for _, entry := range s.Constraints {
		c := entry.Constraint
		b.AddConstraint(c.CellA.Row, c.CellA.Col, c.CellB.Row, c.CellB.Col, c.Kind)
	}
	return b
}
