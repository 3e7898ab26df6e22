package board

import "fmt"

// Position addresses a single cell by zero-based row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is one grid entry. Immutable cells were placed by puzzle generation
// and never change value again for the lifetime of the board.
type Cell struct {
	Value     Symbol `json:"value"`
	Immutable bool   `json:"immutable"`
}

// Constraint links two cells with an equality requirement. Constraints are
// declarative: the board stores them and the rules package decides whether
// the current values satisfy them.
type Constraint struct {
	CellA Position       `json:"cellA"`
	CellB Position       `json:"cellB"`
	Kind  ConstraintKind `json:"kind"`
}

// Key returns the canonical identifier for the constraint's cell pair. Two
// constraints over the same ordered pair share a key regardless of kind.
func (c Constraint) Key() string {
	return ConstraintKey(c.CellA.Row, c.CellA.Col, c.CellB.Row, c.CellB.Col)
}

// ConstraintKey builds the canonical "r1,c1-r2,c2" identifier for a cell pair.
func ConstraintKey(r1, c1, r2, c2 int) string {
	return fmt.Sprintf("%d,%d-%d,%d", r1, c1, r2, c2)
}

// Board owns the cell matrix and the constraint set for one puzzle. The size
// is fixed at construction. Boards are not safe for concurrent use; callers
// that share one across goroutines serialize access themselves.
type Board struct {
	size        int
	cells       [][]Cell
	constraints map[string]Constraint
	order       []string
}

// New creates an empty board with the given side length. Sizes below zero
// are treated as zero, yielding a board with no addressable cells.
func New(size int) *Board {
	if size < 0 {
		size = 0
	}
	cells := make([][]Cell, size)
	for row := range cells {
		cells[row] = make([]Cell, size)
	}
	return &Board{
		size:        size,
		cells:       cells,
		constraints: make(map[string]Constraint),
	}
}

// Size returns the board's side length.
func (b *Board) Size() int {
	return b.size
}

// Cell returns the cell at the given position. The second return value is
// false when the position is out of bounds.
func (b *Board) Cell(row, col int) (Cell, bool) {
	if !b.inBounds(row, col) {
		return Cell{}, false
	}
	return b.cells[row][col], true
}

// SetCell writes a value into a mutable cell. It reports false, with no
// side effects, when the position is out of bounds or the cell is immutable.
// This is the only mutation path for player moves; erasing is expressed by
// writing SymbolNone.
func (b *Board) SetCell(row, col int, value Symbol) bool {
	if !b.inBounds(row, col) {
		return false
	}
	if b.cells[row][col].Immutable {
		return false
	}
	b.cells[row][col].Value = value
	return true
}

// SetImmutable writes a value unconditionally and locks the cell against
// any later SetCell. It reports false only for out-of-bounds positions.
// Generation and snapshot restore are the only callers.
func (b *Board) SetImmutable(row, col int, value Symbol) bool {
	if !b.inBounds(row, col) {
		return false
	}
	b.cells[row][col] = Cell{Value: value, Immutable: true}
	return true
}

// AddConstraint records a constraint between two in-bounds cells. A second
// constraint over the same ordered pair replaces the first in place, keeping
// the original insertion position. It reports false when either endpoint is
// out of bounds.
func (b *Board) AddConstraint(r1, c1, r2, c2 int, kind ConstraintKind) bool {
	if !b.inBounds(r1, c1) || !b.inBounds(r2, c2) {
		return false
	}
	key := ConstraintKey(r1, c1, r2, c2)
	if _, exists := b.constraints[key]; !exists {
		b.order = append(b.order, key)
	}
	b.constraints[key] = Constraint{
		CellA: Position{Row: r1, Col: c1},
		CellB: Position{Row: r2, Col: c2},
		Kind:  kind,
	}
	return true
}

// Constraints returns the constraints in insertion order. The slice is a
// copy; mutating it does not affect the board.
func (b *Board) Constraints() []Constraint {
	out := make([]Constraint, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.constraints[key])
	}
	return out
}

// Clear empties every mutable cell. Immutable cells and constraints are
// untouched, so clearing returns the grid to its generated skeleton.
func (b *Board) Clear() {
	for row := range b.cells {
		for col := range b.cells[row] {
			if !b.cells[row][col].Immutable {
				b.cells[row][col].Value = SymbolNone
			}
		}
	}
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}
