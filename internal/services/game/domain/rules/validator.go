// Package rules validates a board against the three puzzle laws: capped
// runs of identical symbols, per-line symbol balance, and pairwise cell
// constraints. Validators are read-only; they never mutate the board they
// inspect, and every check recomputes from current cell values so there is
// no cached state to invalidate.
package rules

import (
	"fmt"

	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
)

// Rule identifies which law a violation belongs to.
type Rule string

const (
	RuleAdjacency  Rule = "ADJACENCY"
	RuleBalance    Rule = "BALANCE"
	RuleConstraint Rule = "CONSTRAINT"
)

// Violation describes one broken rule instance with the cells it implicates.
type Violation struct {
	Rule    Rule             `json:"rule"`
	Message string           `json:"message"`
	Cells   []board.Position `json:"cells"`
}

// ErrorCell tags a single implicated position with the rule that flagged it.
type ErrorCell struct {
	Position board.Position `json:"position"`
	Rule     Rule           `json:"rule"`
}

// Validator inspects one board. Rebinding to a different board means
// constructing a new validator.
type Validator struct {
	b *board.Board
}

// New creates a validator bound to the given board.
func New(b *board.Board) *Validator {
	return &Validator{b: b}
}

// ValidateAdjacentLimits reports every run of three or more identical
// symbols in a row or column. A run emits one violation per cell beyond
// the second, each citing its own trailing three-cell window, so a run of
// four yields two overlapping violations. Empty cells break runs.
func (v *Validator) ValidateAdjacentLimits() []Violation {
	var out []Violation
	size := v.b.Size()

	for row := 0; row < size; row++ {
		out = v.scanLine(out, size, func(i int) board.Position {
			return board.Position{Row: row, Col: i}
		}, fmt.Sprintf("row %d", row))
	}
	for col := 0; col < size; col++ {
		out = v.scanLine(out, size, func(i int) board.Position {
			return board.Position{Row: i, Col: col}
		}, fmt.Sprintf("column %d", col))
	}
	return out
}

// scanLine walks one row or column, tracking the current run of identical
// filled cells and emitting a violation at every index past the second
// consecutive occurrence.
func (v *Validator) scanLine(out []Violation, size int, at func(i int) board.Position, line string) []Violation {
	var runValue board.Symbol
	runLength := 0

	for i := 0; i < size; i++ {
		pos := at(i)
		cell, _ := v.b.Cell(pos.Row, pos.Col)
		switch {
		case !cell.Value.Filled():
			runValue = board.SymbolNone
			runLength = 0
		case cell.Value == runValue:
			runLength++
		default:
			runValue = cell.Value
			runLength = 1
		}
		if runLength >= 3 {
			out = append(out, Violation{
				Rule:    RuleAdjacency,
				Message: fmt.Sprintf("more than two consecutive %s in %s", runValue, line),
				Cells:   []board.Position{at(i - 2), at(i - 1), at(i)},
			})
		}
	}
	return out
}

// ValidateBalance reports rows and columns holding more of a symbol than
// ceil(size/2). The two symbols are tested independently, each exceeded
// side producing its own violation citing the whole line.
func (v *Validator) ValidateBalance() []Violation {
	var out []Violation
	size := v.b.Size()
	limit := (size + 1) / 2

	for row := 0; row < size; row++ {
		out = v.checkLineBalance(out, size, limit, func(i int) board.Position {
			return board.Position{Row: row, Col: i}
		}, fmt.Sprintf("row %d", row))
	}
	for col := 0; col < size; col++ {
		out = v.checkLineBalance(out, size, limit, func(i int) board.Position {
			return board.Position{Row: i, Col: col}
		}, fmt.Sprintf("column %d", col))
	}
	return out
}

func (v *Validator) checkLineBalance(out []Violation, size, limit int, at func(i int) board.Position, line string) []Violation {
	counts := map[board.Symbol]int{}
	cells := make([]board.Position, 0, size)
	for i := 0; i < size; i++ {
		pos := at(i)
		cell, _ := v.b.Cell(pos.Row, pos.Col)
		if cell.Value.Filled() {
			counts[cell.Value]++
		}
		cells = append(cells, pos)
	}
	for _, symbol := range []board.Symbol{board.SymbolSun, board.SymbolMoon} {
		if counts[symbol] > limit {
			out = append(out, Violation{
				Rule:    RuleBalance,
				Message: fmt.Sprintf("%s has more than %d %s", line, limit, symbol),
				Cells:   cells,
			})
		}
	}
	return out
}

// ValidateConstraints reports constraints whose two cells are both filled
// and disagree with the constraint kind. A constraint with any empty
// endpoint is skipped entirely; partial progress is never a violation.
func (v *Validator) ValidateConstraints() []Violation {
	var out []Violation
	for _, c := range v.b.Constraints() {
		a, okA := v.b.Cell(c.CellA.Row, c.CellA.Col)
		b, okB := v.b.Cell(c.CellB.Row, c.CellB.Col)
		if !okA || !okB || !a.Value.Filled() || !b.Value.Filled() {
			continue
		}
		switch c.Kind {
		case board.ConstraintEqual:
			if a.Value != b.Value {
				out = append(out, Violation{
					Rule: RuleConstraint,
					Message: fmt.Sprintf("cells (%d,%d) and (%d,%d) must hold the same symbol",
						c.CellA.Row, c.CellA.Col, c.CellB.Row, c.CellB.Col),
					Cells: []board.Position{c.CellA, c.CellB},
				})
			}
		case board.ConstraintNotEqual:
			if a.Value == b.Value {
				out = append(out, Violation{
					Rule: RuleConstraint,
					Message: fmt.Sprintf("cells (%d,%d) and (%d,%d) must hold different symbols",
						c.CellA.Row, c.CellA.Col, c.CellB.Row, c.CellB.Col),
					Cells: []board.Position{c.CellA, c.CellB},
				})
			}
		}
	}
	return out
}

// ValidateAll runs all three checks and concatenates their violations in
// adjacency, balance, constraint order.
func (v *Validator) ValidateAll() []Violation {
	out := v.ValidateAdjacentLimits()
	out = append(out, v.ValidateBalance()...)
	out = append(out, v.ValidateConstraints()...)
	return out
}

// IsValid reports whether the current board state breaks no rules. Empty
// cells are always acceptable; validity is about what is placed, not about
// completeness.
func (v *Validator) IsValid() bool {
	return len(v.ValidateAll()) == 0
}

// ErrorCells expands every violation into its implicated positions, tagged
// with the violating rule. Positions cited by multiple violations appear
// once per citation; callers that want distinct cells dedupe themselves.
func (v *Validator) ErrorCells() []ErrorCell {
	var out []ErrorCell
	for _, violation := range v.ValidateAll() {
		for _, pos := range violation.Cells {
			out = append(out, ErrorCell{Position: pos, Rule: violation.Rule})
		}
	}
	return out
}
