package domain

import (
	"fmt"
	"strings"

	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
)

// renderBoard draws the grid as text for agent display. Cells show S for
// sun, M for moon, . for empty; prefilled cells are bracketed. Constraints
// follow as one line each, since inlining them between cells is unreadable
// at small sizes.
func renderBoard(s *session.Session) string {
	var sb strings.Builder

	size := s.Size()
	sb.WriteString("   ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&sb, "%3d", col)
	}
	sb.WriteByte('\n')

	for row := 0; row < size; row++ {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 0; col < size; col++ {
			cell, _ := s.Cell(row, col)
			mark := "."
			switch cell.Value {
			case board.SymbolSun:
				mark = "S"
			case board.SymbolMoon:
				mark = "M"
			}
			if cell.Immutable {
				sb.WriteString(fmt.Sprintf("[%s]", mark))
			} else {
				sb.WriteString(fmt.Sprintf(" %s ", mark))
			}
		}
		sb.WriteByte('\n')
	}

	constraints := s.Constraints()
	if len(constraints) > 0 {
		sb.WriteString("constraints:\n")
		for _, c := range constraints {
			mark := "="
			if c.Kind == board.ConstraintNotEqual {
				mark = "x"
			}
			fmt.Fprintf(&sb, "  (%d,%d) %s (%d,%d)\n", c.CellA.Row, c.CellA.Col, mark, c.CellB.Row, c.CellB.Col)
		}
	}

	return sb.String()
}
