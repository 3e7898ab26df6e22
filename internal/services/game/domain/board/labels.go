package board

import (
	"fmt"
	"strings"
)

// Symbol identifies the content of a single cell.
type Symbol string

const (
	// SymbolNone marks an empty cell.
	SymbolNone Symbol = ""
	// SymbolSun is the first of the two playable symbols.
	SymbolSun Symbol = "SUN"
	// SymbolMoon is the second of the two playable symbols.
	SymbolMoon Symbol = "MOON"
)

// Filled reports whether the symbol is one of the two playable values.
func (s Symbol) Filled() bool {
	return s == SymbolSun || s == SymbolMoon
}

// Opposite returns the other playable symbol. Calling it on SymbolNone
// returns SymbolNone.
func (s Symbol) Opposite() Symbol {
	switch s {
	case SymbolSun:
		return SymbolMoon
	case SymbolMoon:
		return SymbolSun
	default:
		return SymbolNone
	}
}

// NormalizeSymbol parses a symbol label into a canonical value. The empty
// string is valid and maps to SymbolNone so erasing moves can be expressed
// with the same vocabulary as placing ones.
func NormalizeSymbol(value string) (Symbol, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return SymbolNone, nil
	}
	switch Symbol(strings.ToUpper(trimmed)) {
	case SymbolSun:
		return SymbolSun, nil
	case SymbolMoon:
		return SymbolMoon, nil
	default:
		return SymbolNone, fmt.Errorf("symbol %q is not supported", value)
	}
}

// ConstraintKind identifies how a constraint relates its two cells.
type ConstraintKind string

const (
	// ConstraintEqual requires both cells to hold the same symbol.
	ConstraintEqual ConstraintKind = "EQUAL"
	// ConstraintNotEqual requires the cells to hold different symbols.
	ConstraintNotEqual ConstraintKind = "NOT_EQUAL"
)

// NormalizeConstraintKind parses a constraint kind label into a canonical
// value.
func NormalizeConstraintKind(value string) (ConstraintKind, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	switch ConstraintKind(trimmed) {
	case ConstraintEqual:
		return ConstraintEqual, nil
	case ConstraintNotEqual:
		return ConstraintNotEqual, nil
	default:
		return "", fmt.Errorf("constraint kind %q is not supported", value)
	}
}
