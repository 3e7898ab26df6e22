//go:build scenario

package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
)

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working dir: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			t.Fatal("go.mod not found")
		}
		wd = parent
	}
}

func stringArg(t *testing.T, args map[string]any, key string) string {
	t.Helper()

	value, ok := args[key].(string)
	if !ok {
		t.Fatalf("step argument %q must be a string, got %T", key, args[key])
	}
	return value
}

func optionalStringArg(args map[string]any, key, fallback string) string {
	value, ok := args[key].(string)
	if !ok {
		return fallback
	}
	return value
}

func intArg(t *testing.T, args map[string]any, key string) int {
	t.Helper()

	value, ok := args[key].(int)
	if !ok {
		t.Fatalf("step argument %q must be an integer, got %T", key, args[key])
	}
	return value
}

func optionalIntArg(args map[string]any, key, fallback int) int {
	value, ok := args[key].(int)
	if !ok {
		return fallback
	}
	return value
}

func boolArg(t *testing.T, args map[string]any, key string) bool {
	t.Helper()

	value, ok := args[key].(bool)
	if !ok {
		t.Fatalf("step argument %q must be a boolean, got %T", key, args[key])
	}
	return value
}

func symbolArg(t *testing.T, args map[string]any, key string) board.Symbol {
	t.Helper()

	symbol, err := board.NormalizeSymbol(stringArg(t, args, key))
	if err != nil {
		t.Fatalf("step argument %q: %v", key, err)
	}
	return symbol
}

func firstEmptyCell(t *testing.T, s *session.Session) (int, int) {
	t.Helper()

	for row := 0; row < s.Size(); row++ {
		for col := 0; col < s.Size(); col++ {
			cell, ok := s.Cell(row, col)
			if !ok {
				continue
			}
			if !cell.Immutable && !cell.Value.Filled() {
				return row, col
			}
		}
	}
	t.Fatal("board has no empty cell")
	return 0, 0
}
