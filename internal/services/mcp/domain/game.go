// Package domain defines the MCP tool surface over the puzzle engine.
//
// Tools operate on sessions held in the same registry type the game HTTP
// service uses, so an agent and a browser can drive one board in-process.
package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/equinox.space/internal/platform/id"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/board"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
	"github.com/louisbranch/equinox.space/internal/services/game/registry"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Board size bounds accepted by the tools, matching the HTTP API boundary.
const (
	minBoardSize = 2
	maxBoardSize = 12
)

// GameNewInput configures a fresh puzzle.
type GameNewInput struct {
	Size       int    `json:"size" jsonschema:"board size (2-12)"`
	Difficulty string `json:"difficulty" jsonschema:"difficulty (easy, medium, hard)"`
	Seed       string `json:"seed,omitempty" jsonschema:"optional generation seed; the same seed reproduces the same board"`
}

// GameIDInput addresses an existing session.
type GameIDInput struct {
	GameID string `json:"game_id" jsonschema:"session identifier returned by game_new"`
}

// GameMoveInput places or erases a symbol.
type GameMoveInput struct {
	GameID string `json:"game_id" jsonschema:"session identifier returned by game_new"`
	Row    int    `json:"row" jsonschema:"zero-based row"`
	Col    int    `json:"col" jsonschema:"zero-based column"`
	Value  string `json:"value" jsonschema:"SUN, MOON, or empty string to erase"`
}

// GameStateResult is the session view shared by most tools.
type GameStateResult struct {
	GameID     string   `json:"game_id" jsonschema:"session identifier"`
	Size       int      `json:"size" jsonschema:"board size"`
	Difficulty string   `json:"difficulty" jsonschema:"difficulty label"`
	Seed       string   `json:"seed" jsonschema:"generation seed"`
	State      string   `json:"state" jsonschema:"lifecycle state (READY, PLAYING, PAUSED, COMPLETED)"`
	Board      string   `json:"board" jsonschema:"text rendering of the grid and constraints"`
	Valid      bool     `json:"valid" jsonschema:"whether the board breaks no rules"`
	Violations []string `json:"violations,omitempty" jsonschema:"current rule violation messages"`
	Completed  bool     `json:"completed" jsonschema:"whether the puzzle is solved"`
	CanUndo    bool     `json:"can_undo" jsonschema:"whether a move can be undone"`
	CanRedo    bool     `json:"can_redo" jsonschema:"whether an undone move can be reapplied"`
	MoveCount  int      `json:"move_count" jsonschema:"number of applied moves"`
	Elapsed    string   `json:"elapsed" jsonschema:"elapsed time as MM:SS.CC"`
}

// GameMoveResult reports one move attempt plus the refreshed state.
type GameMoveResult struct {
	Success   bool            `json:"success" jsonschema:"whether the move was applied"`
	Reason    string          `json:"reason,omitempty" jsonschema:"failure reason when the move was rejected"`
	Completed bool            `json:"completed" jsonschema:"whether this move solved the puzzle"`
	State     GameStateResult `json:"state" jsonschema:"session state after the attempt"`
}

// GameHistoryResult reports an undo or redo attempt.
type GameHistoryResult struct {
	Success bool            `json:"success" jsonschema:"whether the operation was applied"`
	Reason  string          `json:"reason,omitempty" jsonschema:"failure reason when nothing could be done"`
	State   GameStateResult `json:"state" jsonschema:"session state after the attempt"`
}

// GameHintResult reports a hint request.
type GameHintResult struct {
	Success bool   `json:"success" jsonschema:"whether a hint was found"`
	Reason  string `json:"reason,omitempty" jsonschema:"why no hint is available"`
	Row     int    `json:"row,omitempty" jsonschema:"suggested row"`
	Col     int    `json:"col,omitempty" jsonschema:"suggested column"`
	Value   string `json:"value,omitempty" jsonschema:"suggested symbol"`
}

// GameBoardResult carries the text rendering alone.
type GameBoardResult struct {
	Board string `json:"board" jsonschema:"text rendering of the grid and constraints"`
}

func GameNewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_new",
		Description: "Starts a new puzzle and returns its session id and state",
	}
}

func GameStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_state",
		Description: "Reads the current state of a puzzle session",
	}
}

func GameMoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_move",
		Description: "Places SUN, MOON, or erases a cell",
	}
}

func GameUndoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_undo",
		Description: "Undoes the last move",
	}
}

func GameRedoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_redo",
		Description: "Reapplies the last undone move",
	}
}

func GameHintTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_hint",
		Description: "Suggests a placement derived from a constraint",
	}
}

func GamePauseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_pause",
		Description: "Pauses the puzzle timer",
	}
}

func GameResumeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_resume",
		Description: "Resumes a paused puzzle",
	}
}

func GameResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_reset",
		Description: "Returns the puzzle to its generated layout",
	}
}

func GameBoardTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "game_board",
		Description: "Renders the board as text for display",
	}
}

// validateGameParams normalizes new-game inputs the way the HTTP API does:
// bounded size, strict difficulty, generated seed when blank.
func validateGameParams(size int, difficulty, seed string) (session.Difficulty, string, error) {
	if size < minBoardSize || size > maxBoardSize {
		return "", "", fmt.Errorf("size %d is out of range [%d, %d]", size, minBoardSize, maxBoardSize)
	}
	normalized, ok := session.NormalizeDifficulty(difficulty)
	if !ok {
		return "", "", fmt.Errorf("difficulty %q is not supported", difficulty)
	}
	seed = strings.TrimSpace(seed)
	if seed == "" {
		generated, err := id.NewID()
		if err != nil {
			return "", "", err
		}
		seed = generated
	}
	return normalized, seed, nil
}

func newGameStateResult(gameID string, s *session.Session) GameStateResult {
	var violations []string
	for _, v := range s.Violations() {
		violations = append(violations, v.Message)
	}
	return GameStateResult{
		GameID:     gameID,
		Size:       s.Size(),
		Difficulty: string(s.Difficulty()),
		Seed:       s.Seed(),
		State:      string(s.State()),
		Board:      renderBoard(s),
		Valid:      s.IsValid(),
		Violations: violations,
		Completed:  s.IsCompleted(),
		CanUndo:    s.CanUndo(),
		CanRedo:    s.CanRedo(),
		MoveCount:  s.MoveCount(),
		Elapsed:    s.FormattedElapsed(),
	}
}

func GameNewHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameNewInput, GameStateResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GameNewInput) (*mcp.CallToolResult, GameStateResult, error) {
		difficulty, seed, err := validateGameParams(input.Size, input.Difficulty, input.Seed)
		if err != nil {
			return nil, GameStateResult{}, err
		}

		sess := session.New(input.Size, difficulty, seed, nil)
		gameID, err := reg.Add(sess)
		if err != nil {
			return nil, GameStateResult{}, err
		}

		var result GameStateResult
		err = reg.Do(gameID, func(s *session.Session) error {
			result = newGameStateResult(gameID, s)
			return nil
		})
		return nil, result, err
	}
}

func GameStateHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameIDInput, GameStateResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GameIDInput) (*mcp.CallToolResult, GameStateResult, error) {
		var result GameStateResult
		err := reg.Do(input.GameID, func(s *session.Session) error {
			result = newGameStateResult(input.GameID, s)
			return nil
		})
		return nil, result, err
	}
}

func GameMoveHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameMoveInput, GameMoveResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GameMoveInput) (*mcp.CallToolResult, GameMoveResult, error) {
		value, err := board.NormalizeSymbol(input.Value)
		if err != nil {
			return nil, GameMoveResult{}, err
		}

		var result GameMoveResult
		err = reg.Do(input.GameID, func(s *session.Session) error {
			moved := s.MakeMove(input.Row, input.Col, value)
			result = GameMoveResult{
				Success:   moved.Success,
				Reason:    moved.Reason,
				Completed: moved.Completed,
				State:     newGameStateResult(input.GameID, s),
			}
			return nil
		})
		if err != nil {
			return nil, GameMoveResult{}, err
		}

		reg.Publish(input.GameID)
		return nil, result, nil
	}
}

func GameUndoHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameIDInput, GameHistoryResult] {
	return historyHandler(reg, func(s *session.Session) session.HistoryResult { return s.Undo() })
}

func GameRedoHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameIDInput, GameHistoryResult] {
	return historyHandler(reg, func(s *session.Session) session.HistoryResult { return s.Redo() })
}

func historyHandler(reg *registry.Registry, op func(*session.Session) session.HistoryResult) mcp.ToolHandlerFor[GameIDInput, GameHistoryResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GameIDInput) (*mcp.CallToolResult, GameHistoryResult, error) {
		var result GameHistoryResult
		err := reg.Do(input.GameID, func(s *session.Session) error {
			applied := op(s)
			result = GameHistoryResult{
				Success: applied.Success,
				Reason:  applied.Reason,
				State:   newGameStateResult(input.GameID, s),
			}
			return nil
		})
		if err != nil {
			return nil, GameHistoryResult{}, err
		}

		reg.Publish(input.GameID)
		return nil, result, nil
	}
}

func GameHintHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameIDInput, GameHintResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GameIDInput) (*mcp.CallToolResult, GameHintResult, error) {
		var result GameHintResult
		err := reg.Do(input.GameID, func(s *session.Session) error {
			hinted := s.Hint()
			result = GameHintResult{Success: hinted.Success, Reason: hinted.Reason}
			if hinted.Hint != nil {
				result.Row = hinted.Hint.Row
				result.Col = hinted.Hint.Col
				result.Value = string(hinted.Hint.Value)
			}
			return nil
		})
		return nil, result, err
	}
}

func GamePauseHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameIDInput, GameStateResult] {
	return lifecycleHandler(reg, func(s *session.Session) { s.Pause() })
}

func GameResumeHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameIDInput, GameStateResult] {
	return lifecycleHandler(reg, func(s *session.Session) { s.Start() })
}

func GameResetHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameIDInput, GameStateResult] {
	return lifecycleHandler(reg, func(s *session.Session) { s.Reset() })
}

func lifecycleHandler(reg *registry.Registry, op func(*session.Session)) mcp.ToolHandlerFor[GameIDInput, GameStateResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GameIDInput) (*mcp.CallToolResult, GameStateResult, error) {
		var result GameStateResult
		err := reg.Do(input.GameID, func(s *session.Session) error {
			op(s)
			result = newGameStateResult(input.GameID, s)
			return nil
		})
		if err != nil {
			return nil, GameStateResult{}, err
		}

		reg.Publish(input.GameID)
		return nil, result, nil
	}
}

func GameBoardHandler(reg *registry.Registry) mcp.ToolHandlerFor[GameIDInput, GameBoardResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GameIDInput) (*mcp.CallToolResult, GameBoardResult, error) {
		var result GameBoardResult
		err := reg.Do(input.GameID, func(s *session.Session) error {
			result.Board = renderBoard(s)
			return nil
		})
		return nil, result, err
	}
}
