//go:build scenario

package game

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

type Scenario struct {
	Name  string
	Steps []Step
}

type Step struct {
	Kind string
	Args map[string]any
}

func loadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerScenarioType(state)
	registerScenarioConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "new_game", Function: scenarioNewGame},
	{Name: "start", Function: scenarioStart},
	{Name: "move", Function: scenarioMove},
	{Name: "move_first_empty", Function: scenarioMoveFirstEmpty},
	{Name: "undo", Function: scenarioUndo},
	{Name: "redo", Function: scenarioRedo},
	{Name: "hint", Function: scenarioHint},
	{Name: "pause", Function: scenarioPause},
	{Name: "resume", Function: scenarioResume},
	{Name: "reset", Function: scenarioReset},
	{Name: "expect_state", Function: scenarioExpectState},
	{Name: "expect_last_cell", Function: scenarioExpectLastCell},
	{Name: "expect_move_count", Function: scenarioExpectMoveCount},
	{Name: "expect_can_undo", Function: scenarioExpectCanUndo},
	{Name: "expect_can_redo", Function: scenarioExpectCanRedo},
	{Name: "expect_valid", Function: scenarioExpectValid},
	{Name: "expect_completed", Function: scenarioExpectCompleted},
}

func scenarioNewGame(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "new_game", tableToMap(state, 2))
	return 0
}

func scenarioStart(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "start", nil)
	return 0
}

func scenarioMove(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "move", tableToMap(state, 2))
	return 0
}

func scenarioMoveFirstEmpty(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckString(state, 2)
	appendStep(scenario, "move_first_empty", map[string]any{"value": value})
	return 0
}

func scenarioUndo(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "undo", nil)
	return 0
}

func scenarioRedo(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "redo", nil)
	return 0
}

func scenarioHint(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "hint", nil)
	return 0
}

func scenarioPause(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "pause", nil)
	return 0
}

func scenarioResume(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "resume", nil)
	return 0
}

func scenarioReset(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "reset", nil)
	return 0
}

func scenarioExpectState(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckString(state, 2)
	appendStep(scenario, "expect_state", map[string]any{"state": value})
	return 0
}

func scenarioExpectLastCell(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckString(state, 2)
	appendStep(scenario, "expect_last_cell", map[string]any{"value": value})
	return 0
}

func scenarioExpectMoveCount(state *lua.State) int {
	scenario := checkScenario(state)
	count := lua.CheckInteger(state, 2)
	appendStep(scenario, "expect_move_count", map[string]any{"count": count})
	return 0
}

func scenarioExpectCanUndo(state *lua.State) int {
	scenario := checkScenario(state)
	value := expectBoolean(state, 2)
	appendStep(scenario, "expect_can_undo", map[string]any{"value": value})
	return 0
}

func scenarioExpectCanRedo(state *lua.State) int {
	scenario := checkScenario(state)
	value := expectBoolean(state, 2)
	appendStep(scenario, "expect_can_redo", map[string]any{"value": value})
	return 0
}

func scenarioExpectValid(state *lua.State) int {
	scenario := checkScenario(state)
	value := expectBoolean(state, 2)
	appendStep(scenario, "expect_valid", map[string]any{"value": value})
	return 0
}

func scenarioExpectCompleted(state *lua.State) int {
	scenario := checkScenario(state)
	value := expectBoolean(state, 2)
	appendStep(scenario, "expect_completed", map[string]any{"value": value})
	return 0
}

func expectBoolean(state *lua.State, index int) bool {
	lua.CheckType(state, index, lua.TypeBoolean)
	return state.ToBoolean(index)
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	default:
		return nil
	}
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
