package app

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

func dialLive(t *testing.T, serverURL, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/live/" + sessionID
	conn, err := websocket.Dial(wsURL, "", serverURL)
	if err != nil {
		t.Fatalf("dial live stream: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func TestLiveStreamSendsInitialState(t *testing.T) {
	server := newTestServer(t, nil)
	state := createGame(t, server.URL, 4, "medium", "TEST1234")

	conn := dialLive(t, server.URL, state.ID)
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}

	var first stateResponse
	if err := websocket.JSON.Receive(conn, &first); err != nil {
		t.Fatalf("receive initial state: %v", err)
	}
	if first.ID != state.ID {
		t.Fatalf("expected session %q, got %q", state.ID, first.ID)
	}
	if first.Size != 4 {
		t.Fatalf("expected size 4, got %d", first.Size)
	}
}

func TestLiveStreamPushesMutations(t *testing.T) {
	server := newTestServer(t, nil)
	state := createGame(t, server.URL, 4, "medium", "TEST1234")
	row, col := emptyCell(t, state)

	conn := dialLive(t, server.URL, state.ID)
	if err := conn.SetReadDeadline(time.Now().Add(10 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}

	var initial stateResponse
	if err := websocket.JSON.Receive(conn, &initial); err != nil {
		t.Fatalf("receive initial state: %v", err)
	}

	resp := postJSON(t, server.URL, "/api/games/"+state.ID+"/moves", moveRequest{Row: row, Col: col, Value: "SUN"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("move: expected status 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Timer ticks may interleave with the mutation push; read until the
	// move shows up.
	for {
		var next stateResponse
		if err := websocket.JSON.Receive(conn, &next); err != nil {
			t.Fatalf("receive update: %v", err)
		}
		if next.MoveCount == 0 {
			continue
		}
		if next.Grid[row][col].Value != "SUN" {
			t.Fatalf("expected SUN at (%d,%d), got %q", row, col, next.Grid[row][col].Value)
		}
		return
	}
}

func TestLiveStreamUnknownSessionCloses(t *testing.T) {
	server := newTestServer(t, nil)

	conn := dialLive(t, server.URL, "missing")
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}

	var state stateResponse
	if err := websocket.JSON.Receive(conn, &state); err == nil {
		t.Fatal("expected stream for unknown session to close")
	}
}
