package app

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/net/websocket"

	"github.com/louisbranch/equinox.space/internal/platform/timeouts"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
	"github.com/louisbranch/equinox.space/internal/services/game/registry"
)

// liveTickInterval paces timer pushes while a board's clock is running.
// Clients interpolate between ticks, so this only bounds drift.
const liveTickInterval = time.Second

// liveHandler streams state snapshots for one session over a websocket.
// A snapshot goes out on connect, after every published mutation, and on a
// steady tick while the timer runs. The stream ends when the session is
// removed or evicted, the client disconnects, or a write stalls.
func (h *Handler) liveHandler() http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		defer func() {
			_ = conn.Close()
		}()

		sessionID := conn.Request().PathValue("id")
		changes, cancel, ok := h.registry.Subscribe(sessionID)
		if !ok {
			return
		}
		defer cancel()

		// Drain the client side so disconnects surface without waiting
		// for the next write.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			buf := make([]byte, 512)
			for {
				if _, err := conn.Read(buf); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(liveTickInterval)
		defer ticker.Stop()

		if err := h.pushState(conn, sessionID); err != nil {
			return
		}

		for {
			select {
			case _, open := <-changes:
				if !open {
					return
				}
				if err := h.pushState(conn, sessionID); err != nil {
					return
				}
			case <-ticker.C:
				running, err := h.timerRunning(sessionID)
				if err != nil {
					return
				}
				if !running {
					continue
				}
				if err := h.pushState(conn, sessionID); err != nil {
					return
				}
			case <-gone:
				return
			}
		}
	})
}

func (h *Handler) pushState(conn *websocket.Conn, sessionID string) error {
	var state stateResponse
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		state = newStateResponse(sessionID, s)
		return nil
	})
	if err != nil {
		return err
	}

	if err := conn.SetWriteDeadline(h.now().Add(timeouts.LiveWrite)); err != nil {
		return err
	}
	if err := websocket.JSON.Send(conn, state); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Printf("live push for session %s: %v", sessionID, err)
		}
		return err
	}
	return nil
}

func (h *Handler) timerRunning(sessionID string) (bool, error) {
	var running bool
	err := h.registry.Do(sessionID, func(s *session.Session) error {
		running = s.State() == session.StatePlaying
		return nil
	})
	if errors.Is(err, registry.ErrSessionNotFound) {
		return false, err
	}
	return running, err
}
