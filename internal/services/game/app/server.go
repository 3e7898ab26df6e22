// Package app hosts the Equinox game service: the JSON API, the web play
// surface, and the live board stream, all backed by one session registry
// and a sqlite saved-game store.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/equinox.space/internal/platform/timeouts"
	"github.com/louisbranch/equinox.space/internal/services/game/challenge"
	"github.com/louisbranch/equinox.space/internal/services/game/registry"
	storagesqlite "github.com/louisbranch/equinox.space/internal/services/game/storage/sqlite"
)

// Config defines the inputs for the game process.
type Config struct {
	HTTPAddr   string
	DBPath     string
	SessionTTL time.Duration
}

// Server hosts the game HTTP surface and owns its stores.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *storagesqlite.Store
	registry   *registry.Registry
}

// NewServer creates a configured game server. Challenge grant keys are
// loaded from the environment; when absent the challenge endpoints report
// the surface as unconfigured while the rest of the service runs normally.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	dbPath := strings.TrimSpace(config.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join("data", "game.db")
	}

	store, err := openSavedGameStore(dbPath)
	if err != nil {
		return nil, err
	}

	reg := registry.New(config.SessionTTL, time.Now)

	var challengeConfig *challenge.Config
	if cfg, err := challenge.LoadConfigFromEnv(time.Now); err != nil {
		log.Printf("challenge grants disabled: %v", err)
	} else {
		challengeConfig = &cfg
	}

	handler := NewHandler(reg, store, challengeConfig)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      store,
		registry:   reg,
	}, nil
}

// Registry exposes the live session registry so sibling surfaces can share
// sessions with the HTTP API.
func (s *Server) Registry() *registry.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("game server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("game listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the saved-game store held by the server.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close saved game store: %v", err)
		}
	}
}

func openSavedGameStore(path string) (*storagesqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := storagesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game sqlite store: %w", err)
	}
	return store, nil
}
