// Package service hosts the Equinox MCP server: the puzzle engine exposed
// as tools over stdio for local agents or HTTP for remote ones.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/equinox.space/internal/platform/timeouts"
	"github.com/louisbranch/equinox.space/internal/services/game/registry"
	"github.com/louisbranch/equinox.space/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "equinox-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Transport selects how the MCP server talks to its client.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// Config defines the inputs for the MCP process.
type Config struct {
	Transport Transport
	// HTTPAddr is required for the http transport.
	HTTPAddr string
	// SessionTTL bounds how long an untouched puzzle stays resident.
	SessionTTL time.Duration
}

// Server binds the puzzle tools to an MCP server over a session registry.
type Server struct {
	mcpServer *mcp.Server
	registry  *registry.Registry
}

// New creates a configured MCP server. The registry may be shared with
// other surfaces; a nil registry gets a private one.
func New(reg *registry.Registry) *Server {
	if reg == nil {
		reg = registry.New(0, time.Now)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(mcpServer, domain.GameNewTool(), domain.GameNewHandler(reg))
	mcp.AddTool(mcpServer, domain.GameStateTool(), domain.GameStateHandler(reg))
	mcp.AddTool(mcpServer, domain.GameMoveTool(), domain.GameMoveHandler(reg))
	mcp.AddTool(mcpServer, domain.GameUndoTool(), domain.GameUndoHandler(reg))
	mcp.AddTool(mcpServer, domain.GameRedoTool(), domain.GameRedoHandler(reg))
	mcp.AddTool(mcpServer, domain.GameHintTool(), domain.GameHintHandler(reg))
	mcp.AddTool(mcpServer, domain.GamePauseTool(), domain.GamePauseHandler(reg))
	mcp.AddTool(mcpServer, domain.GameResumeTool(), domain.GameResumeHandler(reg))
	mcp.AddTool(mcpServer, domain.GameResetTool(), domain.GameResetHandler(reg))
	mcp.AddTool(mcpServer, domain.GameBoardTool(), domain.GameBoardHandler(reg))

	return &Server{mcpServer: mcpServer, registry: reg}
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation. Stdio suits local agent tooling; HTTP suits remote clients.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server := New(registry.New(cfg.SessionTTL, time.Now))

	switch cfg.Transport {
	case TransportStdio:
		return server.ServeStdio(ctx)
	case TransportHTTP:
		return server.ServeHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// ServeStdio runs the server over stdin/stdout until the context ends.
func (s *Server) ServeStdio(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// ServeHTTP runs the server over the SDK's streamable HTTP transport until
// the context ends.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	if addr == "" {
		return errors.New("http address is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	log.Printf("mcp listening on %s", addr)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := httpServer.Shutdown(shutdownCtx)
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
