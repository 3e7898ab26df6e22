// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/equinox.space/internal/platform/cmd"
	"github.com/louisbranch/equinox.space/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Transport  string        `env:"EQUINOX_SPACE_MCP_TRANSPORT"   envDefault:"stdio"`
	HTTPAddr   string        `env:"EQUINOX_SPACE_MCP_HTTP_ADDR"   envDefault:"localhost:8081"`
	SessionTTL time.Duration `env:"EQUINOX_SPACE_MCP_SESSION_TTL" envDefault:"24h"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address (for http transport)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "how long idle sessions stay resident")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			Transport:  service.Transport(cfg.Transport),
			HTTPAddr:   cfg.HTTPAddr,
			SessionTTL: cfg.SessionTTL,
		})
	})
}
