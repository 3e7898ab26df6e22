// Package game parses game command flags and starts the HTTP service.
package game

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/equinox.space/internal/platform/cmd"
	"github.com/louisbranch/equinox.space/internal/services/game/app"
)

// Config holds game command configuration.
type Config struct {
	HTTPAddr   string        `env:"EQUINOX_SPACE_GAME_HTTP_ADDR"   envDefault:"localhost:8080"`
	DBPath     string        `env:"EQUINOX_SPACE_GAME_DB_PATH"     envDefault:"data/game.db"`
	SessionTTL time.Duration `env:"EQUINOX_SPACE_GAME_SESSION_TTL" envDefault:"24h"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite database path for saved games")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "how long idle sessions stay resident")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the game HTTP service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		server, err := app.NewServer(ctx, app.Config{
			HTTPAddr:   cfg.HTTPAddr,
			DBPath:     cfg.DBPath,
			SessionTTL: cfg.SessionTTL,
		})
		if err != nil {
			return err
		}
		defer server.Close()
		return server.ListenAndServe(ctx)
	})
}
