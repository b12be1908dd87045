// Package sheet parses sheet command flags and starts the PDF service runtime.
package sheet

import (
	"context"
	"flag"

	entrypoint "github.com/elysium-rpg/pdf-service/internal/platform/cmd"
	server "github.com/elysium-rpg/pdf-service/internal/services/sheet/app"
)

// Config holds sheet command configuration.
type Config struct {
	Port int    `env:"ELYSIUM_SHEET_PORT" envDefault:"8000"`
	Addr string `env:"ELYSIUM_SHEET_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The sheet server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The sheet server listen address (overrides -port)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the sheet PDF service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSheet, func(context.Context) error {
		if cfg.Addr != "" {
			return server.RunWithAddr(ctx, cfg.Addr)
		}
		return server.Run(ctx, cfg.Port)
	})
}
