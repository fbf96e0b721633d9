// Package cli implements the maintenance subcommands of the studyhub binary.
package cli

import (
	"io"
	"os"

	"github.com/mrlokans/studyhub/internal/config"
	"github.com/mrlokans/studyhub/internal/entrypoint"
	"github.com/mrlokans/studyhub/internal/logging"
)

// base carries what every command shares: settings from the environment and
// an output stream.
type base struct {
	DatabasePath string
	Verbose      bool

	cfg *config.Config
	out io.Writer
}

func newBase() base {
	cfg := config.NewConfig()
	return base{DatabasePath: cfg.Database.Path, cfg: cfg, out: os.Stdout}
}

func (b *base) build() (*entrypoint.App, error) {
	cfg := *b.cfg
	cfg.Database.Path = b.DatabasePath
	if b.Verbose {
		cfg.Log.Level = "debug"
	} else {
		cfg.Log.Level = "warn"
	}
	return entrypoint.Build(&cfg, logging.New(cfg.Log))
}
