// Package app wires configuration, the curation client, and the UI.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/curiobooks/curio/internal/config"
	"github.com/curiobooks/curio/internal/curation"
	"github.com/curiobooks/curio/internal/prefs"
	"github.com/curiobooks/curio/internal/session"
	"github.com/curiobooks/curio/internal/ui"
)

// Options configure the curio application.
type Options struct {
	EnvPath    string // explicit .env path; empty tries ./.env
	PrefsPath  string // empty uses default ~/.config/curio/prefs.toml
	AllowRaces bool   // permit overlapping thread submissions
	SkipProbe  bool   // skip the startup health probe
}

// Run boots the curio TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.EnvPath, os.Getenv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	if userPrefs.ScoreMode != "" {
		if mode, ok := config.ParseScoreMode(userPrefs.ScoreMode); ok {
			cfg.ScoreMode = mode
		}
	}

	client, err := curation.NewClient(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("init curation client: %w", err)
	}
	cfg.BaseURL = client.BaseURL()

	if !opts.SkipProbe {
		// Best effort: a down backend surfaces on the first query anyway,
		// but a startup probe gives a clearer first impression.
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Healthz(probeCtx); err != nil {
			log.Printf("backend probe failed (%s): %v", cfg.BaseURL, err)
		}
		cancel()
	}

	overlap := session.OverlapBlock
	if opts.AllowRaces {
		overlap = session.OverlapAllow
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Config:    cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Overlap:   overlap,
	})
}
