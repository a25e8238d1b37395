package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TykTechnologies/preferences/config"
	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferences"
	"github.com/TykTechnologies/preferences/preferr"
)

// loadConfig reads the environment, defaulting to the bolt backend. The
// local backend is refused: it lives only as long as one prefctl run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if os.Getenv("PREFS_BACKEND") == "" {
		cfg.Backend = model.BoltType
	}

	if cfg.Backend == model.LocalType {
		return nil, fmt.Errorf("%w: the %s backend does not outlive prefctl, set PREFS_BACKEND to bolt, redis, mongo or ipfs",
			preferr.InvalidConfiguration, cfg.Backend)
	}

	return cfg, nil
}

// openStore returns the store carried by the command context, or opens the
// configured one. The returned func releases whatever was opened.
func openStore(cmd *cobra.Command) (preferences.Store, func(), error) {
	ctx := cmd.Context()
	if s, ok := preferences.Lookup(ctx); ok {
		return s, func() {}, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := preferences.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s preferences: %w", cfg.Backend, err)
	}

	log.Debug().Str("backend", cfg.Backend).Str("domain", cfg.Domain).Msg("preferences opened")

	release := func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("closing preferences")
		}
	}

	return store, release, nil
}
