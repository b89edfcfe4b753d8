package cmd

import (
	"fmt"
	"log"

	"github.com/mdpeek/mdpeek/internal/config"
	"github.com/mdpeek/mdpeek/internal/render"
	"github.com/mdpeek/mdpeek/internal/state"
)

// loadConfig reads the config file named by --config, or the default
// location when the flag is unset.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// openStore opens the state database named by the config, or the default
// location. Failures are non-fatal to the viewer: a nil store is returned
// and recents/persisted settings are simply unavailable.
func openStore(cfg *config.Config) *state.Store {
	path := cfg.StatePath
	if path == "" {
		var err error
		path, err = state.DefaultPath()
		if err != nil {
			log.Printf("cmd: locating state database: %v", err)
			return nil
		}
	}
	store, err := state.Open(path)
	if err != nil {
		log.Printf("cmd: opening state database: %v", err)
		return nil
	}
	return store
}

// resolveAndPersistTheme picks the effective theme and, when the flag made
// an explicit choice, stores its normalized name as the new default.
func resolveAndPersistTheme(flag string, store *state.Store, cfg *config.Config) (render.Theme, error) {
	theme, err := resolveTheme(flag, store, cfg)
	if err != nil {
		return "", err
	}
	if store != nil && flag != "" {
		if err := store.SetSetting(state.KeyTheme, string(theme)); err != nil {
			log.Printf("cmd: persisting theme: %v", err)
		}
	}
	return theme, nil
}

// resolveTheme picks the effective theme: the flag wins, then the persisted
// setting, then the config file.
func resolveTheme(flag string, store *state.Store, cfg *config.Config) (render.Theme, error) {
	name := flag
	if name == "" && store != nil {
		if saved, err := store.Setting(state.KeyTheme); err == nil {
			name = saved
		}
	}
	if name == "" {
		name = cfg.Theme
	}
	if name == "" {
		return render.ThemeSystem, nil
	}
	return render.ParseTheme(name)
}
