package cmd

import (
	"testing"

	"github.com/mdpeek/mdpeek/internal/config"
	"github.com/mdpeek/mdpeek/internal/render"
	"github.com/mdpeek/mdpeek/internal/state"
)

func memStore(t *testing.T) *state.Store {
	t.Helper()
	s, err := state.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestResolveThemePrecedence(t *testing.T) {
	store := memStore(t)
	cfg := config.DefaultConfig()
	cfg.Theme = "light"

	// Config only.
	theme, err := resolveTheme("", store, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if theme != render.ThemeLight {
		t.Errorf("theme = %q, want light from config", theme)
	}

	// Persisted setting beats the config.
	if err := store.SetSetting(state.KeyTheme, "dark"); err != nil {
		t.Fatal(err)
	}
	theme, err = resolveTheme("", store, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if theme != render.ThemeDark {
		t.Errorf("theme = %q, want persisted dark", theme)
	}

	// Flag beats both.
	theme, err = resolveTheme("sepia", store, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if theme != render.ThemeSepia {
		t.Errorf("theme = %q, want flag sepia", theme)
	}
}

func TestResolveAndPersistThemeStoresNormalizedName(t *testing.T) {
	store := memStore(t)
	cfg := config.DefaultConfig()

	// Sloppy flag input parses fine; what lands in the store must be the
	// canonical lowercase name, not the raw flag text.
	theme, err := resolveAndPersistTheme("Sepia ", store, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if theme != render.ThemeSepia {
		t.Fatalf("theme = %q, want sepia", theme)
	}
	saved, err := store.Setting(state.KeyTheme)
	if err != nil {
		t.Fatal(err)
	}
	if saved != "sepia" {
		t.Errorf("persisted %q, want normalized %q", saved, "sepia")
	}
}

func TestResolveAndPersistThemeNoFlagNoWrite(t *testing.T) {
	store := memStore(t)
	cfg := config.DefaultConfig()

	if _, err := resolveAndPersistTheme("", store, cfg); err != nil {
		t.Fatal(err)
	}
	saved, err := store.Setting(state.KeyTheme)
	if err != nil {
		t.Fatal(err)
	}
	if saved != "" {
		t.Errorf("viewing without --theme must not overwrite the stored default, got %q", saved)
	}
}

func TestResolveAndPersistThemeRejectsUnknown(t *testing.T) {
	store := memStore(t)
	if _, err := resolveAndPersistTheme("neon", store, config.DefaultConfig()); err == nil {
		t.Fatal("expected error for unknown theme")
	}
	saved, err := store.Setting(state.KeyTheme)
	if err != nil {
		t.Fatal(err)
	}
	if saved != "" {
		t.Errorf("invalid flag must not be persisted, got %q", saved)
	}
}
