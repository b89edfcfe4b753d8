package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to its default location.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to mdpeek! Let's configure the viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Theme selection.
	themePrompt := promptui.Select{
		Label: "Select theme",
		Items: []string{
			"system — follow the OS light/dark preference",
			"light",
			"dark",
			"sepia",
		},
	}
	themeIdx, _, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.Theme = []string{"system", "light", "dark", "sepia"}[themeIdx]

	// 2. Preview port.
	portPrompt := promptui.Prompt{
		Label:   "Preview port (0 picks a free port)",
		Default: "0",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("enter a port between 0 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Open browser automatically?
	browserPrompt := promptui.Prompt{
		Label:     "Open the browser when viewing a file",
		IsConfirm: true,
		Default:   "y",
	}
	if _, err := browserPrompt.Run(); err != nil {
		// promptui reports "n" as ErrAbort; treat it as a plain no.
		cfg.OpenBrowser = false
	} else {
		cfg.OpenBrowser = true
	}

	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
