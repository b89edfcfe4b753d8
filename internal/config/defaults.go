package config

// DefaultExcludes are glob patterns skipped by tree export by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
}

// DefaultConfig returns a Config with sensible defaults. Port 0 means pick
// a free port; debounce matches the live-reload default.
func DefaultConfig() *Config {
	return &Config{
		Theme:       "system",
		Port:        0,
		OpenBrowser: true,
		DebounceMS:  200,
		Include:     []string{"**/*.md"},
		Exclude:     DefaultExcludes,
	}
}
