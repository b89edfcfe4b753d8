package config

// Config is the top-level mdpeek configuration, corresponding to config.yml
// in the user's config directory.
type Config struct {
	Theme         string   `yaml:"theme" koanf:"theme"`
	Port          int      `yaml:"port" koanf:"port"`
	OpenBrowser   bool     `yaml:"open_browser" koanf:"open_browser"`
	DebounceMS    int      `yaml:"debounce_ms" koanf:"debounce_ms"`
	AssetsDir     string   `yaml:"assets_dir" koanf:"assets_dir"`
	SidebarHidden bool     `yaml:"sidebar_hidden" koanf:"sidebar_hidden"`
	StatePath     string   `yaml:"state_path" koanf:"state_path"`
	PDFEngine     string   `yaml:"pdf_engine" koanf:"pdf_engine"`
	Include       []string `yaml:"include" koanf:"include"`
	Exclude       []string `yaml:"exclude" koanf:"exclude"`
}
