// Package config provides configuration types, defaults, and persistence for
// the loom demo front end.
package config

// UIConfig holds terminal front end options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	Mouse         bool `mapstructure:"mouse"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Highlight is the accent color for buttons and the active tab,
	// e.g. "#10B981" or an ANSI color number.
	Highlight string `mapstructure:"highlight"`
}

// Config holds all configuration options for the demo.
type Config struct {
	// StorePath is the bolt database holding persisted element tags.
	StorePath string          `mapstructure:"store_path"`
	Debug     bool            `mapstructure:"debug"`
	UI        UIConfig        `mapstructure:"ui"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Flags     map[string]bool `mapstructure:"flags"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		StorePath: ".loom/tags.db",
		Debug:     false,
		UI: UIConfig{
			ShowStatusBar: true,
			Mouse:         true,
		},
		Theme: ThemeConfig{
			Highlight: "62",
		},
		Flags: map[string]bool{
			"restore-tags": true,
		},
	}
}
