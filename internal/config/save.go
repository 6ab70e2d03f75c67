package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with yaml tags for write-back.
type fileConfig struct {
	StorePath string `yaml:"store_path"`
	Debug     bool   `yaml:"debug"`
	UI        struct {
		ShowStatusBar bool `yaml:"show_status_bar"`
		Mouse         bool `yaml:"mouse"`
	} `yaml:"ui"`
	Theme struct {
		Highlight string `yaml:"highlight"`
	} `yaml:"theme"`
	Flags map[string]bool `yaml:"flags"`
}

// WriteDefaultConfig writes the default configuration to path, creating
// parent directories as needed. Used on first run when no config exists.
func WriteDefaultConfig(path string) error {
	defaults := Defaults()

	var out fileConfig
	out.StorePath = defaults.StorePath
	out.Debug = defaults.Debug
	out.UI.ShowStatusBar = defaults.UI.ShowStatusBar
	out.UI.Mouse = defaults.UI.Mouse
	out.Theme.Highlight = defaults.Theme.Highlight
	out.Flags = defaults.Flags

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
