package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/loom/internal/config"
	"github.com/zjrosen/loom/internal/flags"
	"github.com/zjrosen/loom/internal/log"
	"github.com/zjrosen/loom/pkg/gui"
	"github.com/zjrosen/loom/pkg/memhost"
	"github.com/zjrosen/loom/pkg/termhost"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "loom",
	Short:   "A declarative GUI tree demo with persistence-safe handlers",
	Long: `Builds a small tabbed UI from declarative definitions, binds event
handlers through the loom registry, and persists element tags across runs.
Handler bindings survive restarts because only handler names are stored.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .loom/config.yaml or ~/.config/loom/config.yaml)")
	rootCmd.Flags().String("store", "", "path to the tag store database")
	rootCmd.Flags().Bool("debug", false, "write a debug log to loom.log")

	_ = viper.BindPFlag("store_path", rootCmd.Flags().Lookup("store"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("store_path", defaults.StorePath)
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.mouse", defaults.UI.Mouse)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("flags", defaults.Flags)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .loom/config.yaml (current directory)
		// 2. ~/.config/loom/config.yaml (user config)
		if _, err := os.Stat(".loom/config.yaml"); err == nil {
			viper.SetConfigFile(".loom/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "loom"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".loom/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	// --debug routes the log through tea so the TUI can surface it;
	// LOOM_DEBUG alone writes a plain file log.
	switch {
	case cfg.Debug:
		cleanup, err := log.InitWithTeaLog("loom.log", "loom")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	case os.Getenv("LOOM_DEBUG") != "":
		cleanup, err := log.Init("loom.log")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	if dir := filepath.Dir(cfg.StorePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating store dir: %w", err)
		}
	}
	store, err := memhost.OpenStore(cfg.StorePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fl := flags.New(cfg.Flags)
	h := memhost.New()
	reg := gui.NewRegistry()

	refs, top, err := buildDemo(h, reg, fl.Enabled(flags.FlagStrictRefs))
	if err != nil {
		return fmt.Errorf("building demo ui: %w", err)
	}

	// Saved tags from a previous run take precedence over the fresh build.
	if fl.Enabled(flags.FlagRestoreTags) {
		if err := h.RestoreTags(store); err != nil {
			return fmt.Errorf("restoring tags: %w", err)
		}
		syncFromTags(refs)
	}

	dispatcher := gui.NewDispatcher(reg)
	dispatcher.Attach(h)

	zone.NewGlobal()
	styles := termhost.DefaultStyles()
	if cfg.Theme.Highlight != "" {
		styles = styles.WithHighlight(cfg.Theme.Highlight)
	}
	thOpts := []termhost.Option{
		termhost.WithStyles(styles),
		termhost.WithSaveFunc(func() error { return h.SaveTags(store) }),
		termhost.WithStatusBar(cfg.UI.ShowStatusBar),
	}
	if cfg.Debug {
		thOpts = append(thOpts, termhost.WithDebugLog())
	}
	model := termhost.New(h, top, thOpts...)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	// Persist tags for the next run.
	if err := h.SaveTags(store); err != nil {
		return fmt.Errorf("saving tags: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string shown by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
