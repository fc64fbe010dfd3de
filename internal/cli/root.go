// Package cli implements the searchbar command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/lvim-tech/searchbar/pkg/commands"
	_ "github.com/lvim-tech/searchbar/pkg/commands/engine"
	_ "github.com/lvim-tech/searchbar/pkg/commands/hub"
	_ "github.com/lvim-tech/searchbar/pkg/commands/prefs"
	_ "github.com/lvim-tech/searchbar/pkg/commands/query"
	"github.com/lvim-tech/searchbar/pkg/config"
	"github.com/lvim-tech/searchbar/pkg/launcher"
	"github.com/lvim-tech/searchbar/pkg/notify"
	"github.com/lvim-tech/searchbar/pkg/registry"
	"github.com/lvim-tech/searchbar/pkg/search"
	"github.com/lvim-tech/searchbar/pkg/settings"
	"github.com/lvim-tech/searchbar/pkg/spawn"
)

// app holds the flags and everything built from them for one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath   string
	settingsPath string
	backend      string
	launcherName string
	debug        bool

	cfg      *config.Config
	logger   hclog.Logger
	store    settings.Store
	registry *registry.Registry
	starter  spawn.Starter
	notifier commands.Notifier
	runner   *search.Runner

	// Replaced in tests.
	newStarter  func(hclog.Logger) spawn.Starter
	newLauncher func(name string, cfg *config.Config) (launcher.Launcher, error)
	newNotifier func(config.NotificationConfig) commands.Notifier
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		newStarter: func(logger hclog.Logger) spawn.Starter {
			return spawn.NewDetached(logger)
		},
		newLauncher: launcher.New,
		newNotifier: func(cfg config.NotificationConfig) commands.Notifier {
			return notify.New(cfg)
		},
	}
}

// Execute runs the searchbar command line
func Execute(version string) error {
	a := newApp(os.Stdout, os.Stderr)
	defer a.close()
	return newRootCmd(a, version).Execute()
}

func newRootCmd(a *app, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "searchbar",
		Short: "Search the web or run any command from a quick search bar",
		Long: `searchbar wraps a typed query into a command line built from the selected
search engine template and starts it in the background.

Run without a subcommand to type a query in the configured menu launcher.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMenuCommand("search", true)
		},
	}

	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/searchbar/config.toml)")
	flags.StringVar(&a.settingsPath, "settings", "", "settings file holding the search engines")
	flags.StringVar(&a.backend, "backend", "", "settings backend: toml, yaml, sqlite or memory")
	flags.StringVarP(&a.launcherName, "launcher", "l", "", "menu launcher: rofi, dmenu, fzf, bemenu, fuzzel or auto")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newSearchCmd(a),
		newPreviewCmd(a),
		newListCmd(a),
		newSelectCmd(a),
		newSaveCmd(a),
		newRemoveCmd(a),
		newResetCmd(a),
		newKeyCmd(a),
		newWatchCmd(a),
		newMenuCmd(a),
		newInitCmd(a),
		newVersionCmd(version),
	)

	return rootCmd
}

// setup loads the config and opens the settings store.
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath, "", a.errOut)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	a.logger = newLogger(a.cfg.Log.Level, a.debug, a.errOut)

	backend := a.backend
	if backend == "" {
		backend = a.cfg.Settings.Backend
	}
	path := a.settingsPath
	if path == "" {
		path = a.cfg.SettingsPath()
	}

	a.store, err = settings.Open(backend, path, config.GetConfigDir())
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	a.logger.Debug("settings opened", "backend", a.store.Name(), "path", a.store.Path())

	a.registry = registry.Open(a.store, registry.WithLogger(a.logger.Named("registry")))
	a.starter = a.newStarter(a.logger.Named("spawn"))
	a.notifier = a.newNotifier(a.cfg.Notifications)
	a.runner = search.NewRunner(a.registry, a.starter, a.notifier, a.logger.Named("search"))
	return nil
}

func (a *app) close() {
	if c, ok := a.store.(io.Closer); ok {
		if err := c.Close(); err != nil && a.logger != nil {
			a.logger.Warn("failed to close settings", "error", err)
		}
	}
}

func newLogger(level string, debug bool, out io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	if debug {
		lvl = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "searchbar",
		Level:  lvl,
		Output: out,
	})
}

// runMenuCommand runs a registered menu command with the configured launcher.
func (a *app) runMenuCommand(name string, direct bool) error {
	cmd := commands.Find(name)
	if cmd == nil {
		return fmt.Errorf("unknown menu command: %s", name)
	}

	l, err := a.newLauncher(a.launcherName, a.cfg)
	if err != nil {
		return fmt.Errorf("failed to create launcher: %w", err)
	}

	session := &commands.Session{
		Launcher: l,
		Engines:  a.registry,
		Search:   a.runner,
		Spawner:  a.starter,
		Notify:   a.notifier,
		Settings: a.store.Path(),
		Direct:   direct,
	}

	result := cmd.Run(session)
	if result.Error != nil && !errors.Is(result.Error, commands.ErrBack) {
		return result.Error
	}
	return nil
}
