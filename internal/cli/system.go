package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lvim-tech/searchbar/internal/utils"
	"github.com/lvim-tech/searchbar/pkg/config"
	"github.com/lvim-tech/searchbar/pkg/registry"
	"github.com/lvim-tech/searchbar/pkg/settings"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print changes to the search engines until interrupted",
		Long: `Watch reloads the settings whenever the settings file changes on disk
and prints the resulting state, one line per change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx)
		},
	}
}

func (a *app) watch(ctx context.Context) error {
	path := a.store.Path()
	if path == "" {
		return fmt.Errorf("the %s backend has no file to watch", a.store.Name())
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	events, err := settings.Watch(ctx, path, a.logger.Named("watch"))
	if err != nil {
		return err
	}
	changes, cancel := a.registry.Subscribe()
	defer cancel()

	fmt.Fprintf(a.out, "watching %s\n", path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.registry.Load(a.store); err != nil {
				a.logger.Warn("failed to reload settings", "error", err)
			}

		case c := <-changes:
			a.printChange(c)
		}
	}
}

func (a *app) printChange(c registry.Change) {
	name := ""
	if e, err := a.registry.Selected(); err == nil {
		name = e.Name
	}
	fmt.Fprintf(a.out, "%s: %d engines, selected %d (%s)\n", c.Kind, a.registry.Len(), c.Selected, name)
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		// Nothing to load before the config exists.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.GetUserConfigPath()
			}
			if err := config.InitUserConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Config initialized at: %s\n", path)
			return nil
		},
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "searchbar version %s\n", version)
			return nil
		},
	}
}
