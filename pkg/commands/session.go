package commands

import (
	"github.com/lvim-tech/searchbar/pkg/launcher"
	"github.com/lvim-tech/searchbar/pkg/registry"
	"github.com/lvim-tech/searchbar/pkg/search"
	"github.com/lvim-tech/searchbar/pkg/spawn"
)

// Session is the LauncherContext used by the CLI
type Session struct {
	Launcher launcher.Launcher
	Engines  *registry.Registry
	Search   *search.Runner
	Spawner  spawn.Starter
	Notify   Notifier
	Settings string
	Direct   bool
}

func (s *Session) Show(options []string, prompt string) (string, error) {
	return s.Launcher.Show(options, prompt)
}

func (s *Session) Registry() *registry.Registry { return s.Engines }

func (s *Session) Runner() *search.Runner { return s.Search }

func (s *Session) Starter() spawn.Starter { return s.Spawner }

func (s *Session) Notifier() Notifier { return s.Notify }

func (s *Session) SettingsPath() string { return s.Settings }

func (s *Session) IsDirectLaunch() bool { return s.Direct }
