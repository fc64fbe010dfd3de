// Package commands provides the menu actions of searchbar.
// Actions register themselves on initialization and are shown by the hub
// in registration order.
package commands

import (
	"errors"

	"github.com/lvim-tech/searchbar/pkg/registry"
	"github.com/lvim-tech/searchbar/pkg/search"
	"github.com/lvim-tech/searchbar/pkg/spawn"
)

// BackOption is the menu line that returns to the previous menu
const BackOption = "← Back"

// ErrBack is returned by a command when the user picked BackOption
var ErrBack = errors.New("back to menu")

// CommandResult represents the result of command execution
type CommandResult struct {
	Success bool
	Error   error
}

// Command is one menu action
type Command struct {
	Name        string
	Description string
	Run         func(LauncherContext) CommandResult
}

// Notifier shows messages to the user
type Notifier interface {
	Notify(title, message string)
	Error(title, message string)
}

// LauncherContext is what a command gets to work with
type LauncherContext interface {
	Show(options []string, prompt string) (string, error)
	Registry() *registry.Registry
	Runner() *search.Runner
	Starter() spawn.Starter
	Notifier() Notifier
	SettingsPath() string
	// IsDirectLaunch is true when the command was started on its own
	// rather than from the hub, so there is nothing to go back to.
	IsDirectLaunch() bool
}

var registered []Command

// Register adds a command. A second command with the same name replaces the first.
func Register(cmd Command) {
	for i, c := range registered {
		if c.Name == cmd.Name {
			registered[i] = cmd
			return
		}
	}
	registered = append(registered, cmd)
}

// GetAll returns the commands in registration order
func GetAll() []Command {
	return append([]Command(nil), registered...)
}

// Find returns the command called name
func Find(name string) *Command {
	for _, c := range registered {
		if c.Name == name {
			return &c
		}
	}
	return nil
}

// WithBack prepends BackOption unless the command was launched directly
func WithBack(ctx LauncherContext, options []string) []string {
	if ctx.IsDirectLaunch() {
		return options
	}
	return append([]string{BackOption}, options...)
}
