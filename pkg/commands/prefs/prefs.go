// Package prefs opens the settings file in the desktop's default editor.
package prefs

import (
	"errors"

	"github.com/lvim-tech/searchbar/pkg/commands"
	"github.com/lvim-tech/searchbar/pkg/spawn"
)

// ErrNoSettingsFile is returned when the settings are not kept in a file
var ErrNoSettingsFile = errors.New("settings are not stored in a file")

// Opener is the program used to open the settings file
var Opener = "xdg-open"

func init() {
	commands.Register(commands.Command{
		Name:        "prefs",
		Description: "Preferences",
		Run:         Run,
	})
}

// Run opens the settings file.
func Run(ctx commands.LauncherContext) commands.CommandResult {
	path := ctx.SettingsPath()
	if path == "" {
		return commands.CommandResult{Error: ErrNoSettingsFile}
	}

	if err := ctx.Starter().Start(Opener + " " + spawn.Quote(path)); err != nil {
		return commands.CommandResult{Error: err}
	}
	return commands.CommandResult{Success: true}
}
