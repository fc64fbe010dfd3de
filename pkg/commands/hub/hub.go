// Package hub provides the main searchbar menu.
package hub

import (
	"errors"
	"fmt"

	"github.com/lvim-tech/searchbar/pkg/commands"
	"github.com/lvim-tech/searchbar/pkg/launcher"
)

// Name is the name the hub registers under
const Name = "hub"

// Order lists the commands shown first; the rest follow in registration order.
var Order = []string{"search", "engine", "prefs"}

func init() {
	commands.Register(commands.Command{
		Name:        Name,
		Description: "Main menu",
		Run:         Run,
	})
}

// Run shows every other registered command until one succeeds or the menu
// is dismissed. Failed commands are reported and the menu is shown again.
func Run(ctx commands.LauncherContext) commands.CommandResult {
	var options []string
	byDescription := make(map[string]commands.Command)
	for _, cmd := range ordered(commands.GetAll()) {
		if cmd.Name == Name {
			continue
		}
		options = append(options, cmd.Description)
		byDescription[cmd.Description] = cmd
	}

	if len(options) == 0 {
		return commands.CommandResult{Error: fmt.Errorf("no commands registered")}
	}

	for {
		choice, err := ctx.Show(options, "searchbar")
		if err != nil {
			if launcher.IsCancelled(err) {
				return commands.CommandResult{}
			}
			return commands.CommandResult{Error: err}
		}

		cmd, ok := byDescription[choice]
		if !ok {
			ctx.Notifier().Error("Searchbar", fmt.Sprintf("Unknown command: %s", choice))
			continue
		}

		result := cmd.Run(ctx)
		if result.Success {
			return result
		}
		if result.Error != nil && !errors.Is(result.Error, commands.ErrBack) {
			ctx.Notifier().Error("Searchbar", result.Error.Error())
		}
	}
}

func ordered(all []commands.Command) []commands.Command {
	out := make([]commands.Command, 0, len(all))
	used := make(map[string]bool)
	for _, name := range Order {
		for _, cmd := range all {
			if cmd.Name == name {
				out = append(out, cmd)
				used[name] = true
			}
		}
	}
	for _, cmd := range all {
		if !used[cmd.Name] {
			out = append(out, cmd)
		}
	}
	return out
}
