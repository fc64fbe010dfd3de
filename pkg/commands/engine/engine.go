// Package engine switches the selected search engine from a menu.
package engine

import (
	"fmt"

	"github.com/lvim-tech/searchbar/pkg/commands"
	"github.com/lvim-tech/searchbar/pkg/launcher"
)

const selectedMark = "● "

func init() {
	commands.Register(commands.Command{
		Name:        "engine",
		Description: "Switch engine",
		Run:         Run,
	})
}

// Run lists the engines, marking the selected one, and selects the chosen one.
func Run(ctx commands.LauncherContext) commands.CommandResult {
	reg := ctx.Registry()
	options := Options(reg.List(), reg.SelectedIndex())

	choice, err := ctx.Show(commands.WithBack(ctx, options), "Engine")
	if err != nil {
		if launcher.IsCancelled(err) {
			return commands.CommandResult{Error: commands.ErrBack}
		}
		return commands.CommandResult{Error: err}
	}
	if choice == commands.BackOption {
		return commands.CommandResult{Error: commands.ErrBack}
	}

	idx, ok := IndexOf(choice)
	if !ok {
		return commands.CommandResult{Error: fmt.Errorf("unknown engine: %s", choice)}
	}
	if err := reg.Select(idx); err != nil {
		return commands.CommandResult{Error: err}
	}

	entry, _ := reg.Selected()
	ctx.Notifier().Notify("Searchbar", "Engine: "+entry.Name)
	return commands.CommandResult{Success: true}
}
