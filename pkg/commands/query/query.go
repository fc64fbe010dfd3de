// Package query asks for a search query and runs it with the selected engine.
package query

import (
	"errors"

	"github.com/lvim-tech/searchbar/pkg/commands"
	"github.com/lvim-tech/searchbar/pkg/launcher"
	"github.com/lvim-tech/searchbar/pkg/search"
)

func init() {
	commands.Register(commands.Command{
		Name:        "search",
		Description: "Search",
		Run:         Run,
	})
}

// Run prompts with the selected engine's name and runs the typed query.
func Run(ctx commands.LauncherContext) commands.CommandResult {
	entry, err := ctx.Registry().Selected()
	if err != nil {
		return commands.CommandResult{Error: err}
	}

	choice, err := ctx.Show(commands.WithBack(ctx, nil), entry.Name)
	if err != nil {
		if launcher.IsCancelled(err) {
			return commands.CommandResult{Error: commands.ErrBack}
		}
		return commands.CommandResult{Error: err}
	}
	if choice == commands.BackOption {
		return commands.CommandResult{Error: commands.ErrBack}
	}

	if _, err := ctx.Runner().Run(choice); err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			return commands.CommandResult{Error: commands.ErrBack}
		}
		// Launch failures were already notified by the runner.
		return commands.CommandResult{Success: true, Error: err}
	}
	return commands.CommandResult{Success: true}
}
