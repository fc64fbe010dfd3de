package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lvim-tech/searchbar/pkg/accel"
	"github.com/lvim-tech/searchbar/pkg/registry"
)

// exampleQuery is used by preview when no query is given
const exampleQuery = "test query"

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List search engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.registry.List()
			width := 0
			for _, e := range entries {
				width = max(width, len(e.Name))
			}
			for i, e := range entries {
				mark := " "
				if i == a.registry.SelectedIndex() {
					mark = "*"
				}
				fmt.Fprintf(a.out, "%s %d  %-*s  %s\n", mark, i, width, e.Name, e.Template)
			}
			return nil
		},
	}
}

func newSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <index|name>",
		Short: "Select the search engine used by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.registry.Select(idx); err != nil {
				return err
			}
			e, _ := a.registry.Selected()
			fmt.Fprintf(a.out, "Selected %s\n", e.Name)
			return nil
		},
	}
}

func newSaveCmd(a *app) *cobra.Command {
	var e registry.Entry

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Add a search engine, or replace the one with the same name",
		Long: `Save stores a search engine and selects it.

The template is a command line. The wildcard marks where the query goes; with
an empty wildcard the query is appended. Spaces in the query are replaced with
the delimiter.`,
		Example: `  searchbar save --name Man --template 'xdg-open man:#' --wildcard '#'
  searchbar save --name Recoll --template 'recoll -q' --delimiter ' '`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.runner.Save(e)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved %s at %d\n", e.Name, idx)
			return nil
		},
	}

	cmd.Flags().StringVar(&e.Name, "name", "", "engine name")
	cmd.Flags().StringVar(&e.Template, "template", "", "command line template")
	cmd.Flags().StringVar(&e.Wildcard, "wildcard", "", "placeholder replaced by the query (empty appends it)")
	cmd.Flags().StringVar(&e.Delimiter, "delimiter", "", "replacement for spaces in the query")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [index|name]",
		Short: "Remove a search engine (the selected one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := a.registry.SelectedIndex()
			if len(args) == 1 {
				var err error
				if idx, err = a.resolve(args[0]); err != nil {
					return err
				}
			}

			e, err := a.registry.At(idx)
			if err != nil {
				return err
			}
			removed, err := a.registry.RemoveAt(idx)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(a.errOut, "%s is the only search engine and was kept\n", e.Name)
				return nil
			}
			fmt.Fprintf(a.out, "Removed %s\n", e.Name)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default search engines and keyboard shortcut",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.registry.ResetToDefaults(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Restored %d default search engines\n", a.registry.Len())
			return nil
		},
	}
}

func newKeyCmd(a *app) *cobra.Command {
	var clearKey bool

	cmd := &cobra.Command{
		Use:   "key [accelerator]",
		Short: "Show or set the keyboard shortcut that opens the search bar",
		Example: `  searchbar key '<Super>s'
  searchbar key '<Primary><Alt>space'
  searchbar key --clear`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case clearKey:
				if err := a.registry.SetOpenSearchBarKey(""); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Shortcut disabled")
				return nil

			case len(args) == 1:
				acc, err := accel.Parse(args[0])
				if err != nil {
					return err
				}
				if err := a.registry.SetOpenSearchBarKey(acc.String()); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Shortcut set to %s\n", acc.Label())
				return nil
			}

			keys := a.registry.OpenSearchBarKey()
			if len(keys) == 0 || keys[0] == "" {
				fmt.Fprintln(a.out, "disabled")
				return nil
			}
			acc, err := accel.Parse(keys[0])
			if err != nil {
				fmt.Fprintf(a.out, "%s (not a valid accelerator)\n", keys[0])
				return nil
			}
			fmt.Fprintf(a.out, "%s (%s)\n", acc.Label(), acc.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearKey, "clear", false, "disable the shortcut")
	return cmd
}

// resolve turns an index or an engine name into an index.
func (a *app) resolve(arg string) (int, error) {
	if idx, ok := a.registry.Find(arg); ok {
		return idx, nil
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return -1, fmt.Errorf("no search engine named %q", arg)
	}
	if _, err := a.registry.At(idx); err != nil {
		return -1, err
	}
	return idx, nil
}

func joinQuery(args []string) string {
	return strings.Join(args, " ")
}
