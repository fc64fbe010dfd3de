package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvim-tech/searchbar/pkg/commands/hub"
	"github.com/lvim-tech/searchbar/pkg/registry"
	"github.com/lvim-tech/searchbar/pkg/search"
	"github.com/lvim-tech/searchbar/pkg/template"
)

func newSearchCmd(a *app) *cobra.Command {
	var engine string

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Run a query with the selected search engine",
		Long: `Search compiles the query with the selected search engine and starts the
resulting command line in the background. Without a query the menu launcher
asks for one.`,
		Example: `  searchbar search golang generics
  searchbar search --engine Wikipedia Ada Lovelace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.runMenuCommand("search", true)
			}

			query := joinQuery(args)
			var (
				commandLine string
				err         error
			)
			if engine != "" {
				commandLine, err = a.runner.RunWith(engine, query)
			} else {
				commandLine, err = a.runner.Run(query)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, commandLine)
			return nil
		},
	}

	cmd.Flags().StringVarP(&engine, "engine", "e", "", "use this engine instead of the selected one")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var tmpl, wildcard, delimiter string

	cmd := &cobra.Command{
		Use:   "preview [query...]",
		Short: "Show the command line a query would run",
		Long: `Preview prints the command line for a query without running it. The
selected engine is used; --template, --wildcard and --delimiter override its
fields to try out a new engine before saving it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := exampleQuery
			if len(args) > 0 {
				query = joinQuery(args)
			}

			var overrides []search.Override
			if cmd.Flags().Changed("template") {
				overrides = append(overrides, func(e *registry.Entry) { e.Template = tmpl })
			}
			if cmd.Flags().Changed("wildcard") {
				overrides = append(overrides, func(e *registry.Entry) { e.Wildcard = wildcard })
			}
			if cmd.Flags().Changed("delimiter") {
				overrides = append(overrides, func(e *registry.Entry) { e.Delimiter = delimiter })
			}

			commandLine, e, err := a.runner.Preview(query, overrides...)
			if err != nil {
				return err
			}
			if !template.HasSlot(e.Template, e.Wildcard) {
				fmt.Fprintf(a.errOut, "warning: template does not contain %q, the query is ignored\n", e.Wildcard)
			}
			fmt.Fprintln(a.out, commandLine)
			return nil
		},
	}

	cmd.Flags().StringVar(&tmpl, "template", "", "command line template")
	cmd.Flags().StringVar(&wildcard, "wildcard", "", "placeholder replaced by the query")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "replacement for spaces in the query")
	return cmd
}

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the searchbar menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMenuCommand(hub.Name, false)
		},
	}
}
