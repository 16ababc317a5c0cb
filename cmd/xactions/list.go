package main

import (
	"fmt"

	"github.com/oukeidos/xactions/internal/actions"
	"github.com/oukeidos/xactions/internal/language"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List supported translation languages",
		Run: func(cmd *cobra.Command, args []string) {
			langs := language.GetSupportedLanguages()
			fmt.Fprintln(cmd.OutOrStdout(), "Supported Languages:")
			for _, l := range langs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-35s [%s]\n", l.Name, l.ID)
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newActionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List available actions and their parameters",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Actions:")
			for _, name := range actions.Names() {
				def, _ := actions.Lookup(name)
				mark := ""
				if def.Destructive {
					mark = " (asks for confirmation)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s <%s>  %s%s\n", def.Name, def.IDParam(), def.Short, mark)
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
