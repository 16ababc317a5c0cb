package main

import (
	"fmt"
	"os"

	"github.com/oukeidos/xactions/internal/actions"
	"github.com/oukeidos/xactions/internal/apperrors"
	"github.com/oukeidos/xactions/internal/cleanup"
	"github.com/oukeidos/xactions/internal/logger"
	"github.com/oukeidos/xactions/internal/version"
	"github.com/spf13/cobra"
)

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if apperrors.IsRetryable(err) {
		logger.Warn("Request may succeed if retried later", "kind", kindLabel(err), "status", apperrors.StatusOf(err))
	}
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func kindLabel(err error) string {
	kind, _ := apperrors.KindOf(err)
	return string(kind)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "xactions",
		Short: "Account actions and post translation for X web sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				_ = cmd.Usage()
				return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return cmd.Help()
		},
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts)
		},
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	addGlobalFlags(cmd.PersistentFlags(), opts)

	for _, name := range actions.Names() {
		if name == actions.TranslateAction {
			continue
		}
		def, _ := actions.Lookup(name)
		cmd.AddCommand(newActionCmd(def, opts))
	}

	cmd.AddCommand(
		newTranslateCmd(opts),
		newDecodeCmd(opts),
		newEnvCmd(opts),
		newListCmd(),
		newActionsCmd(),
		newAboutCmd(),
	)

	cmd.InitDefaultCompletionCmd()
	for _, sub := range cmd.Commands() {
		if sub.Name() == "completion" {
			sub.SetUsageTemplate(subcommandUsageTemplate)
			break
		}
	}

	return cmd
}
