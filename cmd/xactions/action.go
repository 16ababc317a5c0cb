package main

import (
	"fmt"
	"strings"

	"github.com/oukeidos/xactions/internal/actions"
	"github.com/oukeidos/xactions/internal/logger"
	"github.com/spf13/cobra"
)

func newActionCmd(def actions.Definition, opts *globalOptions) *cobra.Command {
	var raw bool
	idParam := def.IDParam()
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <%s>", def.Name, idParam),
		Short: def.Short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, def, args, raw, opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the decoded response payload instead of normalized fields")
	return cmd
}

func runAction(cmd *cobra.Command, def actions.Definition, args []string, raw bool, opts *globalOptions) error {
	params, err := collectParams(opts)
	if err != nil {
		return err
	}
	idParam := def.IDParam()
	if len(args) == 1 {
		params[idParam] = strings.TrimSpace(args[0])
	}
	if _, ok := params[idParam]; !ok {
		_ = cmd.Usage()
		return fmt.Errorf("%s is required", idParam)
	}

	if def.Destructive {
		ok, err := newConfirmer().ConfirmAction(def.Name, fmt.Sprint(params[idParam]), opts.yes)
		if err != nil {
			return err
		}
		if !ok {
			logger.Warn("Action aborted", "action", def.Name)
			return nil
		}
	}

	runner, _, err := newRunner(opts)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	res, err := runner.Run(ctx, def.Name, params)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("Action canceled", "action", def.Name, "error", err)
		}
		return err
	}
	if raw {
		return writeOutput(cmd, opts, res.Payload)
	}
	return writeOutput(cmd, opts, res)
}
