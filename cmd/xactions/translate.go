package main

import (
	"fmt"
	"strings"

	"github.com/oukeidos/xactions/internal/logger"
	"github.com/spf13/cobra"
)

type translateOptions struct {
	lang     string
	textOnly bool
}

func newTranslateCmd(global *globalOptions) *cobra.Command {
	opts := translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate <tweet_id>",
		Short: "Translate a post",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return fmt.Errorf("tweet_id is required")
			}
			return runTranslate(cmd, args[0], &opts, global)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "Destination language code or name (default from config)")
	cmd.Flags().BoolVar(&opts.textOnly, "text", false, "Print only the translated text")
	return cmd
}

func runTranslate(cmd *cobra.Command, tweetID string, opts *translateOptions, global *globalOptions) error {
	tweetID = strings.TrimSpace(tweetID)
	if tweetID == "" {
		return fmt.Errorf("tweet_id is required")
	}
	params, err := collectParams(global)
	if err != nil {
		return err
	}

	runner, cfg, err := newRunner(global)
	if err != nil {
		return err
	}
	lang := opts.lang
	if strings.TrimSpace(lang) == "" {
		lang = cfg.Language
	}

	ctx, stop := signalContext()
	defer stop()
	tr, err := runner.Translate(ctx, tweetID, lang, params)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("Translation canceled", "error", err)
		}
		return err
	}
	if opts.textOnly {
		return writeBytes(cmd, global, []byte(tr.Text+"\n"))
	}
	return writeOutput(cmd, global, tr)
}
