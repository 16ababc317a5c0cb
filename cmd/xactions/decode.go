package main

import (
	"fmt"
	"io"
	"os"

	"github.com/oukeidos/xactions/internal/logger"
	"github.com/oukeidos/xactions/internal/payload"
	"github.com/spf13/cobra"
)

const maxDecodeInput = 16 << 20

func newDecodeCmd(global *globalOptions) *cobra.Command {
	var textOnly bool
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a saved response body (JSON, data URL or stream)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, textOnly, global)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&textOnly, "text", false, "Print only the merged result text")
	return cmd
}

func runDecode(cmd *cobra.Command, args []string, textOnly bool, global *globalOptions) error {
	var in io.Reader = cmd.InOrStdin()
	source := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
		source = args[0]
	}

	data, err := io.ReadAll(io.LimitReader(in, maxDecodeInput+1))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > maxDecodeInput {
		return fmt.Errorf("input exceeds %d bytes", maxDecodeInput)
	}

	raw := string(data)
	logger.Debug("Decoding body", "source", source, "bytes", len(data), "fragments", len(payload.ExtractObjectTexts(raw)))
	p, ok := payload.Decode(raw)
	if !ok {
		return fmt.Errorf("no JSON object found in %s", source)
	}
	if textOnly {
		return writeBytes(cmd, global, []byte(p.Text()+"\n"))
	}
	return writeOutput(cmd, global, p)
}
