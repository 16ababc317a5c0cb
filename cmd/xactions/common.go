package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oukeidos/xactions/internal/actions"
	"github.com/oukeidos/xactions/internal/auth"
	"github.com/oukeidos/xactions/internal/cleanup"
	"github.com/oukeidos/xactions/internal/config"
	"github.com/oukeidos/xactions/internal/files"
	"github.com/oukeidos/xactions/internal/httpclient"
	"github.com/oukeidos/xactions/internal/logger"
	"github.com/oukeidos/xactions/internal/prompt"
	"github.com/oukeidos/xactions/internal/xapi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

var (
	isTerminal        = term.IsTerminal
	loadCredentials   = auth.Load
	loadEnvCredential = auth.LoadEnv
	getStatus         = auth.GetStatus
	saveCredentials   = auth.Save
	deleteCredentials = auth.Delete
	promptForSecret   = auth.PromptForSecret
	newConfirmer      = prompt.DefaultConfirmer
)

type globalOptions struct {
	configPath  string
	paramsPath  string
	sets        []string
	format      string
	outputPath  string
	yes         bool
	allowEnv    bool
	debug       bool
	logFilePath string
}

func addGlobalFlags(f *pflag.FlagSet, opts *globalOptions) {
	f.StringVar(&opts.configPath, "config", "", "Path to config.toml (default ~/.config/xactions/config.toml)")
	f.StringVar(&opts.paramsPath, "params", "", "Path to a JSON/JSONC file of request parameter overrides")
	f.StringArrayVar(&opts.sets, "set", nil, "Override one request parameter (key=value, dotted keys nest)")
	f.StringVar(&opts.format, "format", "json", "Output format (json or yaml)")
	f.StringVarP(&opts.outputPath, "output", "o", "", "Write the result to a file instead of stdout")
	f.BoolVarP(&opts.yes, "yes", "y", false, "Skip confirmation prompts and overwrite output files")
	f.BoolVar(&opts.allowEnv, "allow-env", false, "Allow reading session cookies from environment variables")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	f.StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
}

func setupLogging(opts *globalOptions) error {
	level := logger.LevelWarn
	if opts.debug {
		level = logger.LevelDebug
	}
	if opts.logFilePath == "" {
		logger.Init(level, nil)
		return nil
	}
	if err := files.RejectSymlinkPath(opts.logFilePath); err != nil {
		return err
	}
	f, err := os.OpenFile(opts.logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	cleanup.Register(f.Close)
	if !opts.debug {
		level = logger.LevelInfo
	}
	logger.Init(level, f)
	return nil
}

// resolveCredentials finds session cookies in the keychain, then the
// environment when allowed, then an interactive prompt.
func resolveCredentials(allowEnv bool) (auth.Credentials, string, error) {
	if creds, source := loadCredentials(allowEnv); creds.Complete() {
		return creds, source, nil
	}

	if isTerminal(int(os.Stdin.Fd())) {
		token, err := promptForSecret("auth_token cookie (press Enter to skip): ")
		if err != nil {
			return auth.Credentials{}, "", fmt.Errorf("error reading auth_token: %w", err)
		}
		if token != "" {
			ct0, err := promptForSecret("ct0 cookie: ")
			if err != nil {
				return auth.Credentials{}, "", fmt.Errorf("error reading ct0: %w", err)
			}
			creds := auth.Credentials{AuthToken: token, CT0: ct0}
			if creds.Complete() {
				return creds, "Terminal Prompt", nil
			}
		}
		return auth.Credentials{}, "", fmt.Errorf("session cookies are required; run `xactions env setup`")
	}

	if allowEnv {
		return auth.Credentials{}, "", fmt.Errorf("no session cookies available (non-interactive shell); set keychain or %s and %s", auth.AuthTokenEnvVar, auth.CT0EnvVar)
	}
	return auth.Credentials{}, "", fmt.Errorf("no session cookies available (non-interactive shell); set keychain or use --allow-env")
}

func newRunner(opts *globalOptions) (*actions.Runner, config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	creds, source, err := resolveCredentials(opts.allowEnv)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger.Debug("Session credentials resolved", "source", source)

	client := xapi.NewClient(xapi.Session{
		AuthToken: creds.AuthToken,
		CSRFToken: creds.CT0,
		Bearer:    cfg.BearerToken,
		Language:  cfg.Language,
	}, cfg.UserAgent)
	client.SetHTTPClient(httpclient.NewClient(cfg.Timeout))
	return actions.NewRunner(client, cfg.BaseURL, cfg.APIBaseURL), cfg, nil
}

// collectParams layers --params then --set over an empty map.
func collectParams(opts *globalOptions) (map[string]any, error) {
	params := map[string]any{}
	if opts.paramsPath != "" {
		loaded, err := config.LoadOverrides(opts.paramsPath)
		if err != nil {
			return nil, err
		}
		params = loaded
	}
	for _, kv := range opts.sets {
		key, value, err := parseSet(kv)
		if err != nil {
			return nil, err
		}
		params = actions.MergeParams(params, nestKey(key, value))
	}
	return params, nil
}

func parseSet(kv string) (string, any, error) {
	key, raw, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid --set %q: expected key=value", kv)
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	return key, value, nil
}

func nestKey(key string, value any) map[string]any {
	parts := strings.Split(key, ".")
	out := map[string]any{parts[len(parts)-1]: value}
	for i := len(parts) - 2; i >= 0; i-- {
		out = map[string]any{parts[i]: out}
	}
	return out
}

func encodeOutput(format string, v any) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
}

func writeOutput(cmd *cobra.Command, opts *globalOptions, v any) error {
	data, err := encodeOutput(opts.format, v)
	if err != nil {
		return err
	}
	return writeBytes(cmd, opts, data)
}

func writeBytes(cmd *cobra.Command, opts *globalOptions, data []byte) error {
	if opts.outputPath == "" {
		return writeAll(cmd.OutOrStdout(), data)
	}
	if _, err := os.Stat(opts.outputPath); err == nil {
		ok, err := newConfirmer().ConfirmOverwrite(opts.outputPath, opts.yes)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("output file %s exists; not overwritten", opts.outputPath)
		}
	}
	if err := files.AtomicWrite(opts.outputPath, data, 0600); err != nil {
		return err
	}
	logger.Info("Wrote output", "path", opts.outputPath)
	return nil
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
