package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
)

const (
	defaultConfigPath = "~/.config/xactions/config.toml"
	DefaultBaseURL    = "https://x.com/i/api"
	DefaultAPIBaseURL = "https://api.x.com"
	DefaultLanguage   = "en"
	DefaultTimeout    = 60 * time.Second
	DefaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	// DefaultBearer is the public bearer token the web client ships with.
	DefaultBearer = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"
)

// Config holds client settings resolved from the config file.
type Config struct {
	BaseURL     string
	APIBaseURL  string
	BearerToken string
	UserAgent   string
	Language    string
	Timeout     time.Duration
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		APIBaseURL:  DefaultAPIBaseURL,
		BearerToken: DefaultBearer,
		UserAgent:   DefaultUserAgent,
		Language:    DefaultLanguage,
		Timeout:     DefaultTimeout,
	}
}

// Load parses the TOML config at path (or the default location), falling back
// to defaults when the file is missing or a field is empty.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL     string `toml:"base_url"`
		APIBaseURL  string `toml:"api_base_url"`
		BearerToken string `toml:"bearer_token"`
		UserAgent   string `toml:"user_agent"`
		Language    string `toml:"language"`
		Timeout     string `toml:"timeout"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setIfPresent(&cfg.BaseURL, strings.TrimRight(strings.TrimSpace(raw.BaseURL), "/"))
	setIfPresent(&cfg.APIBaseURL, strings.TrimRight(strings.TrimSpace(raw.APIBaseURL), "/"))
	setIfPresent(&cfg.BearerToken, strings.TrimSpace(raw.BearerToken))
	setIfPresent(&cfg.UserAgent, strings.TrimSpace(raw.UserAgent))
	setIfPresent(&cfg.Language, strings.TrimSpace(raw.Language))

	if t := strings.TrimSpace(raw.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("parse config: invalid timeout %q", raw.Timeout)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// LoadOverrides reads a JSON (comments and trailing commas allowed) object
// used as per-call request overrides.
func LoadOverrides(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes a JSONC object.
func ParseOverrides(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &out); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("parse overrides: expected a JSON object")
	}
	return out, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
