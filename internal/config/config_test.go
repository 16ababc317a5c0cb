package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "  http://127.0.0.1:8080/i/api/ "
api_base_url = "http://127.0.0.1:8081/"
language = " ja "
timeout = "5s"
`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:8080/i/api" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.APIBaseURL != "http://127.0.0.1:8081" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Language != "ja" {
		t.Fatalf("Language = %q", cfg.Language)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v", cfg.Timeout)
	}
	if cfg.BearerToken != DefaultBearer || cfg.UserAgent != DefaultUserAgent {
		t.Fatalf("expected unset fields to keep defaults, got %+v", cfg)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`timeout = "soon"`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid timeout") {
		t.Fatalf("expected invalid timeout error, got %v", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`base_url = `), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestParseOverrides_AllowsComments(t *testing.T) {
	got, err := ParseOverrides([]byte(`{
  // destination language
  "dst_lang": "de",
  "variables": {"dark_request": true,},
}`))
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}
	if got["dst_lang"] != "de" {
		t.Fatalf("dst_lang = %v", got["dst_lang"])
	}
	vars, ok := got["variables"].(map[string]any)
	if !ok || vars["dark_request"] != true {
		t.Fatalf("variables = %v", got["variables"])
	}
}

func TestParseOverrides_RejectsNonObject(t *testing.T) {
	for _, in := range []string{`[1,2]`, `null`, `nope`} {
		if _, err := ParseOverrides([]byte(in)); err == nil {
			t.Fatalf("ParseOverrides(%q) expected error", in)
		}
	}
}

func TestLoadOverrides_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.jsonc")
	if err := os.WriteFile(path, []byte(`{"user_id": "12" /* numeric id */}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	if got["user_id"] != "12" {
		t.Fatalf("user_id = %v", got["user_id"])
	}
}
