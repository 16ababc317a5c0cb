package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func translationServer(t *testing.T, gotLang *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/grok/translation.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)
		if gotLang != nil {
			*gotLang, _ = body["dst_lang"].(string)
		}
		fmt.Fprint(w, `{"result":{"content_type":"POST","text":"Hal"}}`+
			`{"result":{"content_type":"POST","text":"Hallo"}}`+
			`{"result":{"content_type":"POST","text":"Hallo Welt"`)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestTranslateCmd(t *testing.T) {
	withCredentialStubs(t, false, testCreds)
	var lang string
	server := translationServer(t, &lang)

	out, err := executeCommand(t, "--config", writeTestConfig(t, server.URL), "translate", "1799", "--lang", "German")
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, out)
	}
	var tr map[string]any
	if err := json.Unmarshal([]byte(out), &tr); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if tr["text"] != "Hallo Welt" || tr["tweet_id"] != "1799" || tr["language"] != "de" {
		t.Fatalf("unexpected translation: %v", tr)
	}
	if lang != "de" {
		t.Fatalf("dst_lang = %q", lang)
	}
}

func TestTranslateCmd_DefaultLanguageFromConfig(t *testing.T) {
	withCredentialStubs(t, false, testCreds)
	var lang string
	server := translationServer(t, &lang)

	out, err := executeCommand(t, "--config", writeTestConfig(t, server.URL), "translate", "1799", "--text")
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, out)
	}
	if out != "Hallo Welt\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if lang != "ja" {
		t.Fatalf("dst_lang = %q, want config language", lang)
	}
}

func TestTranslateCmd_OutputFile(t *testing.T) {
	withCredentialStubs(t, false, testCreds)
	server := translationServer(t, nil)
	cfg := writeTestConfig(t, server.URL)
	outPath := filepath.Join(t.TempDir(), "out.yaml")

	if _, err := executeCommand(t, "--config", cfg, "translate", "1799", "--format", "yaml", "-o", outPath); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "text: Hallo Welt") {
		t.Fatalf("unexpected file content: %s", data)
	}

	if _, err := executeCommand(t, "--config", cfg, "translate", "1799", "-o", outPath); err == nil {
		t.Fatalf("expected refusal to overwrite without --yes")
	}
	if _, err := executeCommand(t, "--config", cfg, "translate", "1799", "-o", outPath, "-y"); err != nil {
		t.Fatalf("forced overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(outPath)
	if !strings.HasPrefix(string(data), "{") {
		t.Fatalf("expected JSON after overwrite, got %s", data)
	}
}

func TestTranslateCmd_NonJSONResponse(t *testing.T) {
	withCredentialStubs(t, false, testCreds)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>maintenance</html>")
	}))
	defer server.Close()

	_, err := executeCommand(t, "--config", writeTestConfig(t, server.URL), "translate", "1799", "--lang", "en")
	want := "translate returned non-JSON response (200): <html>maintenance</html>"
	if err == nil || err.Error() != want {
		t.Fatalf("error = %v, want %q", err, want)
	}
}

func TestTranslateCmd_UnsupportedLanguage(t *testing.T) {
	withCredentialStubs(t, false, testCreds)
	server := translationServer(t, nil)

	_, err := executeCommand(t, "--config", writeTestConfig(t, server.URL), "translate", "1799", "--lang", "klingon")
	if err == nil || !strings.Contains(err.Error(), "unsupported language") {
		t.Fatalf("expected unsupported language error, got %v", err)
	}
}
