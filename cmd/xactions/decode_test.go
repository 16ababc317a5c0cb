package main

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const streamBody = `{"result":{"text":"Bon"}}` + "\n" + `{"result":{"text":"Bonjour"}}` + "\n" + `{"result":{"text":"Bonjour le monde","content_type":"POST"`

func TestDecodeCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.txt")
	if err := os.WriteFile(path, []byte(streamBody), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := executeCommand(t, "decode", path, "--text")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if out != "Bonjour le monde\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDecodeCmd_StdinDataURL(t *testing.T) {
	raw := "data:application/json;base64," + base64.StdEncoding.EncodeToString([]byte(streamBody))
	out, err := executeCommandWithInput(t, strings.NewReader(raw), "decode", "--format", "yaml")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "text: Bonjour le monde") || !strings.Contains(out, "content_type: POST") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestDecodeCmd_Garbage(t *testing.T) {
	_, err := executeCommandWithInput(t, strings.NewReader("<html>nope</html>"), "decode")
	if err == nil || !strings.Contains(err.Error(), "no JSON object found") {
		t.Fatalf("expected decode failure, got %v", err)
	}
}
