package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestPrettyHandler_Structural(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug}
	l := slog.New(NewPrettyHandler(&buf, opts, false))

	t.Run("WithAttrs", func(t *testing.T) {
		buf.Reset()
		l.With("action", "follow").Info("request sent", "status", 200)

		output := buf.String()
		if !strings.Contains(output, "action=follow") {
			t.Errorf("output missing persistent attr: %q", output)
		}
		if !strings.Contains(output, "status=200") {
			t.Errorf("output missing record attr: %q", output)
		}
	})

	t.Run("NestedGroups", func(t *testing.T) {
		buf.Reset()
		l.WithGroup("http").WithGroup("resp").With("code", 429).Info("msg")

		output := buf.String()
		if !strings.Contains(output, "http.resp.code=429") {
			t.Errorf("output missing nested grouped attr: %q", output)
		}
	})

	t.Run("LevelFilter", func(t *testing.T) {
		buf.Reset()
		quiet := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: LevelWarn}, false))
		quiet.Info("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})
}

func TestRedactAttr(t *testing.T) {
	cases := []struct {
		name   string
		attr   slog.Attr
		redact bool
	}{
		{name: "auth token key", attr: slog.String("auth_token", "abc"), redact: true},
		{name: "cookie key", attr: slog.String("Cookie", "x=y"), redact: true},
		{name: "csrf substring", attr: slog.String("x-csrf-token", "abc"), redact: true},
		{name: "response body", attr: slog.String("response_body", "hello"), redact: true},
		{name: "bearer value", attr: slog.String("header", "Bearer AAAAAAAAAAAAAAAAAAAAANRILgAAAAAA%3D"), redact: true},
		{name: "cookie value", attr: slog.String("detail", "auth_token=0123456789abcdef0123"), redact: true},
		{name: "status", attr: slog.Int("status", 200), redact: false},
		{name: "action", attr: slog.String("action", "translate"), redact: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RedactAttr(nil, tc.attr)
			redacted := got.Value.String() == "[REDACTED]"
			if redacted != tc.redact {
				t.Fatalf("RedactAttr(%s) redacted=%v, want %v", tc.attr.Key, redacted, tc.redact)
			}
		})
	}
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	prevStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = prevStderr }()

	fn()

	_ = w.Close()
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestPrettyHandler_NoColorWhenNotTTY(t *testing.T) {
	prevIsTerminal := isTerminal
	isTerminal = func(_ int) bool { return false }
	defer func() { isTerminal = prevIsTerminal }()

	out := captureStderr(t, func() {
		Init(LevelInfo, nil)
		Info("test message", "key", "value")
	})
	if strings.Contains(out, "\033[") {
		t.Fatalf("unexpected ANSI codes in output: %q", out)
	}
	if !strings.Contains(out, "test message") {
		t.Fatalf("expected message in output: %q", out)
	}
}

func TestInit_JSONLFileReceivesRedactedRecords(t *testing.T) {
	prevIsTerminal := isTerminal
	isTerminal = func(_ int) bool { return true }
	defer func() { isTerminal = prevIsTerminal }()

	var logBuf bytes.Buffer
	out := captureStderr(t, func() {
		Init(LevelInfo, &logBuf)
		Info("call finished", "action", "block", "cookie", "auth_token=secret")
	})
	defer Init(LevelWarn, nil)

	if strings.Contains(out, "\033[") {
		t.Fatalf("unexpected ANSI codes with log file enabled: %q", out)
	}
	if !strings.Contains(logBuf.String(), `"action":"block"`) {
		t.Fatalf("expected JSONL record, got %q", logBuf.String())
	}
	if strings.Contains(logBuf.String(), "secret") {
		t.Fatalf("cookie leaked into log file: %q", logBuf.String())
	}
}
