package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmOverwrite_NonInteractive(t *testing.T) {
	c := Confirmer{
		In:            bytes.NewBufferString("y\n"),
		Out:           nil,
		IsInteractive: func() bool { return false },
	}
	ok, err := c.ConfirmOverwrite("out.json", false)
	if err == nil {
		t.Fatalf("expected error for non-interactive confirm, got ok=%v", ok)
	}
}

func TestConfirmOverwrite_Force(t *testing.T) {
	c := Confirmer{
		In:            bytes.NewBufferString("n\n"),
		Out:           nil,
		IsInteractive: func() bool { return false },
	}
	ok, err := c.ConfirmOverwrite("out.json", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true for forced overwrite")
	}
}

func TestConfirmAction(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		interactive bool
		force       bool
		want        bool
		wantErr     bool
	}{
		{name: "yes", input: "y\n", interactive: true, want: true},
		{name: "full yes", input: "YES\n", interactive: true, want: true},
		{name: "no", input: "n\n", interactive: true, want: false},
		{name: "eof", input: "", interactive: true, want: false},
		{name: "forced", input: "", interactive: false, force: true, want: true},
		{name: "non-interactive", input: "y\n", interactive: false, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			interactive := tt.interactive
			c := Confirmer{
				In:            bytes.NewBufferString(tt.input),
				Out:           &out,
				IsInteractive: func() bool { return interactive },
			}
			ok, err := c.ConfirmAction("block", "12", tt.force)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if ok != tt.want {
				t.Fatalf("ok = %v, want %v", ok, tt.want)
			}
			if tt.interactive && !tt.force && !strings.Contains(out.String(), "Really block 12?") {
				t.Fatalf("unexpected prompt: %q", out.String())
			}
		})
	}
}
