package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestPublicMessage_UsesSafeMessage(t *testing.T) {
	sentinel := errors.New("SECRET_VALUE")
	err := New(KindAuth, "safe auth error", sentinel)
	if got := PublicMessage(err); got != "safe auth error" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "safe auth error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped cause to be retained for internal matching")
	}
}

func TestKindOfAndRetryable(t *testing.T) {
	err := New(KindRateLimit, "", errors.New("boom"))
	kind, ok := KindOf(err)
	if !ok || kind != KindRateLimit {
		t.Fatalf("KindOf() = (%q, %v), want (%q, true)", kind, ok, KindRateLimit)
	}
	if !IsRetryable(err) {
		t.Fatalf("expected rate_limit error to be retryable")
	}
	if IsRetryable(New(KindDecode, "", nil)) {
		t.Fatalf("decode failures must not be retryable")
	}
}

func TestPublicMessage_NonAppError(t *testing.T) {
	err := errors.New("plain")
	if got := PublicMessage(err); got != "plain" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "plain")
	}
}

func TestDefaultSafeMessage(t *testing.T) {
	err := New(KindDecode, "  ", nil)
	if got := err.Error(); got != "Response could not be decoded." {
		t.Fatalf("Error() = %q", got)
	}
}

func TestWithStatusSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("follow: %w", WithStatus(KindAuth, 401, "", nil))
	if got := StatusOf(err); got != 401 {
		t.Fatalf("StatusOf() = %d, want 401", got)
	}
	if StatusOf(errors.New("plain")) != 0 {
		t.Fatalf("expected zero status for non-app errors")
	}
}

func TestForStatus(t *testing.T) {
	cases := map[int]Kind{
		429: KindRateLimit,
		401: KindAuth,
		403: KindAuth,
		500: KindTransient,
		503: KindTransient,
		400: KindBadRequest,
		404: KindBadRequest,
	}
	for status, want := range cases {
		if got := ForStatus(status); got != want {
			t.Errorf("ForStatus(%d) = %q, want %q", status, got, want)
		}
	}
}
