package xapi

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Session carries the web-session identity attached to every request.
type Session struct {
	AuthToken string
	CSRFToken string
	Bearer    string
	Language  string
}

// Apply sets authentication headers on req.
func (s Session) Apply(req *http.Request) {
	if s.Bearer != "" {
		req.Header.Set("Authorization", "Bearer "+s.Bearer)
	}
	var cookies []string
	if s.AuthToken != "" {
		cookies = append(cookies, "auth_token="+s.AuthToken)
	}
	if s.CSRFToken != "" {
		cookies = append(cookies, "ct0="+s.CSRFToken)
		req.Header.Set("x-csrf-token", s.CSRFToken)
	}
	if len(cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(cookies, "; "))
		req.Header.Set("x-twitter-auth-type", "OAuth2Session")
	}
	req.Header.Set("x-twitter-active-user", "yes")
	if s.Language != "" {
		req.Header.Set("x-twitter-client-language", s.Language)
	}
}

// TransactionIDFunc returns the x-client-transaction-id for a request.
type TransactionIDFunc func(method, path string) string

// RandomTransactionID produces an unsigned, random transaction id. Endpoints
// that verify signatures need a TransactionIDFunc supplied by the caller.
func RandomTransactionID(_, _ string) string {
	id := uuid.New()
	return base64.RawStdEncoding.EncodeToString(id[:])
}
