package xapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oukeidos/xactions/internal/apperrors"
	"github.com/oukeidos/xactions/internal/httpclient"
	"github.com/oukeidos/xactions/internal/logger"
	"github.com/oukeidos/xactions/internal/payload"
)

// ErrUndecodable is the cause of every decode failure returned by Do.
var ErrUndecodable = errors.New("undecodable response body")

// Request describes one call. At most one of Form and JSON is sent as body.
type Request struct {
	Action string
	Method string
	URL    string
	Query  url.Values
	Form   url.Values
	JSON   any
}

// Response is a completed call with its decoded payload.
type Response struct {
	Status  int
	Payload payload.Payload
	Body    string
}

type Client struct {
	session       Session
	userAgent     string
	httpClient    *http.Client
	transactionID TransactionIDFunc
	decoder       payload.Decoder
}

func NewClient(session Session, userAgent string) *Client {
	return &Client{
		session:       session,
		userAgent:     userAgent,
		transactionID: RandomTransactionID,
	}
}

// SetHTTPClient replaces the shared client, e.g. to apply a custom timeout.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// SetTransactionIDFunc installs the x-client-transaction-id generator.
func (c *Client) SetTransactionIDFunc(fn TransactionIDFunc) {
	if fn == nil {
		fn = RandomTransactionID
	}
	c.transactionID = fn
}

func (c *Client) client() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return httpclient.GetDefaultClient()
}

// Do sends r and decodes the body. Failure statuses are reported with the
// server's own error message when the body carries one; successful
// responses that cannot be decoded yield a KindDecode error with a bounded
// preview of the body.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	start := time.Now()
	body, resp, err := httpclient.DoAndRead(c.client(), req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", r.Action, ctxErr)
		}
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, apperrors.WithStatus(
			apperrors.KindTransient,
			status,
			fmt.Sprintf("%s request failed due to a temporary network error.", r.Action),
			fmt.Errorf("request failed: %w", err),
		)
	}

	text := string(body)
	decoded, ok := c.decoder.Decode(text)
	logger.Debug("X API response",
		"action", r.Action,
		"status", resp.StatusCode,
		"bytes", len(body),
		"decoded", ok,
		"request_id", requestID,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	out := &Response{Status: resp.StatusCode, Payload: decoded, Body: text}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, statusError(r.Action, resp.StatusCode, resp.Status, decoded)
	}
	if !ok {
		return out, NonJSONError(r.Action, resp.StatusCode, text)
	}
	if rejectedOnSuccess(decoded) {
		return out, apperrors.WithStatus(
			apperrors.KindBadRequest,
			resp.StatusCode,
			fmt.Sprintf("%s failed: %s", r.Action, decoded.ErrorMessage()),
			fmt.Errorf("%s status=%d carried errors without data", r.Action, resp.StatusCode),
		)
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	target, err := url.Parse(r.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid url: %w", r.Action, err)
	}
	if len(r.Query) > 0 {
		q := target.Query()
		for k, vs := range r.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to marshal request: %w", r.Action, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", r.Action, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "*/*")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	c.session.Apply(req)
	if c.transactionID != nil {
		if id := c.transactionID(method, target.Path); id != "" {
			req.Header.Set("x-client-transaction-id", id)
		}
	}
	return req, nil
}

// NonJSONError reports a body no decoding strategy could read.
func NonJSONError(action string, status int, body string) error {
	return apperrors.WithStatus(
		apperrors.KindDecode,
		status,
		fmt.Sprintf("%s returned non-JSON response (%d): %s", action, status, payload.Preview(body, payload.PreviewLimit)),
		ErrUndecodable,
	)
}

func statusError(action string, status int, statusText string, p payload.Payload) error {
	kind := apperrors.ForStatus(status)
	cause := fmt.Errorf("%s status=%s", action, statusText)
	if msg := p.ErrorMessage(); msg != "" {
		return apperrors.WithStatus(kind, status, fmt.Sprintf("%s failed (%d): %s", action, status, msg), cause)
	}

	var hint string
	switch kind {
	case apperrors.KindRateLimit:
		hint = "rate limit exceeded, please try again later"
	case apperrors.KindAuth:
		hint = "session rejected, please verify your cookies"
	case apperrors.KindTransient:
		hint = "server error, please try again later"
	default:
		hint = strings.TrimSpace(strings.TrimPrefix(statusText, fmt.Sprint(status)))
		if hint == "" {
			hint = "request rejected"
		}
	}
	return apperrors.WithStatus(kind, status, fmt.Sprintf("%s failed (%d): %s", action, status, hint), cause)
}

// rejectedOnSuccess detects 200 responses that only carry errors, which the
// GraphQL endpoints use for validation failures.
func rejectedOnSuccess(p payload.Payload) bool {
	if p.ErrorMessage() == "" {
		return false
	}
	if _, ok := p["data"]; ok {
		return false
	}
	if _, ok := p["result"]; ok {
		return false
	}
	list, ok := p["errors"].([]any)
	return ok && len(list) > 0
}
