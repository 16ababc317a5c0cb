package actions

import (
	"context"
	"fmt"

	"github.com/oukeidos/xactions/internal/apperrors"
	"github.com/oukeidos/xactions/internal/language"
	"github.com/oukeidos/xactions/internal/logger"
	"github.com/oukeidos/xactions/internal/payload"
	"github.com/oukeidos/xactions/internal/xapi"
)

// Doer sends a request and decodes its response.
type Doer interface {
	Do(ctx context.Context, r xapi.Request) (*xapi.Response, error)
}

// Ensure the real client satisfies Doer
var _ Doer = (*xapi.Client)(nil)

// Result is the normalized outcome of one action.
type Result struct {
	Action  string          `json:"action" yaml:"action"`
	Status  int             `json:"status" yaml:"status"`
	Fields  map[string]any  `json:"fields" yaml:"fields"`
	Payload payload.Payload `json:"-" yaml:"-"`
}

// Translation is the normalized translate result.
type Translation struct {
	TweetID     string `json:"tweet_id" yaml:"tweet_id"`
	Language    string `json:"language" yaml:"language"`
	Text        string `json:"text" yaml:"text"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Entities    any    `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// Runner executes catalog actions against one client.
type Runner struct {
	client  Doer
	webBase string
	apiBase string
}

func NewRunner(client Doer, webBase, apiBase string) *Runner {
	return &Runner{client: client, webBase: webBase, apiBase: apiBase}
}

// Run executes the named action with params overriding its defaults.
func (r *Runner) Run(ctx context.Context, name string, params map[string]any) (*Result, error) {
	def, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown action %q", name)
	}
	req, err := Build(def, r.webBase, r.apiBase, params)
	if err != nil {
		return nil, err
	}

	logger.Info("Running action", "action", def.Name, "target", params[def.IDParam()])
	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Result{
		Action:  def.Name,
		Status:  resp.Status,
		Fields:  Normalize(def, resp.Payload),
		Payload: resp.Payload,
	}, nil
}

// Translate asks the server to translate a post into lang.
func (r *Runner) Translate(ctx context.Context, tweetID, lang string, overrides map[string]any) (*Translation, error) {
	dst, err := language.Resolve(lang)
	if err != nil {
		return nil, err
	}
	params := MergeParams(overrides, map[string]any{"id": tweetID, "dst_lang": dst.Code})

	res, err := r.Run(ctx, TranslateAction, params)
	if err != nil {
		return nil, err
	}

	out := &Translation{
		TweetID:     tweetID,
		Language:    dst.Code,
		Text:        res.Payload.Text(),
		ContentType: res.Payload.ContentType(),
		Entities:    res.Payload.Entities(),
	}
	if out.Text == "" {
		if msg := res.Payload.ErrorMessage(); msg != "" {
			return nil, apperrors.New(apperrors.KindBadRequest, fmt.Sprintf("translate failed: %s", msg), nil)
		}
		return nil, apperrors.New(apperrors.KindValidation, "translate returned no translated text", nil)
	}
	return out, nil
}
