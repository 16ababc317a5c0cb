package actions

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/oukeidos/xactions/internal/payload"
	"github.com/oukeidos/xactions/internal/xapi"
)

// MergeParams overlays overrides on defaults. Nested objects are merged key
// by key; any other override value replaces the default. Inputs are not
// modified.
func MergeParams(defaults, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		base, baseIsMap := out[k].(map[string]any)
		over, overIsMap := v.(map[string]any)
		if baseIsMap && overIsMap {
			out[k] = MergeParams(base, over)
			continue
		}
		out[k] = v
	}
	return out
}

// Build turns a definition and caller parameters into a request against the
// given base URLs.
func Build(def Definition, webBase, apiBase string, overrides map[string]any) (xapi.Request, error) {
	params := MergeParams(def.Defaults, overrides)
	for _, field := range def.Required {
		if isBlank(params[field]) {
			return xapi.Request{}, fmt.Errorf("%s: %s is required", def.Name, field)
		}
	}

	base := webBase
	if def.Host == HostAPI {
		base = apiBase
	}
	req := xapi.Request{
		Action: def.Name,
		Method: def.Method,
		URL:    strings.TrimRight(base, "/") + def.Path,
	}

	switch def.Kind {
	case KindForm:
		form := url.Values{}
		for k, v := range params {
			s, err := formValue(v)
			if err != nil {
				return xapi.Request{}, fmt.Errorf("%s: parameter %s: %w", def.Name, k, err)
			}
			if v != nil {
				form.Set(k, s)
			}
		}
		req.Form = form
	case KindGraphQL:
		req.JSON = map[string]any{
			"variables": params,
			"queryId":   def.QueryID,
		}
	case KindJSON:
		req.JSON = params
	default:
		return xapi.Request{}, fmt.Errorf("%s: unknown request kind %d", def.Name, def.Kind)
	}
	return req, nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

func formValue(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool, int, int64, json.Number:
		return fmt.Sprint(t), nil
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// Normalize renames response fields to their client names. Fields absent
// from the payload are omitted.
func Normalize(def Definition, p payload.Payload) map[string]any {
	out := make(map[string]any, len(def.Fields))
	for client, path := range def.Fields {
		if v, ok := lookupPath(p, path); ok {
			out[client] = v
		}
	}
	return out
}

func lookupPath(p payload.Payload, path string) (any, bool) {
	var cur any = map[string]any(p)
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
