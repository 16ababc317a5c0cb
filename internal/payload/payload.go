package payload

import (
	"strings"

	"github.com/rivo/uniseg"
)

// PreviewLimit bounds how much of an undecodable body is echoed in errors.
const PreviewLimit = 320

// Payload is one decoded JSON object.
type Payload map[string]any

// Result returns the result object, or nil if absent or not an object.
func (p Payload) Result() map[string]any {
	res, _ := p["result"].(map[string]any)
	return res
}

// Text returns result.text.
func (p Payload) Text() string {
	s, _ := p.Result()["text"].(string)
	return s
}

// ContentType returns result.content_type.
func (p Payload) ContentType() string {
	s, _ := p.Result()["content_type"].(string)
	return s
}

// Entities returns result.entities as decoded.
func (p Payload) Entities() any {
	return p.Result()["entities"]
}

// ErrorMessage extracts the server's error text: errors[0].message first,
// then a string error field, then error.message.
func (p Payload) ErrorMessage() string {
	if list, ok := p["errors"].([]any); ok && len(list) > 0 {
		if first, ok := list[0].(map[string]any); ok {
			if msg, ok := first["message"].(string); ok && strings.TrimSpace(msg) != "" {
				return strings.TrimSpace(msg)
			}
		}
	}
	switch v := p["error"].(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return strings.TrimSpace(msg)
		}
	}
	return ""
}

// Preview returns at most limit user-perceived characters of body.
func Preview(body string, limit int) string {
	if limit <= 0 {
		return ""
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(body)
	for n := 0; n < limit && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return b.String()
}
