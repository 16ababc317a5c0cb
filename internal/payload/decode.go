package payload

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

var dataURLPattern = regexp.MustCompile(`(?s)^data:[^;,]*;base64,([A-Za-z0-9+/=\s]+)$`)

// Decoder recovers a payload from a response body that may be plain JSON,
// a base64 data URL, or a stream of concatenated JSON objects.
type Decoder struct {
	// Base64 decodes a data URL payload with whitespace already removed.
	// When nil, a forgiving standard-alphabet decoder is used.
	Base64 func(string) ([]byte, error)
}

var defaultDecoder Decoder

// Decode runs the default decoder over raw.
func Decode(raw string) (Payload, bool) {
	return defaultDecoder.Decode(raw)
}

// Decode returns the best-effort payload for raw, or false when no strategy
// produced a JSON object.
func (d Decoder) Decode(raw string) (Payload, bool) {
	if p, ok := parseObject(raw); ok {
		return p, true
	}

	text := raw
	if decoded, ok := d.unwrapDataURL(raw); ok {
		if p, ok := parseObject(decoded); ok {
			return p, true
		}
		text = decoded
	}

	var fragments []Payload
	for _, candidate := range ExtractObjectTexts(text) {
		if p, ok := parseObject(candidate); ok {
			fragments = append(fragments, p)
		}
	}
	switch len(fragments) {
	case 0:
		return nil, false
	case 1:
		return fragments[0], true
	default:
		return Merge(fragments), true
	}
}

func (d Decoder) unwrapDataURL(raw string) (string, bool) {
	m := dataURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	encoded := strings.Join(strings.Fields(m[1]), "")

	decode := d.Base64
	if decode == nil {
		decode = forgivingBase64
	}
	data, err := decode(encoded)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) {
		return strings.ToValidUTF8(string(data), "\uFFFD"), true
	}
	return string(data), true
}

// forgivingBase64 accepts input with or without trailing padding.
func forgivingBase64(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func parseObject(text string) (Payload, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Payload(obj), true
}
