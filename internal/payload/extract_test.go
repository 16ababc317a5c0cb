package payload

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtractObjectTexts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "single object",
			in:   `{"a":1}`,
			want: []string{`{"a":1}`},
		},
		{
			name: "concatenated with noise",
			in:   "data: {\"a\":1}\n\n{\"b\":{\"c\":2}} trailing",
			want: []string{`{"a":1}`, `{"b":{"c":2}}`},
		},
		{
			name: "braces inside strings",
			in:   `{"text":"{not} a brace }}"}`,
			want: []string{`{"text":"{not} a brace }}"}`},
		},
		{
			name: "escaped quote then brace",
			in:   `{"text":"say \"}\" please"}{"x":1}`,
			want: []string{`{"text":"say \"}\" please"}`, `{"x":1}`},
		},
		{
			name: "escaped backslash closes string",
			in:   `{"p":"c:\\"}{"q":2}`,
			want: []string{`{"p":"c:\\"}`, `{"q":2}`},
		},
		{
			name: "truncated object is closed",
			in:   `{"result":{"content_type":"POST","text":"c"`,
			want: []string{`{"result":{"content_type":"POST","text":"c"}}`},
		},
		{
			name: "truncated inside string is dropped",
			in:   `{"a":1}{"result":{"text":"unfinished`,
			want: []string{`{"a":1}`},
		},
		{
			name: "stray closing braces ignored",
			in:   `}}{"a":1}}`,
			want: []string{`{"a":1}`},
		},
		{
			name: "stray quote between objects",
			in:   `"{"a":1}`,
			want: []string{`{"a":1}`},
		},
		{
			name: "no objects",
			in:   "<html><body>Bad gateway</body></html>",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractObjectTexts(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractObjectTexts(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractObjectTexts_RepairedCandidateParses(t *testing.T) {
	got := ExtractObjectTexts(`{"result":{"content_type":"POST","text":"c"`)
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got %d", len(got))
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(got[0]), &v); err != nil {
		t.Fatalf("repaired candidate did not parse: %v", err)
	}
}
