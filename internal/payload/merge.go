package payload

import "strings"

// Merge folds an ordered sequence of fragments into one payload.
//
// The last fragment is the base. result.text follows the stream shape: when
// every chunk extends the previous one the server was resending the full text
// and the final chunk wins; otherwise chunks are deltas, so consecutive
// duplicates are collapsed and the rest concatenated. content_type, entities
// and error are last-write-wins; errors lists are concatenated.
func Merge(fragments []Payload) Payload {
	if len(fragments) == 0 {
		return nil
	}

	var (
		chunks      []string
		contentType any
		hasType     bool
		entities    any
		hasEntities bool
		errValue    any
		hasError    bool
		errs        []any
		hasErrs     bool
	)

	for _, f := range fragments {
		if res := f.Result(); res != nil {
			if text, ok := res["text"].(string); ok && text != "" {
				chunks = append(chunks, text)
			}
			if v, ok := res["content_type"]; ok {
				contentType, hasType = v, true
			}
			if v, ok := res["entities"]; ok {
				entities, hasEntities = v, true
			}
		}
		if v, ok := f["error"]; ok {
			errValue, hasError = v, true
		}
		if list, ok := f["errors"].([]any); ok {
			errs = append(errs, list...)
			hasErrs = true
		}
	}

	last := fragments[len(fragments)-1]
	merged := make(Payload, len(last))
	for k, v := range last {
		merged[k] = v
	}

	result := make(map[string]any)
	for k, v := range last.Result() {
		result[k] = v
	}
	delete(result, "text")
	resolved := false
	if len(chunks) > 0 {
		result["text"] = joinChunks(chunks)
		resolved = true
	}
	if hasType {
		result["content_type"] = contentType
		resolved = true
	}
	if hasEntities {
		result["entities"] = entities
		resolved = true
	}
	if resolved {
		merged["result"] = result
	} else {
		delete(merged, "result")
	}

	if hasError {
		merged["error"] = errValue
	}
	if hasErrs {
		if errs == nil {
			errs = []any{}
		}
		merged["errors"] = errs
	} else {
		delete(merged, "errors")
	}
	return merged
}

func joinChunks(chunks []string) string {
	if isMonotonic(chunks) {
		return chunks[len(chunks)-1]
	}
	var b strings.Builder
	prev := ""
	for i, c := range chunks {
		if i > 0 && c == prev {
			continue
		}
		b.WriteString(c)
		prev = c
	}
	return b.String()
}

func isMonotonic(chunks []string) bool {
	for i := 1; i < len(chunks); i++ {
		if !strings.HasPrefix(chunks[i], chunks[i-1]) {
			return false
		}
	}
	return true
}
