package payload

import "strings"

// scanState is the position of the object scanner relative to JSON strings.
type scanState int

const (
	scanDefault scanState = iota
	scanString
	scanEscape
)

// ExtractObjectTexts returns the top-level JSON object literals found in text,
// in order of appearance. Braces inside quoted strings do not affect nesting.
// A trailing object cut off outside of a string is closed with the missing
// braces; one cut off inside a string is dropped. Candidates are not validated.
func ExtractObjectTexts(text string) []string {
	var (
		out   []string
		state = scanDefault
		depth int
		start int
	)

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch state {
		case scanEscape:
			state = scanString
			continue
		case scanString:
			switch c {
			case '\\':
				state = scanEscape
			case '"':
				state = scanDefault
			}
			continue
		}

		switch c {
		case '"':
			// Quotes between objects are noise.
			if depth > 0 {
				state = scanString
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				out = append(out, text[start:i+1])
			}
		}
	}

	if depth > 0 && state == scanDefault {
		out = append(out, text[start:]+strings.Repeat("}", depth))
	}
	return out
}
