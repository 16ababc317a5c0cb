package language

import (
	"fmt"
	"sort"
	"strings"
)

// Language is a destination language accepted by the translate action.
type Language struct {
	Code string
	Name string
}

// Languages maps lookup keys to the code sent as dst_lang. Aliases share
// an entry with their canonical code.
var Languages = map[string]Language{
	"ar":      {Code: "ar", Name: "Arabic"},
	"bg":      {Code: "bg", Name: "Bulgarian"},
	"bn":      {Code: "bn", Name: "Bengali"},
	"ca":      {Code: "ca", Name: "Catalan"},
	"cs":      {Code: "cs", Name: "Czech"},
	"da":      {Code: "da", Name: "Danish"},
	"de":      {Code: "de", Name: "German"},
	"el":      {Code: "el", Name: "Greek"},
	"en":      {Code: "en", Name: "English"},
	"es":      {Code: "es", Name: "Spanish"},
	"eu":      {Code: "eu", Name: "Basque"},
	"fa":      {Code: "fa", Name: "Persian"},
	"fi":      {Code: "fi", Name: "Finnish"},
	"fil":     {Code: "fil", Name: "Filipino"},
	"fr":      {Code: "fr", Name: "French"},
	"ga":      {Code: "ga", Name: "Irish"},
	"gl":      {Code: "gl", Name: "Galician"},
	"gu":      {Code: "gu", Name: "Gujarati"},
	"he":      {Code: "he", Name: "Hebrew"},
	"hi":      {Code: "hi", Name: "Hindi"},
	"hr":      {Code: "hr", Name: "Croatian"},
	"hu":      {Code: "hu", Name: "Hungarian"},
	"id":      {Code: "id", Name: "Indonesian"},
	"it":      {Code: "it", Name: "Italian"},
	"ja":      {Code: "ja", Name: "Japanese"},
	"kn":      {Code: "kn", Name: "Kannada"},
	"ko":      {Code: "ko", Name: "Korean"},
	"mr":      {Code: "mr", Name: "Marathi"},
	"ms":      {Code: "ms", Name: "Malay"},
	"nb":      {Code: "nb", Name: "Norwegian"},
	"no":      {Code: "nb", Name: "Norwegian"},
	"nl":      {Code: "nl", Name: "Dutch"},
	"pl":      {Code: "pl", Name: "Polish"},
	"pt":      {Code: "pt", Name: "Portuguese"},
	"ro":      {Code: "ro", Name: "Romanian"},
	"ru":      {Code: "ru", Name: "Russian"},
	"sk":      {Code: "sk", Name: "Slovak"},
	"sr":      {Code: "sr", Name: "Serbian"},
	"sv":      {Code: "sv", Name: "Swedish"},
	"ta":      {Code: "ta", Name: "Tamil"},
	"th":      {Code: "th", Name: "Thai"},
	"tr":      {Code: "tr", Name: "Turkish"},
	"uk":      {Code: "uk", Name: "Ukrainian"},
	"ur":      {Code: "ur", Name: "Urdu"},
	"vi":      {Code: "vi", Name: "Vietnamese"},
	"zh":      {Code: "zh-cn", Name: "Chinese (Simplified)"}, // default to Simplified
	"zh-cn":   {Code: "zh-cn", Name: "Chinese (Simplified)"},
	"zh-Hans": {Code: "zh-cn", Name: "Chinese (Simplified)"},
	"zh-tw":   {Code: "zh-tw", Name: "Chinese (Traditional)"},
	"zh-Hant": {Code: "zh-tw", Name: "Chinese (Traditional)"},
}

// GetLanguage returns the strict match for key.
func GetLanguage(key string) (Language, bool) {
	lang, ok := Languages[key]
	return lang, ok
}

// Resolve accepts a key in any case or an English language name.
func Resolve(input string) (Language, error) {
	needle := strings.TrimSpace(input)
	if needle == "" {
		return Language{}, fmt.Errorf("language is empty")
	}
	if lang, ok := Languages[needle]; ok {
		return lang, nil
	}
	for key, lang := range Languages {
		if strings.EqualFold(key, needle) || strings.EqualFold(lang.Name, needle) {
			return lang, nil
		}
	}
	return Language{}, fmt.Errorf("unsupported language: %s", input)
}

// LanguageEntry represents a map entry for listing.
type LanguageEntry struct {
	ID string // The map key (CLI flag)
	Language
}

// GetSupportedLanguages returns a list of supported languages sorted by Name and then ID.
func GetSupportedLanguages() []LanguageEntry {
	entries := make([]LanguageEntry, 0, len(Languages))
	for k, v := range Languages {
		entries = append(entries, LanguageEntry{ID: k, Language: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}
