// Package lang holds the language registry and the per-language slang
// style hints used to build translation prompts.
package lang

import (
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// AutoDetect is the sentinel source-language code meaning the backend
// should infer the input language itself. It is never a valid target.
const AutoDetect = "auto"

// Language pairs a BCP 47 code with its display label.
type Language struct {
	Code  string
	Label string
}

// Registry is the ordered set of selectable languages. The auto-detect
// sentinel is always first so pickers can default to it for the source
// side and skip it for the target side.
var Registry = []Language{
	{Code: AutoDetect, Label: "Auto Detect"},
	{Code: "en", Label: "English"},
	{Code: "zh", Label: "Chinese"},
	{Code: "es", Label: "Spanish"},
	{Code: "pt", Label: "Portuguese"},
	{Code: "ja", Label: "Japanese"},
	{Code: "ko", Label: "Korean"},
	{Code: "fr", Label: "French"},
	{Code: "de", Label: "German"},
	{Code: "ru", Label: "Russian"},
	{Code: "vi", Label: "Vietnamese"},
	{Code: "th", Label: "Thai"},
	{Code: "id", Label: "Indonesian"},
}

// Targets returns the registry without the auto-detect sentinel.
func Targets() []Language {
	return Registry[1:]
}

// Label resolves a code to its display label. Codes outside the registry
// fall back to the CLDR English name, then to the code itself, so prompt
// construction never fails on an unusual code.
func Label(code string) string {
	if code == AutoDetect {
		return Registry[0].Label
	}
	for _, l := range Registry {
		if l.Code == code {
			return l.Label
		}
	}
	if tag, err := language.Parse(code); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return code
}

// Valid reports whether code is in the registry.
func Valid(code string) bool {
	for _, l := range Registry {
		if l.Code == code {
			return true
		}
	}
	return false
}

type labelSource []Language

func (s labelSource) String(i int) string { return s[i].Label + " " + s[i].Code }
func (s labelSource) Len() int            { return len(s) }

// Filter fuzzy-matches the registry against a picker query. An empty
// query returns the full registry in order.
func Filter(query string, langs []Language) []Language {
	if query == "" {
		return langs
	}
	matches := fuzzy.FindFrom(query, labelSource(langs))
	out := make([]Language, 0, len(matches))
	for _, m := range matches {
		out = append(out, langs[m.Index])
	}
	return out
}
