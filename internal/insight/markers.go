package insight

import (
	"regexp"
	"strings"
)

// Category is the visual class a transcript marker renders as.
type Category string

const (
	CategoryBusy      Category = "busy"
	CategoryClear     Category = "clear"
	CategorySilent    Category = "silent"
	CategoryAutomated Category = "automated-dialing"
	CategoryGeneric   Category = "generic"
)

// markerRule pairs a set of trigger words with a category. Rules are
// evaluated in order; the first match wins, so the precedence is
// explicit rather than an accident of the checks.
type markerRule struct {
	words    []string
	category Category
}

// "Signal" on its own is deliberately not a trigger word: signal markers
// carry a qualifier ("Verified Busy Signal", "Clear Connection") and the
// qualifier decides the category. An unqualified signal token is generic.
var markerRules = []markerRule{
	{[]string{"Busy"}, CategoryBusy},
	{[]string{"Clear", "Normal", "Connected"}, CategoryClear},
	{[]string{"Silent", "No Interaction"}, CategorySilent},
	{[]string{"Delay", "Tone", "Message"}, CategoryAutomated},
}

// ClassifyMarker maps a marker token to exactly one category. Matching
// is case-insensitive substring search; tokens matching no rule fall
// through to CategoryGeneric.
func ClassifyMarker(token string) Category {
	lower := strings.ToLower(token)
	for _, rule := range markerRules {
		for _, w := range rule.words {
			if strings.Contains(lower, strings.ToLower(w)) {
				return rule.category
			}
		}
	}
	return CategoryGeneric
}

// markerPattern matches one bracketed annotation token. Markers do not
// nest, so the body excludes brackets.
var markerPattern = regexp.MustCompile(`\[[^\[\]]+\]`)

// Marker is a classified transcript annotation token.
type Marker struct {
	Token    string   `json:"token"`
	Category Category `json:"category"`
}

// Markers scans a transcript for bracketed annotation tokens and
// classifies each one, in order of appearance.
func Markers(transcript string) []Marker {
	tokens := markerPattern.FindAllString(transcript, -1)
	if len(tokens) == 0 {
		return nil
	}
	markers := make([]Marker, len(tokens))
	for i, tok := range tokens {
		markers[i] = Marker{Token: tok, Category: ClassifyMarker(tok)}
	}
	return markers
}
