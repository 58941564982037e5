package command

import (
	"strings"
)

// Intent is one of the closed set of user intentions the resolver
// understands. Classification is advisory, not binding: a low-confidence or
// unknown result still degrades to a generic card, never an error.
type Intent string

const (
	IntentCheckEntity    Intent = "check-entity"
	IntentFindLeads      Intent = "find-leads"
	IntentRecall         Intent = "recall"
	IntentPreference     Intent = "preference"
	IntentNBARequest     Intent = "nba-request"
	IntentStatusQuery    Intent = "status-query"
	IntentClearWorkspace Intent = "clear-workspace"
	IntentHelp           Intent = "help"
	IntentUnknown        Intent = "unknown"
)

// Classification is the result of intent analysis on a free-text query.
type Classification struct {
	Intent     Intent  `json:"intent"`
	EntityName string  `json:"entity_name,omitempty"`
	Confidence float64 `json:"confidence"`
}

// entityPrefixes introduce a named entity in check-entity queries.
var entityPrefixes = []string{
	"check ",
	"check out ",
	"score ",
	"look up ",
	"lookup ",
	"what about ",
	"how about ",
	"tell me about ",
	"show me ",
}

// ClassifyIntent analyzes the query with layered keyword heuristics. The
// order matters: specific commands win over the entity-name fallback.
func ClassifyIntent(query string) Classification {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Classification{Intent: IntentUnknown, Confidence: 0}
	}

	switch {
	case containsAny(q, "clear workspace", "clear my workspace", "start over", "reset workspace", "clear everything"):
		return Classification{Intent: IntentClearWorkspace, Confidence: 0.95}

	case q == "help" || q == "?" || containsAny(q, "what can you do", "how do i", "how does this work"):
		return Classification{Intent: IntentHelp, Confidence: 0.9}

	case containsAny(q, "next best action", "what should i do", "what next", "whats next", "what's next", "nba"):
		return Classification{Intent: IntentNBARequest, Confidence: 0.9}

	case containsAny(q, "find leads", "find companies", "find prospects", "discover", "new leads", "who should i target"):
		return Classification{Intent: IntentFindLeads, Confidence: 0.85}

	case containsAny(q, "remind me", "what did we", "last time", "recall", "what happened with"):
		return Classification{Intent: IntentRecall, Confidence: 0.8}

	case containsAny(q, "prefer", "always show", "stop showing", "don't show", "dont show", "mute "):
		return Classification{Intent: IntentPreference, Confidence: 0.8}

	case containsAny(q, "how many", "status", "pipeline", "summary of my", "where do i stand"):
		return Classification{Intent: IntentStatusQuery, Confidence: 0.75}
	}

	if name := extractEntityName(query); name != "" {
		return Classification{Intent: IntentCheckEntity, EntityName: name, Confidence: 0.8}
	}

	// Short capitalized queries are usually bare company names.
	if looksLikeEntityName(query) {
		return Classification{Intent: IntentCheckEntity, EntityName: strings.TrimSpace(query), Confidence: 0.55}
	}

	return Classification{Intent: IntentUnknown, Confidence: 0.3}
}

func containsAny(q string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(q, s) {
			return true
		}
	}
	return false
}

// extractEntityName pulls the entity name following a recognized prefix,
// preserving the original casing from the raw query.
func extractEntityName(query string) string {
	trimmed := strings.TrimSpace(query)
	lower := strings.ToLower(trimmed)
	for _, prefix := range entityPrefixes {
		if strings.HasPrefix(lower, prefix) {
			name := strings.TrimSpace(trimmed[len(prefix):])
			name = strings.Trim(name, "?.!")
			if name != "" {
				return name
			}
		}
	}
	return ""
}

// looksLikeEntityName guesses whether a bare query is a company name:
// short, no question phrasing, starts with an uppercase letter or quote.
func looksLikeEntityName(query string) bool {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(trimmed) > 60 {
		return false
	}
	if strings.Contains(trimmed, "?") {
		return false
	}
	words := strings.Fields(trimmed)
	if len(words) > 5 {
		return false
	}
	first := trimmed[0]
	return (first >= 'A' && first <= 'Z') || first == '"'
}
