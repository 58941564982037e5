package patterns

import (
	"sort"

	"sales-intel-be/pkg/signals"
)

// MaxBoost caps how much a single pattern may add to the likelihood score.
const MaxBoost = 15.0

// Definition names a combination of co-occurring signal kinds that represents
// a recognized sales situation. A pattern matches only when every required
// kind is present; there is no partial credit.
type Definition struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	RequiredKinds   []string `json:"required_kinds"`
	Priority        int      `json:"priority"`
	Insight         string   `json:"insight"`
	SuggestedAction string   `json:"suggested_action"`
	Boost           float64  `json:"boost"`
}

// Match is one recognized pattern with the kinds that satisfied it.
type Match struct {
	Pattern      Definition `json:"pattern"`
	MatchedKinds []string   `json:"matched_kinds"`
}

// Matcher evaluates a fixed pattern set. Matching is pure: the same input
// set yields the same output set regardless of call order, so one Matcher is
// safe for concurrent use across entities.
type Matcher struct {
	defs []Definition
}

func NewMatcher(defs []Definition) *Matcher {
	return &Matcher{defs: defs}
}

// Match returns every pattern whose required kinds all appear at least once
// among the supplied signals. Extra signals are ignored. Results are ordered
// by priority descending, then id, so output is deterministic.
func (m *Matcher) Match(sigs []signals.Instance) []Match {
	present := make(map[string]bool, len(sigs))
	for _, s := range sigs {
		present[s.Kind] = true
	}

	matches := make([]Match, 0)
	for _, def := range m.defs {
		if len(def.RequiredKinds) == 0 {
			continue
		}
		all := true
		for _, kind := range def.RequiredKinds {
			if !present[kind] {
				all = false
				break
			}
		}
		if !all {
			continue
		}
		d := def
		if d.Boost > MaxBoost {
			d.Boost = MaxBoost
		}
		matches = append(matches, Match{
			Pattern:      d,
			MatchedKinds: append([]string(nil), d.RequiredKinds...),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Pattern.Priority != matches[j].Pattern.Priority {
			return matches[i].Pattern.Priority > matches[j].Pattern.Priority
		}
		return matches[i].Pattern.ID < matches[j].Pattern.ID
	})

	return matches
}

// TotalBoost sums the bounded boosts of the given matches. Used by the score
// engine as the source of applied boosts.
func TotalBoost(matches []Match) float64 {
	total := 0.0
	for _, m := range matches {
		total += m.Pattern.Boost
	}
	return total
}

// DefaultPatterns is the stock pattern set for employee-banking style
// verticals.
var DefaultPatterns = []Definition{
	{
		ID:              "funded-growth",
		Name:            "Funded Growth",
		RequiredKinds:   []string{"funding-round", "hiring-expansion"},
		Priority:        90,
		Insight:         "Fresh capital is being converted into headcount; payroll volume is about to jump",
		SuggestedAction: "Propose a payroll onboarding package before the hiring wave lands",
		Boost:           15,
	},
	{
		ID:              "expansion-play",
		Name:            "Expansion Play",
		RequiredKinds:   []string{"hiring-expansion", "office-opening"},
		Priority:        80,
		Insight:         "Hiring plus a new office points to a structural expansion, not seasonal churn",
		SuggestedAction: "Offer employee banking for the new location's workforce",
		Boost:           12,
	},
	{
		ID:              "new-market-entrant",
		Name:            "New Market Entrant",
		RequiredKinds:   []string{"market-entry", "subsidiary-creation"},
		Priority:        75,
		Insight:         "A foreign entrant is standing up a local legal entity and needs a local banking partner",
		SuggestedAction: "Lead with market-entry banking setup and local payroll compliance",
		Boost:           12,
	},
	{
		ID:              "post-award-scaling",
		Name:            "Post-Award Scaling",
		RequiredKinds:   []string{"contract-award", "hiring-expansion"},
		Priority:        70,
		Insight:         "A contract win is driving staffing up; revenue and payroll both grow",
		SuggestedAction: "Discuss working capital alongside employee accounts",
		Boost:           10,
	},
	{
		ID:              "leadership-reset",
		Name:            "Leadership Reset",
		RequiredKinds:   []string{"leadership-change", "product-launch"},
		Priority:        50,
		Insight:         "New leadership launching products tends to revisit vendor relationships",
		SuggestedAction: "Request an introduction while relationships are in flux",
		Boost:           8,
	},
}
