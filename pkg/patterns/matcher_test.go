package patterns

import (
	"testing"

	"sales-intel-be/pkg/signals"
)

func sigs(kinds ...string) []signals.Instance {
	out := make([]signals.Instance, len(kinds))
	for i, k := range kinds {
		out[i] = signals.Instance{Kind: k, EntityID: "ent-1"}
	}
	return out
}

func TestMatchRequiresAllKinds(t *testing.T) {
	m := NewMatcher(DefaultPatterns)

	tests := []struct {
		name    string
		kinds   []string
		wantIDs []string
	}{
		{
			name:    "no signals",
			kinds:   nil,
			wantIDs: []string{},
		},
		{
			name:    "partial set gets no credit",
			kinds:   []string{"funding-round"},
			wantIDs: []string{},
		},
		{
			name:    "full set matches",
			kinds:   []string{"funding-round", "hiring-expansion"},
			wantIDs: []string{"funded-growth"},
		},
		{
			name:    "extra kinds are ignored",
			kinds:   []string{"funding-round", "hiring-expansion", "regulatory-filing"},
			wantIDs: []string{"funded-growth"},
		},
		{
			name:    "multiple matches ordered by priority",
			kinds:   []string{"funding-round", "hiring-expansion", "office-opening", "contract-award"},
			wantIDs: []string{"funded-growth", "expansion-play", "post-award-scaling"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := m.Match(sigs(tt.kinds...))
			if len(matches) != len(tt.wantIDs) {
				t.Fatalf("matches = %d, want %d", len(matches), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if matches[i].Pattern.ID != want {
					t.Errorf("matches[%d] = %s, want %s", i, matches[i].Pattern.ID, want)
				}
			}
		})
	}
}

func TestMatchDuplicateKindsCountOnce(t *testing.T) {
	m := NewMatcher(DefaultPatterns)

	matches := m.Match(sigs("funding-round", "funding-round", "hiring-expansion"))
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if got := matches[0].MatchedKinds; len(got) != 2 {
		t.Errorf("MatchedKinds = %v, want the two required kinds", got)
	}
}

func TestMatchBoostCap(t *testing.T) {
	m := NewMatcher([]Definition{
		{ID: "oversized", RequiredKinds: []string{"funding-round"}, Boost: 40},
	})

	matches := m.Match(sigs("funding-round"))
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].Pattern.Boost != MaxBoost {
		t.Errorf("Boost = %v, want capped at %v", matches[0].Pattern.Boost, MaxBoost)
	}
}

func TestMatchDeterministicOrder(t *testing.T) {
	m := NewMatcher([]Definition{
		{ID: "b-pattern", RequiredKinds: []string{"funding-round"}, Priority: 50, Boost: 5},
		{ID: "a-pattern", RequiredKinds: []string{"funding-round"}, Priority: 50, Boost: 5},
	})

	matches := m.Match(sigs("funding-round"))
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].Pattern.ID != "a-pattern" {
		t.Errorf("ties must break by id, got %s first", matches[0].Pattern.ID)
	}
}

func TestTotalBoost(t *testing.T) {
	m := NewMatcher(DefaultPatterns)
	matches := m.Match(sigs("funding-round", "hiring-expansion", "office-opening"))

	if got, want := TotalBoost(matches), 27.0; got != want {
		t.Errorf("TotalBoost = %v, want %v", got, want)
	}
	if TotalBoost(nil) != 0 {
		t.Errorf("TotalBoost(nil) = %v, want 0", TotalBoost(nil))
	}
}
