package signals

import (
	"context"
	"math"
	"testing"
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/verticals"
)

type stubSource struct {
	cfg *verticals.Config
	err error
}

func (s stubSource) Fetch(ctx context.Context, key verticals.Key) (*verticals.Config, error) {
	return s.cfg, s.err
}

func testConfig() *verticals.Config {
	return &verticals.Config{
		AllowedKinds: []string{"hiring-expansion", "funding-round", "office-opening"},
		TimingRules: map[string]verticals.TimingRule{
			"hiring-expansion": {Weight: 0.9, ActionableWindowDays: 30},
			"funding-round":    {Weight: 0.7, ActionableWindowDays: 60},
			"office-opening":   {Weight: 0.8, ActionableWindowDays: 45},
		},
	}
}

func newTestFilter(cfg *verticals.Config, now time.Time) *Filter {
	provider := verticals.NewProvider(stubSource{cfg: cfg}, logger.NewNop())
	return NewFilter(provider, logger.NewNop()).WithClock(func() time.Time { return now })
}

func sig(kind string, conf, rel float64, detected time.Time) Instance {
	return Instance{
		Kind:       kind,
		EntityID:   "ent-1",
		EntityName: "Acme Trading",
		Confidence: conf,
		Relevance:  rel,
		DetectedAt: detected,
	}
}

func TestFilterSignalsNotConfigured(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTestFilter(nil, now)

	result := f.FilterSignals(context.Background(), verticals.Key{Vertical: "banking"}, []Instance{
		sig("hiring-expansion", 0.9, 0.8, now),
	}, Thresholds{})

	if result.Configured {
		t.Fatal("Configured = true, want false for missing vertical config")
	}
	if len(result.Signals) != 0 {
		t.Errorf("Signals = %d, want 0", len(result.Signals))
	}
}

func TestFilterSignalsAllowlist(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTestFilter(testConfig(), now)

	result := f.FilterSignals(context.Background(), verticals.Key{Vertical: "banking"}, []Instance{
		sig("hiring-expansion", 0.9, 0.8, now),
		sig("celebrity-endorsement", 1.0, 1.0, now),
	}, Thresholds{})

	if !result.Configured {
		t.Fatal("Configured = false, want true")
	}
	if len(result.Signals) != 1 {
		t.Fatalf("Signals = %d, want 1 (out-of-domain kind must be dropped)", len(result.Signals))
	}
	if result.Signals[0].Kind != "hiring-expansion" {
		t.Errorf("Kind = %q, want hiring-expansion", result.Signals[0].Kind)
	}
}

func TestFilterSignalsThresholds(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTestFilter(testConfig(), now)

	tests := []struct {
		name string
		th   Thresholds
		want int
	}{
		{"no thresholds", Thresholds{}, 3},
		{"min confidence", Thresholds{MinConfidence: 0.8}, 1},
		{"min relevance", Thresholds{MinRelevance: 0.75}, 2},
		{"priority kinds", Thresholds{PriorityKinds: []string{"funding-round"}}, 1},
		{"detected after", Thresholds{DetectedAfter: now.AddDate(0, 0, -10)}, 2},
	}

	input := []Instance{
		sig("hiring-expansion", 0.9, 0.9, now.AddDate(0, 0, -2)),
		sig("funding-round", 0.6, 0.8, now.AddDate(0, 0, -5)),
		sig("office-opening", 0.7, 0.5, now.AddDate(0, 0, -20)),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := f.FilterSignals(context.Background(), verticals.Key{Vertical: "banking"}, input, tt.th)
			if len(result.Signals) != tt.want {
				t.Errorf("Signals = %d, want %d", len(result.Signals), tt.want)
			}
		})
	}
}

func TestFilterSignalsOrdering(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTestFilter(testConfig(), now)

	result := f.FilterSignals(context.Background(), verticals.Key{Vertical: "banking"}, []Instance{
		sig("funding-round", 0.8, 0.8, now.AddDate(0, 0, -1)),
		sig("hiring-expansion", 0.8, 0.8, now.AddDate(0, 0, -10)),
		sig("hiring-expansion", 0.8, 0.8, now.AddDate(0, 0, -3)),
	}, Thresholds{})

	if len(result.Signals) != 3 {
		t.Fatalf("Signals = %d, want 3", len(result.Signals))
	}
	// Weight 0.9 kinds first, newest first inside the same kind.
	if result.Signals[0].Kind != "hiring-expansion" || !result.Signals[0].DetectedAt.Equal(now.AddDate(0, 0, -3)) {
		t.Errorf("first = %s @ %s, want newest hiring-expansion", result.Signals[0].Kind, result.Signals[0].DetectedAt)
	}
	if result.Signals[2].Kind != "funding-round" {
		t.Errorf("last = %s, want funding-round (lowest weight)", result.Signals[2].Kind)
	}
}

func TestComputeContribution(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newTestFilter(testConfig(), now)

	// 15 days into a 30 day window: timing decays to 50.
	result := f.FilterSignals(context.Background(), verticals.Key{Vertical: "banking"}, []Instance{
		sig("hiring-expansion", 0.8, 0.6, now.AddDate(0, 0, -15)),
	}, Thresholds{})

	c := result.Signals[0].Contribution
	if got, want := c.Quality, 0.8*0.9*100; math.Abs(got-want) > 1e-9 {
		t.Errorf("Quality = %v, want %v", got, want)
	}
	if math.Abs(c.Timing-50) > 1e-9 {
		t.Errorf("Timing = %v, want 50", c.Timing)
	}
	if got, want := c.Likelihood, 0.6*0.9*100; math.Abs(got-want) > 1e-9 {
		t.Errorf("Likelihood = %v, want %v", got, want)
	}
	if got, want := c.Engagement, 0.9*50; math.Abs(got-want) > 1e-9 {
		t.Errorf("Engagement = %v, want %v", got, want)
	}
}

func TestComputeContributionClamps(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()
	cfg.AllowedKinds = append(cfg.AllowedKinds, "layoff-round")
	cfg.TimingRules["layoff-round"] = verticals.TimingRule{Weight: -0.4, ActionableWindowDays: 30}
	f := newTestFilter(cfg, now)

	result := f.FilterSignals(context.Background(), verticals.Key{Vertical: "banking"}, []Instance{
		sig("layoff-round", 0.9, 0.9, now.AddDate(0, 0, -45)), // stale and negative weight
	}, Thresholds{})

	c := result.Signals[0].Contribution
	if c.Quality != 0 || c.Timing != 0 || c.Likelihood != 0 || c.Engagement != 0 {
		t.Errorf("Contribution = %+v, want all components clamped to 0", c)
	}
}
