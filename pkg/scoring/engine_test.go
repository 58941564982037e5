package scoring

import (
	"reflect"
	"testing"
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/patterns"
	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/verticals"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testEngine(opts ...Option) *Engine {
	cfg := &verticals.Config{Vertical: "banking"}
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewEngine(cfg, "employee-banking", logger.NewNop(), opts...)
}

func hiringSignal(ageDays int) signals.Instance {
	return signals.Instance{
		Kind:       "hiring-expansion",
		EntityID:   "ent-1",
		EntityName: "Falcon Logistics",
		Confidence: 0.9,
		Relevance:  0.85,
		DetectedAt: testNow.AddDate(0, 0, -ageDays),
		Contribution: signals.Contribution{
			Quality:    81,
			Timing:     90,
			Likelihood: 76,
			Engagement: 45,
		},
	}
}

func hotEntity() *EntityData {
	return &EntityData{
		EntityID:  "ent-1",
		Name:      "Falcon Logistics",
		Industry:  "logistics",
		Headcount: 1200,
		Size:      "enterprise",
		City:      "Dubai",
		Website:   "falcon.example",
		Signals:   []signals.Instance{hiringSignal(2), hiringSignal(4), hiringSignal(6)},
		Patterns: []patterns.Match{
			{Pattern: patterns.Definition{ID: "funded-growth", Boost: 15}},
		},
		Enrichment: &EnrichmentSummary{
			SourcesUsed:    []string{"registry", "news", "web", "linkedin"},
			Summary:        "Rapidly growing logistics firm",
			LastEnrichedAt: testNow.AddDate(0, 0, -1),
		},
		Behavior: &BehaviorSummary{
			EmailOpens:      6,
			RepliesReceived: 2,
			MeetingsHeld:    1,
			LastInteraction: testNow.AddDate(0, 0, -3),
		},
	}
}

func TestCalculateScoreZeroSignalBaseline(t *testing.T) {
	e := testEngine()

	d := e.CalculateScore(&EntityData{EntityID: "ent-9", Name: "Quiet Corp"})

	if d.Score.Composite != 0 {
		t.Errorf("Composite = %v, want 0", d.Score.Composite)
	}
	if d.Grade != GradeCold {
		t.Errorf("Grade = %s, want cold", d.Grade)
	}
	if d.SignalCount != 0 {
		t.Errorf("SignalCount = %d, want 0", d.SignalCount)
	}
	if len(d.Reasoning) != 2 {
		t.Fatalf("Reasoning lines = %d, want 2", len(d.Reasoning))
	}
	if d.Reasoning[0] != "Quiet Corp graded cold with a composite score of 0." {
		t.Errorf("Reasoning[0] = %q", d.Reasoning[0])
	}
}

func TestCalculateScoreHotExample(t *testing.T) {
	e := testEngine()

	d := e.CalculateScore(hotEntity())

	if d.Grade != GradeHot {
		t.Errorf("Grade = %s (composite %v), want hot", d.Grade, d.Score.Composite)
	}
	if d.Score.Composite < 80 || d.Score.Composite > 100 {
		t.Errorf("Composite = %v, want within [80, 100]", d.Score.Composite)
	}
	if d.SignalCount != 3 {
		t.Errorf("SignalCount = %d, want 3", d.SignalCount)
	}
	if len(d.Factors) != len(Registry) {
		t.Errorf("Factors = %d, want full registry of %d", len(d.Factors), len(Registry))
	}
}

func TestCalculateScoreBounds(t *testing.T) {
	e := testEngine()

	d := e.CalculateScore(hotEntity())

	for _, v := range []float64{
		d.Score.Quality, d.Score.Timing, d.Score.Likelihood, d.Score.Engagement, d.Score.Composite,
	} {
		if v < 0 || v > 100 {
			t.Errorf("score component %v outside [0, 100]", v)
		}
	}
	for _, f := range d.Factors {
		if f.Contribution < 0 || f.Contribution > 100 {
			t.Errorf("factor %s contribution %v outside [0, 100]", f.ID, f.Contribution)
		}
	}
}

func TestCalculateScoreDeterministic(t *testing.T) {
	e := testEngine()

	a := e.CalculateScore(hotEntity())
	b := e.CalculateScore(hotEntity())

	if a.Score != b.Score {
		t.Errorf("Score differs: %+v vs %+v", a.Score, b.Score)
	}
	if !reflect.DeepEqual(a.Reasoning, b.Reasoning) {
		t.Errorf("Reasoning differs:\n%v\n%v", a.Reasoning, b.Reasoning)
	}
	if !reflect.DeepEqual(a.Factors, b.Factors) {
		t.Errorf("Factors differ between identical runs")
	}
}

func TestNeutralContributionForUnknownAttributes(t *testing.T) {
	e := testEngine()

	// One signal, but no firmographics, enrichment or behavior data: the
	// entity-attribute factors fall back to 50 instead of punishing.
	d := e.CalculateScore(&EntityData{
		EntityID: "ent-2",
		Name:     "Sparse Trading",
		Signals:  []signals.Instance{hiringSignal(3)},
	})

	byID := map[string]Factor{}
	for _, f := range d.Factors {
		byID[f.ID] = f
	}
	for _, id := range []string{"firmographic_fit", "enrichment_depth", "behavior_activity", "relationship_recency"} {
		if got := byID[id].Contribution; got != 50 {
			t.Errorf("%s contribution = %v, want neutral 50", id, got)
		}
	}
}

func TestGradeThresholds(t *testing.T) {
	e := testEngine()

	tests := []struct {
		composite float64
		want      Grade
	}{
		{95, GradeHot},
		{80, GradeHot},
		{79.9, GradeWarm},
		{50, GradeWarm},
		{49.9, GradeCold},
		{0, GradeCold},
	}
	for _, tt := range tests {
		if got := e.grade(tt.composite); got != tt.want {
			t.Errorf("grade(%v) = %s, want %s", tt.composite, got, tt.want)
		}
	}
}

func TestSubVerticalMultiplierAffectsWeights(t *testing.T) {
	cfg := &verticals.Config{
		Vertical: "banking",
		SubVerticalMultipliers: map[string]map[string]float64{
			"employee-banking": {"signal_recency": 0.0},
		},
	}
	e := NewEngine(cfg, "employee-banking", logger.NewNop(), WithClock(func() time.Time { return testNow }))

	d := e.CalculateScore(hotEntity())
	for _, f := range d.Factors {
		if f.ID == "signal_recency" && f.Weight != 0 {
			t.Errorf("signal_recency weight = %v, want 0 after multiplier", f.Weight)
		}
	}
}

func TestSignalEvidenceCap(t *testing.T) {
	e := testEngine()

	entity := hotEntity()
	entity.Signals = []signals.Instance{
		hiringSignal(1), hiringSignal(2), hiringSignal(3), hiringSignal(4),
		hiringSignal(5), hiringSignal(6), hiringSignal(7),
	}
	d := e.CalculateScore(entity)

	signalItems := 0
	for _, ev := range d.Evidence {
		for _, id := range ev.FactorIDs {
			if id == "intent_strength" {
				signalItems++
				break
			}
		}
	}
	if signalItems > 5 {
		t.Errorf("signal evidence items = %d, want at most 5", signalItems)
	}
}
