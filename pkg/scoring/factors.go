package scoring

import (
	"time"

	"sales-intel-be/pkg/signals"
)

// Evaluator computes one factor's contribution in [0, 100] from entity data.
// The second return reports whether the factor could be evaluated; false
// means the engine substitutes the neutral contribution of 50.
type Evaluator func(e *EntityData, now time.Time) (float64, bool)

// FactorDefinition pairs a factor's static declaration with its evaluator.
// New factors are added here, not in the engine.
type FactorDefinition struct {
	ID          string
	Dimension   Dimension
	BaseWeight  float64
	Description string
	Source      string
	Evaluate    Evaluator
}

const neutralContribution = 50.0

// Registry is the fixed factor catalog, ordered so scoring output is
// deterministic.
var Registry = []FactorDefinition{
	// Quality
	{
		ID:          "data_completeness",
		Dimension:   DimensionQuality,
		BaseWeight:  0.8,
		Description: "Fraction of key firmographic fields populated",
		Source:      "profile",
		Evaluate:    evaluateDataCompleteness,
	},
	{
		ID:          "firmographic_fit",
		Dimension:   DimensionQuality,
		BaseWeight:  0.7,
		Description: "Company size band against the ideal customer profile",
		Source:      "profile",
		Evaluate:    evaluateFirmographicFit,
	},
	{
		ID:          "enrichment_depth",
		Dimension:   DimensionQuality,
		BaseWeight:  0.5,
		Description: "How many independent sources corroborate the profile",
		Source:      "enrichment",
		Evaluate:    evaluateEnrichmentDepth,
	},

	// Timing
	{
		ID:          "signal_recency",
		Dimension:   DimensionTiming,
		BaseWeight:  0.9,
		Description: "Days since the most recent signal was detected",
		Source:      "signals",
		Evaluate:    evaluateSignalRecency,
	},
	{
		ID:          "actionable_window",
		Dimension:   DimensionTiming,
		BaseWeight:  0.7,
		Description: "How much of each signal's actionable window remains",
		Source:      "signals",
		Evaluate:    evaluateActionableWindow,
	},
	{
		ID:          "signal_momentum",
		Dimension:   DimensionTiming,
		BaseWeight:  0.6,
		Description: "Signal volume over the trailing 30 days",
		Source:      "signals",
		Evaluate:    evaluateSignalMomentum,
	},

	// Likelihood
	{
		ID:          "intent_strength",
		Dimension:   DimensionLikelihood,
		BaseWeight:  0.9,
		Description: "Average likelihood contribution across signals",
		Source:      "signals",
		Evaluate:    evaluateIntentStrength,
	},
	{
		ID:          "pattern_alignment",
		Dimension:   DimensionLikelihood,
		BaseWeight:  0.7,
		Description: "Boost from recognized signal combinations",
		Source:      "patterns",
		Evaluate:    evaluatePatternAlignment,
	},
	{
		ID:          "relevance_fit",
		Dimension:   DimensionLikelihood,
		BaseWeight:  0.6,
		Description: "Average relevance of detected signals to the sub-vertical",
		Source:      "signals",
		Evaluate:    evaluateRelevanceFit,
	},

	// Engagement
	{
		ID:          "engagement_signals",
		Dimension:   DimensionEngagement,
		BaseWeight:  0.7,
		Description: "Average engagement contribution across signals",
		Source:      "signals",
		Evaluate:    evaluateEngagementSignals,
	},
	{
		ID:          "behavior_activity",
		Dimension:   DimensionEngagement,
		BaseWeight:  0.6,
		Description: "Observed outreach activity: opens, replies, meetings",
		Source:      "behavior",
		Evaluate:    evaluateBehaviorActivity,
	},
	{
		ID:          "relationship_recency",
		Dimension:   DimensionEngagement,
		BaseWeight:  0.5,
		Description: "Days since the last direct interaction",
		Source:      "behavior",
		Evaluate:    evaluateRelationshipRecency,
	},
}

func evaluateDataCompleteness(e *EntityData, _ time.Time) (float64, bool) {
	fields := []bool{
		e.Industry != "",
		e.Headcount > 0,
		e.Size != "",
		e.City != "",
		e.Website != "",
	}
	populated := 0
	for _, ok := range fields {
		if ok {
			populated++
		}
	}
	return float64(populated) / float64(len(fields)) * 100, true
}

func evaluateFirmographicFit(e *EntityData, _ time.Time) (float64, bool) {
	if e.Headcount <= 0 {
		return 0, false
	}
	switch {
	case e.Headcount >= 1000:
		return 100, true
	case e.Headcount >= 250:
		return 85, true
	case e.Headcount >= 50:
		return 70, true
	case e.Headcount >= 10:
		return 50, true
	default:
		return 30, true
	}
}

func evaluateEnrichmentDepth(e *EntityData, _ time.Time) (float64, bool) {
	if e.Enrichment == nil {
		return 0, false
	}
	switch n := len(e.Enrichment.SourcesUsed); {
	case n >= 4:
		return 100, true
	case n == 3:
		return 85, true
	case n == 2:
		return 70, true
	case n == 1:
		return 55, true
	default:
		return 30, true
	}
}

// evaluateSignalRecency is a staircase on the age of the newest signal.
func evaluateSignalRecency(e *EntityData, now time.Time) (float64, bool) {
	if len(e.Signals) == 0 {
		return 0, false
	}
	newest := e.Signals[0].DetectedAt
	for _, s := range e.Signals[1:] {
		if s.DetectedAt.After(newest) {
			newest = s.DetectedAt
		}
	}
	days := now.Sub(newest).Hours() / 24
	switch {
	case days <= 7:
		return 100, true
	case days <= 14:
		return 85, true
	case days <= 30:
		return 70, true
	case days <= 60:
		return 50, true
	default:
		return 30, true
	}
}

func evaluateActionableWindow(e *EntityData, _ time.Time) (float64, bool) {
	return averageContribution(e.Signals, DimensionTiming)
}

func evaluateSignalMomentum(e *EntityData, now time.Time) (float64, bool) {
	if len(e.Signals) == 0 {
		return 0, false
	}
	recent := 0
	for _, s := range e.Signals {
		if now.Sub(s.DetectedAt).Hours() <= 30*24 {
			recent++
		}
	}
	switch {
	case recent >= 5:
		return 100, true
	case recent >= 3:
		return 80, true
	case recent == 2:
		return 65, true
	case recent == 1:
		return 50, true
	default:
		return 30, true
	}
}

func evaluateIntentStrength(e *EntityData, _ time.Time) (float64, bool) {
	return averageContribution(e.Signals, DimensionLikelihood)
}

func evaluatePatternAlignment(e *EntityData, _ time.Time) (float64, bool) {
	total := 0.0
	for _, m := range e.Patterns {
		total += m.Pattern.Boost
	}
	score := neutralContribution + total
	if score > 100 {
		score = 100
	}
	return score, true
}

func evaluateRelevanceFit(e *EntityData, _ time.Time) (float64, bool) {
	if len(e.Signals) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, s := range e.Signals {
		sum += s.Relevance * 100
	}
	return sum / float64(len(e.Signals)), true
}

func evaluateEngagementSignals(e *EntityData, _ time.Time) (float64, bool) {
	return averageContribution(e.Signals, DimensionEngagement)
}

func evaluateBehaviorActivity(e *EntityData, _ time.Time) (float64, bool) {
	if e.Behavior == nil {
		return 0, false
	}
	b := e.Behavior
	activity := b.EmailOpens + 2*b.RepliesReceived + 3*b.MeetingsHeld
	switch {
	case activity >= 12:
		return 100, true
	case activity >= 6:
		return 80, true
	case activity >= 3:
		return 60, true
	case activity >= 1:
		return 45, true
	default:
		return 20, true
	}
}

// averageContribution averages one dimension of the signals' precomputed
// QTLE contributions.
func averageContribution(sigs []signals.Instance, dim Dimension) (float64, bool) {
	if len(sigs) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, s := range sigs {
		switch dim {
		case DimensionQuality:
			sum += s.Contribution.Quality
		case DimensionTiming:
			sum += s.Contribution.Timing
		case DimensionLikelihood:
			sum += s.Contribution.Likelihood
		case DimensionEngagement:
			sum += s.Contribution.Engagement
		}
	}
	return sum / float64(len(sigs)), true
}

func evaluateRelationshipRecency(e *EntityData, now time.Time) (float64, bool) {
	if e.Behavior == nil || e.Behavior.LastInteraction.IsZero() {
		return 0, false
	}
	days := now.Sub(e.Behavior.LastInteraction).Hours() / 24
	switch {
	case days <= 7:
		return 100, true
	case days <= 30:
		return 75, true
	case days <= 90:
		return 50, true
	default:
		return 25, true
	}
}
