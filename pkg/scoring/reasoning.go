package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// buildReasoning produces the deterministic explanation template: grade and
// composite, strongest dimension, up to 3 strengths (>70), up to 2
// improvement areas (<40), and the supporting signal count. No free-form
// generation; the same input always renders the same text.
func buildReasoning(e *EntityData, score QTLEScore, grade Grade, factors []Factor) []string {
	lines := []string{
		fmt.Sprintf("%s graded %s with a composite score of %.0f.", e.Name, grade, score.Composite),
		fmt.Sprintf("Strongest dimension: %s (%.0f).", strongestDimension(score), dimensionValue(score, strongestDimension(score))),
	}

	strengths := pickFactors(factors, func(f Factor) bool { return f.Contribution > 70 }, 3)
	if len(strengths) > 0 {
		lines = append(lines, "Key strengths: "+joinFactors(strengths)+".")
	}

	improvements := pickFactors(factors, func(f Factor) bool { return f.Contribution < 40 }, 2)
	if len(improvements) > 0 {
		lines = append(lines, "Improvement areas: "+joinFactors(improvements)+".")
	}

	plural := "s"
	if len(e.Signals) == 1 {
		plural = ""
	}
	lines = append(lines, fmt.Sprintf("Based on %d supporting signal%s.", len(e.Signals), plural))

	return lines
}

func strongestDimension(s QTLEScore) Dimension {
	best := DimensionQuality
	bestVal := s.Quality
	// Fixed evaluation order keeps ties deterministic.
	for _, cand := range []struct {
		dim Dimension
		val float64
	}{
		{DimensionTiming, s.Timing},
		{DimensionLikelihood, s.Likelihood},
		{DimensionEngagement, s.Engagement},
	} {
		if cand.val > bestVal {
			best = cand.dim
			bestVal = cand.val
		}
	}
	return best
}

func dimensionValue(s QTLEScore, dim Dimension) float64 {
	switch dim {
	case DimensionTiming:
		return s.Timing
	case DimensionLikelihood:
		return s.Likelihood
	case DimensionEngagement:
		return s.Engagement
	default:
		return s.Quality
	}
}

func pickFactors(factors []Factor, keep func(Factor) bool, limit int) []Factor {
	picked := make([]Factor, 0, limit)
	for _, f := range factors {
		if keep(f) {
			picked = append(picked, f)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].Contribution != picked[j].Contribution {
			return picked[i].Contribution > picked[j].Contribution
		}
		return picked[i].ID < picked[j].ID
	})
	if len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}

func joinFactors(factors []Factor) string {
	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		parts = append(parts, fmt.Sprintf("%s (%.0f)", strings.ReplaceAll(f.ID, "_", " "), f.Contribution))
	}
	return strings.Join(parts, ", ")
}
