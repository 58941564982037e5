package signals

import (
	"context"
	"sort"
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/verticals"
)

// Thresholds are optional caller-supplied filters applied after the
// vertical allowlist. Zero values mean "no constraint".
type Thresholds struct {
	MinConfidence float64
	MinRelevance  float64

	// PriorityKinds restricts results to the given kinds when non-empty.
	PriorityKinds []string

	DetectedAfter  time.Time
	DetectedBefore time.Time
}

// FilterResult distinguishes "vertical not configured" from "configured but
// nothing matched". Callers must branch on Configured before reading Signals.
type FilterResult struct {
	Configured bool
	Signals    []Instance
}

// Filter scopes raw signal instances to a vertical and computes each
// survivor's QTLE contribution. Stateless apart from config lookup; safe for
// concurrent use.
type Filter struct {
	provider *verticals.Provider
	logger   logger.ILogger
	now      func() time.Time
}

func NewFilter(provider *verticals.Provider, log logger.ILogger) *Filter {
	return &Filter{
		provider: provider,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock overrides the filter's clock. Intended for tests.
func (f *Filter) WithClock(now func() time.Time) *Filter {
	f.now = now
	return f
}

// FilterSignals drops signals outside the vertical's allowlist, applies the
// caller thresholds, orders survivors by configured priority weight then
// detection recency, and computes their QTLE contributions.
func (f *Filter) FilterSignals(ctx context.Context, key verticals.Key, sigs []Instance, th Thresholds) FilterResult {
	cfg, ok := f.provider.Get(ctx, key)
	if !ok {
		// Empty allowed set, not an error: the vertical is not configured yet.
		f.logger.Warn("Signals", "Vertical not configured, returning empty set", map[string]interface{}{
			"vertical":     key.Vertical,
			"sub_vertical": key.SubVertical,
			"region":       key.Region,
		})
		return FilterResult{Configured: false}
	}

	now := f.now()
	out := make([]Instance, 0, len(sigs))
	for _, sig := range sigs {
		// Hard governance denylist: out-of-domain kinds never pass, no matter
		// how strong the signal is.
		if !cfg.AllowsKind(sig.Kind) {
			continue
		}
		if !f.passesThresholds(sig, th) {
			continue
		}
		sig.Contribution = computeContribution(cfg, sig, now)
		out = append(out, sig)
	}

	sort.SliceStable(out, func(i, j int) bool {
		wi := cfg.RuleFor(out[i].Kind).Weight
		wj := cfg.RuleFor(out[j].Kind).Weight
		if wi != wj {
			return wi > wj
		}
		return out[i].DetectedAt.After(out[j].DetectedAt)
	})

	f.logger.Debug("Signals", "Filtered signal batch", map[string]interface{}{
		"vertical": key.Vertical,
		"in":       len(sigs),
		"out":      len(out),
	})

	return FilterResult{Configured: true, Signals: out}
}

func (f *Filter) passesThresholds(sig Instance, th Thresholds) bool {
	if th.MinConfidence > 0 && sig.Confidence < th.MinConfidence {
		return false
	}
	if th.MinRelevance > 0 && sig.Relevance < th.MinRelevance {
		return false
	}
	if len(th.PriorityKinds) > 0 {
		found := false
		for _, k := range th.PriorityKinds {
			if k == sig.Kind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !th.DetectedAfter.IsZero() && sig.DetectedAt.Before(th.DetectedAfter) {
		return false
	}
	if !th.DetectedBefore.IsZero() && sig.DetectedAt.After(th.DetectedBefore) {
		return false
	}
	return true
}

// computeContribution applies the fixed QTLE formulas. Window length and
// weight come from the vertical's timing rule table.
func computeContribution(cfg *verticals.Config, sig Instance, now time.Time) Contribution {
	rule := cfg.RuleFor(sig.Kind)

	ageDays := sig.DaysSinceDetection(now)
	window := float64(rule.ActionableWindowDays)
	timing := 0.0
	if window > 0 {
		timing = 1 - ageDays/window
		if timing < 0 {
			timing = 0
		}
	}

	return Contribution{
		Quality:    clamp100(sig.Confidence * rule.Weight * 100),
		Timing:     clamp100(timing * 100),
		Likelihood: clamp100(sig.Relevance * rule.Weight * 100),
		Engagement: clamp100(rule.Weight * 50),
	}
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
