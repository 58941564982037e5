package scoring

import (
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/verticals"

	"github.com/google/uuid"
)

// DimensionWeights are the composite weights for the four dimensions.
// They are expected to sum to 1; the engine normalizes regardless.
type DimensionWeights struct {
	Quality    float64
	Timing     float64
	Likelihood float64
	Engagement float64
}

// DefaultDimensionWeights per product default: timing leads.
var DefaultDimensionWeights = DimensionWeights{
	Quality:    0.25,
	Timing:     0.30,
	Likelihood: 0.25,
	Engagement: 0.20,
}

// GradeThresholds classify the composite score.
type GradeThresholds struct {
	Hot  float64
	Warm float64
}

var DefaultGradeThresholds = GradeThresholds{Hot: 80, Warm: 50}

// Engine scores entities for one vertical/sub-vertical, bound at
// construction. Pure computation over immutable inputs; safe to call
// concurrently for different entities.
type Engine struct {
	cfg         *verticals.Config
	subVertical string
	registry    []FactorDefinition
	weights     DimensionWeights
	thresholds  GradeThresholds
	logger      logger.ILogger
	now         func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

func WithDimensionWeights(w DimensionWeights) Option {
	return func(e *Engine) { e.weights = w }
}

func WithGradeThresholds(t GradeThresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithRegistry(registry []FactorDefinition) Option {
	return func(e *Engine) { e.registry = registry }
}

func NewEngine(cfg *verticals.Config, subVertical string, log logger.ILogger, opts ...Option) *Engine {
	e := &Engine{
		cfg:         cfg,
		subVertical: subVertical,
		registry:    Registry,
		weights:     DefaultDimensionWeights,
		thresholds:  DefaultGradeThresholds,
		logger:      log,
		now:         time.Now,
	}
	if e.cfg == nil {
		e.cfg = &verticals.Config{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateScore evaluates the factor registry against the entity and
// produces an explainable Decision. Deterministic for identical input.
func (e *Engine) CalculateScore(entity *EntityData) *Decision {
	now := e.now()

	// Explicit zero-signal baseline. Distinct from the neutral-50 rule used
	// for individual entity-attribute factors: no signals means no
	// opportunity, not an average one.
	if len(entity.Signals) == 0 {
		return &Decision{
			ID:          uuid.New(),
			EntityID:    entity.EntityID,
			EntityName:  entity.Name,
			Vertical:    e.cfg.Vertical,
			SubVertical: e.subVertical,
			Score:       QTLEScore{},
			Grade:       GradeCold,
			Reasoning: []string{
				entity.Name + " graded cold with a composite score of 0.",
				"No active signals detected; scored at the zero-signal baseline.",
			},
			SignalCount: 0,
			GeneratedAt: now,
		}
	}

	factors := e.evaluateFactors(entity, now)

	score := QTLEScore{
		Quality:    e.dimensionScore(factors, DimensionQuality),
		Timing:     e.dimensionScore(factors, DimensionTiming),
		Likelihood: e.dimensionScore(factors, DimensionLikelihood),
		Engagement: e.dimensionScore(factors, DimensionEngagement),
	}
	score.Composite = e.composite(score)

	grade := e.grade(score.Composite)
	evidence := buildEvidence(entity, now)
	reasoning := buildReasoning(entity, score, grade, factors)

	decision := &Decision{
		ID:          uuid.New(),
		EntityID:    entity.EntityID,
		EntityName:  entity.Name,
		Vertical:    e.cfg.Vertical,
		SubVertical: e.subVertical,
		Score:       score,
		Grade:       grade,
		Factors:     factors,
		Evidence:    evidence,
		Reasoning:   reasoning,
		Confidence:  confidence(factors, evidence),
		SignalCount: len(entity.Signals),
		Patterns:    entity.Patterns,
		GeneratedAt: now,
	}

	e.logger.Debug("Scoring", "Calculated score", map[string]interface{}{
		"entity":    entity.Name,
		"composite": score.Composite,
		"grade":     string(grade),
	})

	return decision
}

func (e *Engine) evaluateFactors(entity *EntityData, now time.Time) []Factor {
	factors := make([]Factor, 0, len(e.registry))
	for _, def := range e.registry {
		contribution := neutralContribution
		if def.Evaluate != nil {
			if v, ok := def.Evaluate(entity, now); ok {
				contribution = clampScore(v)
			}
		}

		weight := def.BaseWeight * e.cfg.MultiplierFor(def.ID, e.subVertical)
		if weight < 0 {
			weight = 0
		}
		if weight > 1 {
			weight = 1
		}

		factors = append(factors, Factor{
			ID:           def.ID,
			Dimension:    def.Dimension,
			Contribution: contribution,
			Weight:       weight,
			Description:  def.Description,
			Source:       def.Source,
		})
	}
	return factors
}

// dimensionScore is the weighted average of the dimension's factors.
// A dimension with no contributing factors defaults to 50.
func (e *Engine) dimensionScore(factors []Factor, dim Dimension) float64 {
	var weightedSum, weightSum float64
	for _, f := range factors {
		if f.Dimension != dim {
			continue
		}
		weightedSum += f.Contribution * f.Weight
		weightSum += f.Weight
	}
	if weightSum == 0 {
		return neutralContribution
	}
	return clampScore(weightedSum / weightSum)
}

func (e *Engine) composite(s QTLEScore) float64 {
	w := e.weights
	total := w.Quality + w.Timing + w.Likelihood + w.Engagement
	if total == 0 {
		return 0
	}
	sum := s.Quality*w.Quality + s.Timing*w.Timing + s.Likelihood*w.Likelihood + s.Engagement*w.Engagement
	return clampScore(sum / total)
}

func (e *Engine) grade(composite float64) Grade {
	switch {
	case composite >= e.thresholds.Hot:
		return GradeHot
	case composite >= e.thresholds.Warm:
		return GradeWarm
	default:
		return GradeCold
	}
}

// confidence is informational only; it never gates scoring.
func confidence(factors []Factor, evidence []Evidence) float64 {
	var weightSum float64
	for _, f := range factors {
		weightSum += f.Weight
	}
	avgWeight := 0.0
	if len(factors) > 0 {
		avgWeight = weightSum / float64(len(factors))
	}

	var strengthSum float64
	for _, ev := range evidence {
		strengthSum += ev.Strength
	}
	avgStrength := 0.0
	if len(evidence) > 0 {
		avgStrength = strengthSum / float64(len(evidence))
	}

	return 0.5*avgWeight + 0.5*avgStrength
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
