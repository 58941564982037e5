package scoring

import (
	"time"

	"sales-intel-be/pkg/patterns"
	"sales-intel-be/pkg/signals"

	"github.com/google/uuid"
)

// Dimension is one of the four QTLE score dimensions.
type Dimension string

const (
	DimensionQuality    Dimension = "quality"
	DimensionTiming     Dimension = "timing"
	DimensionLikelihood Dimension = "likelihood"
	DimensionEngagement Dimension = "engagement"
)

// Grade classifies a composite score.
type Grade string

const (
	GradeHot  Grade = "hot"
	GradeWarm Grade = "warm"
	GradeCold Grade = "cold"
)

// QTLEScore holds the four dimension scores and their weighted composite,
// all in [0, 100]. Derived on demand, never mutated in place.
type QTLEScore struct {
	Quality    float64 `json:"quality"`
	Timing     float64 `json:"timing"`
	Likelihood float64 `json:"likelihood"`
	Engagement float64 `json:"engagement"`
	Composite  float64 `json:"composite"`
}

// Factor is one evaluated contributor to a dimension. Computed fresh per
// scoring call.
type Factor struct {
	ID           string    `json:"id"`
	Dimension    Dimension `json:"dimension"`
	Contribution float64   `json:"contribution"` // [0, 100]
	Weight       float64   `json:"weight"`       // [0, 1], vertical-adjusted
	Description  string    `json:"description"`
	Source       string    `json:"source"`
}

// Sentiment tags an evidence item.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Evidence is one human-readable justification item linked to the factors it
// supports.
type Evidence struct {
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
	FactorIDs []string  `json:"factor_ids"`
	Strength  float64   `json:"strength"` // [0, 1]
}

// Decision wraps a score with everything that justified it. Read-only once
// produced; consumed exactly once by the card lifecycle engine.
type Decision struct {
	ID          uuid.UUID `json:"id"`
	EntityID    string    `json:"entity_id"`
	EntityName  string    `json:"entity_name"`
	Vertical    string    `json:"vertical"`
	SubVertical string    `json:"sub_vertical"`

	Score      QTLEScore  `json:"score"`
	Grade      Grade      `json:"grade"`
	Factors    []Factor   `json:"factors"`
	Evidence   []Evidence `json:"evidence"`
	Reasoning  []string   `json:"reasoning"`
	Confidence float64    `json:"confidence"` // informational only

	SignalCount int              `json:"signal_count"`
	Patterns    []patterns.Match `json:"patterns,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// EnrichmentSummary is what the external enrichment subsystem reported about
// an entity. Consumed read-only here.
type EnrichmentSummary struct {
	SourcesUsed    []string  `json:"sources_used"`
	Summary        string    `json:"summary"`
	LastEnrichedAt time.Time `json:"last_enriched_at"`
}

// BehaviorSummary aggregates observed outreach behavior for an entity.
type BehaviorSummary struct {
	EmailOpens      int       `json:"email_opens"`
	RepliesReceived int       `json:"replies_received"`
	MeetingsHeld    int       `json:"meetings_held"`
	LastInteraction time.Time `json:"last_interaction"`
}

// EntityData is the scoring input: one prospect already scoped to a
// vertical/sub-vertical, with its filtered signals and matched patterns.
type EntityData struct {
	EntityID  string `json:"entity_id"`
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Headcount int    `json:"headcount"`
	Size      string `json:"size"`
	City      string `json:"city"`
	Website   string `json:"website"`

	Signals    []signals.Instance `json:"signals"`
	Patterns   []patterns.Match   `json:"patterns,omitempty"`
	Enrichment *EnrichmentSummary `json:"enrichment,omitempty"`
	Behavior   *BehaviorSummary   `json:"behavior,omitempty"`
}
