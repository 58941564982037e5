package signals

import "time"

// Contribution is a signal's computed share of the four score dimensions.
// Each value is clamped to [0, 100].
type Contribution struct {
	Quality    float64 `json:"quality"`
	Timing     float64 `json:"timing"`
	Likelihood float64 `json:"likelihood"`
	Engagement float64 `json:"engagement"`
}

// Instance is one detected occurrence of a signal kind for an entity.
// Instances are produced by the upstream detection subsystem and consumed
// read-only here; the filter fills in Contribution.
type Instance struct {
	Kind       string                 `json:"kind"`
	EntityID   string                 `json:"entity_id"`
	EntityName string                 `json:"entity_name"`
	Confidence float64                `json:"confidence"` // [0, 1]
	Relevance  float64                `json:"relevance"`  // [0, 1]
	DetectedAt time.Time              `json:"detected_at"`
	ExpiresAt  time.Time              `json:"expires_at"`
	Source     string                 `json:"source"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`

	Contribution Contribution `json:"contribution"`
}

// DaysSinceDetection measures signal age at the given reference time.
func (i Instance) DaysSinceDetection(now time.Time) float64 {
	return now.Sub(i.DetectedAt).Hours() / 24
}
