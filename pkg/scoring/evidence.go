package scoring

import (
	"fmt"
	"sort"
	"time"

	"sales-intel-be/pkg/signals"
)

const maxSignalEvidence = 5

// buildEvidence surfaces the most relevant signal-derived evidence items,
// capped at 5, followed by enrichment and behavior summaries.
func buildEvidence(e *EntityData, now time.Time) []Evidence {
	items := signalEvidence(e.Signals, now)

	if e.Enrichment != nil {
		n := len(e.Enrichment.SourcesUsed)
		sentiment := SentimentNeutral
		if n >= 2 {
			sentiment = SentimentPositive
		}
		strength := float64(n) / 4
		if strength > 1 {
			strength = 1
		}
		items = append(items, Evidence{
			Text:      fmt.Sprintf("Profile corroborated by %d enrichment sources", n),
			Sentiment: sentiment,
			FactorIDs: []string{"enrichment_depth", "data_completeness"},
			Strength:  strength,
		})
	}

	if e.Behavior != nil {
		b := e.Behavior
		if b.RepliesReceived > 0 || b.MeetingsHeld > 0 {
			items = append(items, Evidence{
				Text:      fmt.Sprintf("%d replies and %d meetings across recent outreach", b.RepliesReceived, b.MeetingsHeld),
				Sentiment: SentimentPositive,
				FactorIDs: []string{"behavior_activity", "relationship_recency"},
				Strength:  0.8,
			})
		} else {
			items = append(items, Evidence{
				Text:      "No direct engagement recorded yet",
				Sentiment: SentimentNegative,
				FactorIDs: []string{"behavior_activity"},
				Strength:  0.3,
			})
		}
	}

	return items
}

func signalEvidence(sigs []signals.Instance, now time.Time) []Evidence {
	ranked := append([]signals.Instance(nil), sigs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		si := ranked[i].Confidence * ranked[i].Relevance
		sj := ranked[j].Confidence * ranked[j].Relevance
		if si != sj {
			return si > sj
		}
		return ranked[i].DetectedAt.After(ranked[j].DetectedAt)
	})
	if len(ranked) > maxSignalEvidence {
		ranked = ranked[:maxSignalEvidence]
	}

	items := make([]Evidence, 0, len(ranked))
	for _, sig := range ranked {
		name := sig.Kind
		sentiment := SentimentNeutral
		if def, ok := signals.LookupDefinition(sig.Kind); ok {
			name = def.DisplayName
			if def.BaseWeight < 0 {
				sentiment = SentimentNegative
			} else if def.BaseWeight >= 0.7 {
				sentiment = SentimentPositive
			}
		}
		ageDays := int(now.Sub(sig.DetectedAt).Hours() / 24)
		items = append(items, Evidence{
			Text:      fmt.Sprintf("%s detected %d days ago (confidence %.0f%%)", name, ageDays, sig.Confidence*100),
			Sentiment: sentiment,
			FactorIDs: []string{"intent_strength", "signal_recency"},
			Strength:  sig.Confidence,
		})
	}
	return items
}
