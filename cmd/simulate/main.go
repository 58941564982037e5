package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/patterns"
	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/verticals"

	"github.com/fatih/color"
)

// staticSource serves one hand-built vertical config, so the pipeline can be
// exercised without a database.
type staticSource struct {
	cfg verticals.Config
}

func (s staticSource) Fetch(ctx context.Context, key verticals.Key) (*verticals.Config, error) {
	c := s.cfg
	return &c, nil
}

func demoConfig() verticals.Config {
	return verticals.Config{
		AllowedKinds: []string{"hiring-expansion", "office-opening", "funding-round", "market-entry", "contract-award"},
		RelevantKinds: map[string][]string{
			"employee-banking": {"hiring-expansion", "funding-round", "market-entry"},
		},
		TimingRules: map[string]verticals.TimingRule{
			"hiring-expansion": {Weight: 0.9, ActionableWindowDays: 30},
			"office-opening":   {Weight: 0.8, ActionableWindowDays: 45},
			"funding-round":    {Weight: 0.85, ActionableWindowDays: 60},
			"market-entry":     {Weight: 0.8, ActionableWindowDays: 45},
			"contract-award":   {Weight: 0.7, ActionableWindowDays: 40},
		},
	}
}

func demoSignals(now time.Time) map[string][]signals.Instance {
	mk := func(kind, id, name string, conf, rel float64, ageDays int) signals.Instance {
		return signals.Instance{
			Kind:       kind,
			EntityID:   id,
			EntityName: name,
			Confidence: conf,
			Relevance:  rel,
			DetectedAt: now.AddDate(0, 0, -ageDays),
			Source:     "simulator",
		}
	}
	return map[string][]signals.Instance{
		"Falcon Logistics": {
			mk("funding-round", "ent-001", "Falcon Logistics", 0.9, 0.85, 3),
			mk("hiring-expansion", "ent-001", "Falcon Logistics", 0.85, 0.8, 5),
			mk("office-opening", "ent-001", "Falcon Logistics", 0.8, 0.7, 10),
		},
		"Crescent Trading": {
			mk("market-entry", "ent-002", "Crescent Trading", 0.75, 0.7, 12),
			mk("hiring-expansion", "ent-002", "Crescent Trading", 0.7, 0.65, 20),
		},
		"Oasis Retail": {
			mk("contract-award", "ent-003", "Oasis Retail", 0.6, 0.5, 35),
		},
	}
}

func gradeColor(grade scoring.Grade) *color.Color {
	switch grade {
	case scoring.GradeHot:
		return color.New(color.FgRed, color.Bold)
	case scoring.GradeWarm:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func main() {
	ctx := context.Background()
	now := time.Now()
	log := logger.NewNop()

	key := verticals.Key{Vertical: "banking", SubVertical: "employee-banking", Region: "uae"}
	provider := verticals.NewProvider(staticSource{cfg: demoConfig()}, log)
	filter := signals.NewFilter(provider, log)
	matcher := patterns.NewMatcher(patterns.DefaultPatterns)

	cfg, _ := provider.Get(ctx, key)
	engine := scoring.NewEngine(cfg, key.SubVertical, log)

	header := color.New(color.FgGreen, color.Bold)
	header.Printf("Discovery report: %s\n", key.String())
	fmt.Println()

	demo := demoSignals(now)
	names := make([]string, 0, len(demo))
	for name := range demo {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sigs := demo[name]
		result := filter.FilterSignals(ctx, key, sigs, signals.Thresholds{})
		if len(result.Signals) == 0 {
			color.New(color.Faint).Printf("%-20s no signals survived the filter\n\n", name)
			continue
		}

		entity := &scoring.EntityData{
			EntityID: result.Signals[0].EntityID,
			Name:     name,
			Signals:  result.Signals,
			Patterns: matcher.Match(result.Signals),
		}
		decision := engine.CalculateScore(entity)

		gradeColor(decision.Grade).Printf("%-20s %5.1f  %s\n", name, decision.Score.Composite, decision.Grade)
		fmt.Printf("  Q %5.1f  T %5.1f  L %5.1f  E %5.1f\n",
			decision.Score.Quality, decision.Score.Timing, decision.Score.Likelihood, decision.Score.Engagement)
		for _, m := range entity.Patterns {
			color.New(color.FgMagenta).Printf("  pattern: %s -> %s\n", m.Pattern.Name, m.Pattern.SuggestedAction)
		}
		for _, line := range decision.Reasoning {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
	}
}
