package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/cards"
	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/store"
)

// Directory is the boundary to entity search/enrichment. Lookups are
// network-bound; an abandoned resolution is simply discarded by the caller.
type Directory interface {
	Search(ctx context.Context, name string) (*scoring.EntityData, error)
	Discover(ctx context.Context, ws *store.Workspace) ([]*scoring.EntityData, error)
}

// Scorer scores an entity inside the workspace's vertical scope.
type Scorer interface {
	Score(ctx context.Context, ws *store.Workspace, entity *scoring.EntityData) (*scoring.Decision, error)
}

// ResolutionError is the structured failure a caller turns into exactly one
// system card.
type ResolutionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ResolutionError) Error() string {
	return e.Code + ": " + e.Message
}

// Result is what a resolved command produced. No partial cards are ever
// emitted before resolution completes: the whole slice arrives at once.
type Result struct {
	Success        bool             `json:"success"`
	Classification Classification   `json:"classification"`
	Cards          []cards.Card     `json:"cards"`
	Err            *ResolutionError `json:"error,omitempty"`
}

// Resolver turns free-text queries into cards, consulting the score engine
// and entity directory as needed.
type Resolver struct {
	directory Directory
	scorer    Scorer
	logger    logger.ILogger
	now       func() time.Time
}

func NewResolver(directory Directory, scorer Scorer, log logger.ILogger) *Resolver {
	return &Resolver{
		directory: directory,
		scorer:    scorer,
		logger:    log,
		now:       time.Now,
	}
}

// WithClock overrides the resolver's clock. Intended for tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// ResolveCommand classifies the query and resolves it against the current
// workspace and feed. Unknown or low-confidence intents degrade to a
// generic card.
func (r *Resolver) ResolveCommand(ctx context.Context, ws *store.Workspace, feed *cards.Store, query string) Result {
	classification := ClassifyIntent(query)
	ws.LastQuery = query

	r.logger.Info("Command", "Resolved intent", map[string]interface{}{
		"intent":     string(classification.Intent),
		"confidence": classification.Confidence,
	})

	switch classification.Intent {
	case IntentCheckEntity:
		return r.checkEntity(ctx, ws, classification)
	case IntentFindLeads:
		return r.findLeads(ctx, ws, classification)
	case IntentRecall:
		return r.recall(ws, classification)
	case IntentPreference:
		return r.ack(classification, "Preference noted", "Your feed preferences were updated.")
	case IntentNBARequest:
		return r.nbaRequest(ctx, ws, feed, classification)
	case IntentStatusQuery:
		return r.statusQuery(feed, classification)
	case IntentClearWorkspace:
		cleared := feed.Clear()
		return r.ack(classification, "Workspace cleared",
			fmt.Sprintf("Removed %d cards from your feed.", cleared))
	case IntentHelp:
		return r.help(classification)
	default:
		// Advisory classification: degrade, never throw.
		return r.ack(classification, "Not sure what you meant",
			fmt.Sprintf("Couldn't map %q to an action. Try \"check <company>\" or \"find leads\".", query))
	}
}

func (r *Resolver) checkEntity(ctx context.Context, ws *store.Workspace, cls Classification) Result {
	entity, err := r.directory.Search(ctx, cls.EntityName)
	if err != nil {
		return r.fail(cls, "lookup-failed", fmt.Sprintf("Could not look up %q: %v", cls.EntityName, err))
	}
	if entity == nil {
		return r.fail(cls, "entity-not-found", fmt.Sprintf("No entity found matching %q.", cls.EntityName))
	}

	decision, err := r.scorer.Score(ctx, ws, entity)
	if err != nil {
		return r.fail(cls, "scoring-failed", fmt.Sprintf("Could not score %q: %v", entity.Name, err))
	}

	ws.LastEntityID = entity.EntityID
	ws.LastEntityName = entity.Name

	card := cards.New(cards.TypeDecision,
		fmt.Sprintf("%s: %s (%.0f)", entity.Name, decision.Grade, decision.Score.Composite),
		firstLine(decision.Reasoning),
		r.now())
	card.EntityID = entity.EntityID
	card.EntityName = entity.Name
	card.Priority = decision.Score.Composite
	card.Content = &cards.Expanded{
		Reasoning:  decision.Reasoning,
		Confidence: decision.Confidence,
		Tags:       []string{string(decision.Grade), decision.Vertical},
	}

	return Result{Success: true, Classification: cls, Cards: []cards.Card{card}}
}

func (r *Resolver) findLeads(ctx context.Context, ws *store.Workspace, cls Classification) Result {
	entities, err := r.directory.Discover(ctx, ws)
	if err != nil {
		return r.fail(cls, "discovery-failed", fmt.Sprintf("Lead discovery failed: %v", err))
	}
	if len(entities) == 0 {
		return r.ack(cls, "No leads found", "Discovery returned no companies for your vertical right now.")
	}

	type lead struct {
		name  string
		score float64
		grade scoring.Grade
	}
	leads := make([]lead, 0, len(entities))
	var out []cards.Card
	for _, entity := range entities {
		decision, err := r.scorer.Score(ctx, ws, entity)
		if err != nil {
			continue
		}
		leads = append(leads, lead{name: entity.Name, score: decision.Score.Composite, grade: decision.Grade})
	}
	if len(leads) == 0 {
		return r.fail(cls, "scoring-failed", "None of the discovered leads could be scored.")
	}

	lines := make([]string, 0, len(leads))
	for i, l := range leads {
		lines = append(lines, fmt.Sprintf("%d. %s: %s (%.0f)", i+1, l.name, l.grade, l.score))
	}

	card := cards.New(cards.TypeReport,
		fmt.Sprintf("%d leads discovered", len(leads)),
		lines[0],
		r.now())
	card.Content = &cards.Expanded{Reasoning: lines, Tags: []string{"discovery"}}
	card.Priority = leads[0].score
	out = append(out, card)

	return Result{Success: true, Classification: cls, Cards: out}
}

func (r *Resolver) recall(ws *store.Workspace, cls Classification) Result {
	if ws.LastEntityName == "" {
		return r.ack(cls, "Nothing to recall", "You haven't looked at any entity in this session yet.")
	}
	card := cards.New(cards.TypeRecall,
		"Previously: "+ws.LastEntityName,
		fmt.Sprintf("You last checked %s. Ask \"check %s\" for a fresh score.", ws.LastEntityName, ws.LastEntityName),
		r.now())
	card.EntityID = ws.LastEntityID
	card.EntityName = ws.LastEntityName
	return Result{Success: true, Classification: cls, Cards: []cards.Card{card}}
}

func (r *Resolver) nbaRequest(ctx context.Context, ws *store.Workspace, feed *cards.Store, cls Classification) Result {
	if current, ok := feed.ActiveNBA(); ok {
		// Surface the existing recommendation instead of minting a duplicate.
		return Result{Success: true, Classification: cls, Cards: []cards.Card{current}}
	}
	if ws.LastEntityID == "" {
		return r.ack(cls, "No recommendation yet",
			"Check an entity or ingest signals first, then ask again.")
	}

	entity, err := r.directory.Search(ctx, ws.LastEntityName)
	if err != nil || entity == nil {
		return r.fail(cls, "lookup-failed", fmt.Sprintf("Could not refresh %q for a recommendation.", ws.LastEntityName))
	}
	decision, err := r.scorer.Score(ctx, ws, entity)
	if err != nil {
		return r.fail(cls, "scoring-failed", fmt.Sprintf("Could not score %q: %v", entity.Name, err))
	}

	action := "Review the latest signals and reach out."
	if len(decision.Patterns) > 0 {
		action = decision.Patterns[0].Pattern.SuggestedAction
	}
	card := cards.New(cards.TypeNextBestAction, "Next best action: "+entity.Name, action, r.now())
	card.EntityID = entity.EntityID
	card.EntityName = entity.Name
	card.Priority = decision.Score.Composite
	card.Content = &cards.Expanded{
		Reasoning:  decision.Reasoning,
		Confidence: decision.Confidence,
		Tags:       []string{string(decision.Grade)},
	}
	return Result{Success: true, Classification: cls, Cards: []cards.Card{card}}
}

func (r *Resolver) statusQuery(feed *cards.Store, cls Classification) Result {
	all := feed.List(nil)
	counts := make(map[cards.Type]int)
	for _, c := range all {
		counts[c.Type]++
	}
	lines := []string{fmt.Sprintf("%d cards in your feed.", len(all))}
	for _, t := range []cards.Type{cards.TypeNextBestAction, cards.TypeDecision, cards.TypeSignal, cards.TypeReport} {
		if counts[t] > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", t, counts[t]))
		}
	}
	card := cards.New(cards.TypeReport, "Workspace status", lines[0], r.now())
	card.Content = &cards.Expanded{Reasoning: lines, Tags: []string{"status"}}
	return Result{Success: true, Classification: cls, Cards: []cards.Card{card}}
}

func (r *Resolver) help(cls Classification) Result {
	card := cards.New(cards.TypeContext, "What you can ask",
		"Try: \"check <company>\", \"find leads\", \"what's next\", \"status\", or \"clear workspace\".",
		r.now())
	return Result{Success: true, Classification: cls, Cards: []cards.Card{card}}
}

// ack produces a single informational card; the command succeeded even if
// there was nothing substantive to do.
func (r *Resolver) ack(cls Classification, title, summary string) Result {
	card := cards.New(cards.TypeContext, title, summary, r.now())
	return Result{Success: true, Classification: cls, Cards: []cards.Card{card}}
}

// fail returns the structured error. The caller surfaces it as exactly one
// system card; the original query is discarded, never retried automatically.
func (r *Resolver) fail(cls Classification, code, message string) Result {
	r.logger.Warn("Command", "Resolution failed", map[string]interface{}{
		"intent": string(cls.Intent),
		"code":   code,
	})
	return Result{
		Success:        false,
		Classification: cls,
		Err:            &ResolutionError{Code: code, Message: message},
	}
}

func firstLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[0])
}
