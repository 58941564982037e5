package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/cards"
	"sales-intel-be/pkg/patterns"
	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/store"
)

var resolverNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeDirectory struct {
	entities map[string]*scoring.EntityData
	discover []*scoring.EntityData
	err      error
}

func (f *fakeDirectory) Search(_ context.Context, name string) (*scoring.EntityData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entities[name], nil
}

func (f *fakeDirectory) Discover(_ context.Context, _ *store.Workspace) ([]*scoring.EntityData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.discover, nil
}

type fakeScorer struct {
	decision *scoring.Decision
	err      error
}

func (f *fakeScorer) Score(_ context.Context, _ *store.Workspace, entity *scoring.EntityData) (*scoring.Decision, error) {
	if f.err != nil {
		return nil, f.err
	}
	d := *f.decision
	d.EntityID = entity.EntityID
	d.EntityName = entity.Name
	return &d, nil
}

func hotDecision() *scoring.Decision {
	return &scoring.Decision{
		Score:     scoring.QTLEScore{Composite: 86},
		Grade:     scoring.GradeHot,
		Reasoning: []string{"Falcon Logistics graded hot with a composite score of 86."},
		Patterns: []patterns.Match{
			{Pattern: patterns.Definition{ID: "funded-growth", SuggestedAction: "Reach out about their expansion plans."}},
		},
	}
}

func newTestResolver(dir Directory, scorer Scorer) *Resolver {
	return NewResolver(dir, scorer, logger.NewNop()).WithClock(func() time.Time { return resolverNow })
}

func falcon() *scoring.EntityData {
	return &scoring.EntityData{EntityID: "ent-1", Name: "Falcon Logistics"}
}

func TestResolveCheckEntity(t *testing.T) {
	dir := &fakeDirectory{entities: map[string]*scoring.EntityData{"Falcon Logistics": falcon()}}
	r := newTestResolver(dir, &fakeScorer{decision: hotDecision()})
	ws := &store.Workspace{ID: "ws-1", Vertical: "banking"}
	feed := cards.NewStore()

	result := r.ResolveCommand(context.Background(), ws, feed, "check Falcon Logistics")

	if !result.Success || result.Err != nil {
		t.Fatalf("Success=%v Err=%v", result.Success, result.Err)
	}
	if len(result.Cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(result.Cards))
	}
	card := result.Cards[0]
	if card.Type != cards.TypeDecision {
		t.Errorf("card type = %s, want decision", card.Type)
	}
	if card.Priority != 86 {
		t.Errorf("card priority = %v, want composite 86", card.Priority)
	}
	if ws.LastEntityName != "Falcon Logistics" || ws.LastEntityID != "ent-1" {
		t.Errorf("workspace last entity = %q/%q", ws.LastEntityID, ws.LastEntityName)
	}
	if ws.LastQuery != "check Falcon Logistics" {
		t.Errorf("LastQuery = %q", ws.LastQuery)
	}
}

func TestResolveCheckEntityNotFound(t *testing.T) {
	r := newTestResolver(&fakeDirectory{entities: map[string]*scoring.EntityData{}}, &fakeScorer{decision: hotDecision()})
	ws := &store.Workspace{ID: "ws-1"}

	result := r.ResolveCommand(context.Background(), ws, cards.NewStore(), "check Ghost Corp")

	if result.Success {
		t.Error("Success = true for missing entity")
	}
	if result.Err == nil || result.Err.Code != "entity-not-found" {
		t.Fatalf("Err = %v, want entity-not-found", result.Err)
	}
	if len(result.Cards) != 0 {
		t.Errorf("cards = %d, want none on failure", len(result.Cards))
	}
}

func TestResolveCheckEntityLookupError(t *testing.T) {
	r := newTestResolver(&fakeDirectory{err: errors.New("upstream timeout")}, &fakeScorer{decision: hotDecision()})

	result := r.ResolveCommand(context.Background(), &store.Workspace{}, cards.NewStore(), "check Falcon Logistics")

	if result.Err == nil || result.Err.Code != "lookup-failed" {
		t.Fatalf("Err = %v, want lookup-failed", result.Err)
	}
}

func TestResolveNBAReusesActiveCard(t *testing.T) {
	r := newTestResolver(&fakeDirectory{}, &fakeScorer{decision: hotDecision()})
	feed := cards.NewStore()
	existing := cards.New(cards.TypeNextBestAction, "Call Falcon Logistics", "act", resolverNow)
	feed.Insert(existing)

	result := r.ResolveCommand(context.Background(), &store.Workspace{}, feed, "what's next")

	if !result.Success {
		t.Fatalf("Err = %v", result.Err)
	}
	if len(result.Cards) != 1 || result.Cards[0].ID != existing.ID {
		t.Errorf("cards = %v, want the existing NBA card returned unchanged", result.Cards)
	}
}

func TestResolveNBAFromLastEntity(t *testing.T) {
	dir := &fakeDirectory{entities: map[string]*scoring.EntityData{"Falcon Logistics": falcon()}}
	r := newTestResolver(dir, &fakeScorer{decision: hotDecision()})
	ws := &store.Workspace{LastEntityID: "ent-1", LastEntityName: "Falcon Logistics"}

	result := r.ResolveCommand(context.Background(), ws, cards.NewStore(), "what's next")

	if !result.Success {
		t.Fatalf("Err = %v", result.Err)
	}
	card := result.Cards[0]
	if card.Type != cards.TypeNextBestAction {
		t.Fatalf("card type = %s, want next-best-action", card.Type)
	}
	if card.Summary != "Reach out about their expansion plans." {
		t.Errorf("summary = %q, want the top pattern's suggested action", card.Summary)
	}
}

func TestResolveNBAWithoutHistory(t *testing.T) {
	r := newTestResolver(&fakeDirectory{}, &fakeScorer{decision: hotDecision()})

	result := r.ResolveCommand(context.Background(), &store.Workspace{}, cards.NewStore(), "what's next")

	if !result.Success {
		t.Fatalf("Err = %v", result.Err)
	}
	if len(result.Cards) != 1 || result.Cards[0].Type != cards.TypeContext {
		t.Errorf("cards = %v, want a single context card", result.Cards)
	}
}

func TestResolveFindLeads(t *testing.T) {
	dir := &fakeDirectory{discover: []*scoring.EntityData{
		falcon(),
		{EntityID: "ent-2", Name: "Crescent Trading"},
	}}
	r := newTestResolver(dir, &fakeScorer{decision: hotDecision()})

	result := r.ResolveCommand(context.Background(), &store.Workspace{}, cards.NewStore(), "find leads")

	if !result.Success {
		t.Fatalf("Err = %v", result.Err)
	}
	if len(result.Cards) != 1 {
		t.Fatalf("cards = %d, want one report card", len(result.Cards))
	}
	card := result.Cards[0]
	if card.Type != cards.TypeReport {
		t.Errorf("card type = %s, want report", card.Type)
	}
	if card.Content == nil || len(card.Content.Reasoning) != 2 {
		t.Errorf("report lines = %v, want one per lead", card.Content)
	}
}

func TestResolveStatusQuery(t *testing.T) {
	r := newTestResolver(&fakeDirectory{}, &fakeScorer{decision: hotDecision()})
	feed := cards.NewStore()
	feed.Insert(cards.New(cards.TypeSignal, "a", "", resolverNow))
	feed.Insert(cards.New(cards.TypeSignal, "b", "", resolverNow))
	feed.Insert(cards.New(cards.TypeDecision, "c", "", resolverNow))

	result := r.ResolveCommand(context.Background(), &store.Workspace{}, feed, "status")

	if !result.Success {
		t.Fatalf("Err = %v", result.Err)
	}
	card := result.Cards[0]
	if card.Summary != "3 cards in your feed." {
		t.Errorf("summary = %q", card.Summary)
	}
}

func TestResolveClearWorkspace(t *testing.T) {
	r := newTestResolver(&fakeDirectory{}, &fakeScorer{decision: hotDecision()})
	feed := cards.NewStore()
	feed.Insert(cards.New(cards.TypeSignal, "a", "", resolverNow))
	feed.Insert(cards.New(cards.TypeDecision, "b", "", resolverNow))

	result := r.ResolveCommand(context.Background(), &store.Workspace{}, feed, "clear workspace")

	if !result.Success {
		t.Fatalf("Err = %v", result.Err)
	}
	if feed.Len() != 0 {
		t.Errorf("feed Len = %d after clear, want 0", feed.Len())
	}
	if result.Cards[0].Summary != "Removed 2 cards from your feed." {
		t.Errorf("summary = %q", result.Cards[0].Summary)
	}
}

func TestResolveRecall(t *testing.T) {
	r := newTestResolver(&fakeDirectory{}, &fakeScorer{decision: hotDecision()})
	ws := &store.Workspace{LastEntityID: "ent-1", LastEntityName: "Falcon Logistics"}

	result := r.ResolveCommand(context.Background(), ws, cards.NewStore(), "remind me")

	if !result.Success {
		t.Fatalf("Err = %v", result.Err)
	}
	card := result.Cards[0]
	if card.Type != cards.TypeRecall || card.EntityName != "Falcon Logistics" {
		t.Errorf("card = %+v, want recall card for Falcon Logistics", card)
	}
}

func TestResolveUnknownDegrades(t *testing.T) {
	r := newTestResolver(&fakeDirectory{}, &fakeScorer{decision: hotDecision()})

	result := r.ResolveCommand(context.Background(), &store.Workspace{}, cards.NewStore(), "lorem ipsum dolor sit amet consectetur adipiscing")

	if !result.Success || result.Err != nil {
		t.Fatalf("unknown intent must degrade, got Err = %v", result.Err)
	}
	if len(result.Cards) != 1 || result.Cards[0].Type != cards.TypeContext {
		t.Errorf("cards = %v, want a single context card", result.Cards)
	}
}
