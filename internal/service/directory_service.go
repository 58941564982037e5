package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// IDirectoryService is the entity lookup used by the command resolver. The
// index is built from ingested signals, so an entity becomes findable as soon
// as one of its signals passes the vertical filter.
type IDirectoryService interface {
	Search(ctx context.Context, name string) (*scoring.EntityData, error)
	Discover(ctx context.Context, ws *store.Workspace) ([]*scoring.EntityData, error)
	Index(workspaceID string, sigs []signals.Instance)
}

type directoryService struct {
	// mu guards the indexed maps and their entity values. The consumer
	// goroutine writes through Index while Fiber handlers read through
	// Search/Discover; go-cache only synchronizes its bucket map.
	mu sync.RWMutex

	// workspaceID -> map[entityID]*scoring.EntityData
	cache *cache.Cache
}

func NewDirectoryService() IDirectoryService {
	return &directoryService{
		cache: cache.New(24*time.Hour, 30*time.Minute),
	}
}

// Index merges a batch of filtered signals into the workspace's entity index.
func (s *directoryService) Index(workspaceID string, sigs []signals.Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entities := s.entities(workspaceID)
	for _, sig := range sigs {
		e, ok := entities[sig.EntityID]
		if !ok {
			e = &scoring.EntityData{
				EntityID: sig.EntityID,
				Name:     sig.EntityName,
			}
			entities[sig.EntityID] = e
		}
		e.Signals = append(e.Signals, sig)
	}
	s.cache.Set(workspaceID, entities, cache.DefaultExpiration)
}

// Search returns a copy; scoring reassigns the entity's signal and pattern
// slices, which must never reach back into the index.
func (s *directoryService) Search(ctx context.Context, name string) (*scoring.EntityData, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.cache.Items() {
		entities, ok := item.Object.(map[string]*scoring.EntityData)
		if !ok {
			continue
		}
		for _, e := range entities {
			if strings.Contains(strings.ToLower(e.Name), needle) {
				return snapshotEntity(e), nil
			}
		}
	}
	return nil, nil
}

func (s *directoryService) Discover(ctx context.Context, ws *store.Workspace) ([]*scoring.EntityData, error) {
	s.mu.RLock()
	entities := s.entities(ws.ID)
	out := make([]*scoring.EntityData, 0, len(entities))
	for _, e := range entities {
		out = append(out, snapshotEntity(e))
	}
	s.mu.RUnlock()

	// Entities with more live signals first, name as tiebreaker.
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Signals) != len(out[j].Signals) {
			return len(out[i].Signals) > len(out[j].Signals)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// entities must be called with mu held.
func (s *directoryService) entities(workspaceID string) map[string]*scoring.EntityData {
	if x, found := s.cache.Get(workspaceID); found {
		if m, ok := x.(map[string]*scoring.EntityData); ok {
			return m
		}
	}
	return make(map[string]*scoring.EntityData)
}

func snapshotEntity(e *scoring.EntityData) *scoring.EntityData {
	c := *e
	c.Signals = append([]signals.Instance(nil), e.Signals...)
	c.Patterns = nil
	return &c
}
