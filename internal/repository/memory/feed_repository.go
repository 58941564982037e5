package memory

import (
	"time"

	"sales-intel-be/pkg/cards"
	"sales-intel-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// FeedSession holds the workspace context and its live card feed.
type FeedSession struct {
	Workspace *store.Workspace
	Cards     *cards.Store
}

type FeedRepository struct {
	cache *cache.Cache
}

func NewFeedRepository(sessionTTL time.Duration) *FeedRepository {
	if sessionTTL <= 0 {
		sessionTTL = 1 * time.Hour
	}
	// Purge abandoned sessions every 10 minutes.
	c := cache.New(sessionTTL, 10*time.Minute)
	return &FeedRepository{
		cache: c,
	}
}

func (r *FeedRepository) Save(session *FeedSession) {
	r.cache.Set(session.Workspace.ID, session, cache.DefaultExpiration)
}

func (r *FeedRepository) Get(workspaceID string) (*FeedSession, bool) {
	if x, found := r.cache.Get(workspaceID); found {
		return x.(*FeedSession), true
	}
	return nil, false
}

func (r *FeedRepository) GetOrCreate(ws *store.Workspace) *FeedSession {
	if session, found := r.Get(ws.ID); found {
		return session
	}
	session := &FeedSession{
		Workspace: ws,
		Cards:     cards.NewStore(),
	}
	r.Save(session)
	return session
}

func (r *FeedRepository) Delete(workspaceID string) {
	r.cache.Delete(workspaceID)
}

// Sessions snapshots every live session, keyed by workspace ID.
func (r *FeedRepository) Sessions() map[string]*FeedSession {
	out := make(map[string]*FeedSession)
	for id, item := range r.cache.Items() {
		if session, ok := item.Object.(*FeedSession); ok {
			out[id] = session
		}
	}
	return out
}
