package verticals

import (
	"context"
	"time"

	"sales-intel-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// Source is the boundary to the external configuration service.
// Implementations fetch one config per key; returning (nil, nil) means the
// key simply has no configuration yet.
type Source interface {
	Fetch(ctx context.Context, key Key) (*Config, error)
}

// Provider serves vertical configs with a read-through cache.
// A missing or failed fetch degrades to "not configured", never to an error:
// callers must treat the false return as "not yet configured".
type Provider struct {
	source Source
	cache  *cache.Cache
	logger logger.ILogger
}

func NewProvider(source Source, log logger.ILogger) *Provider {
	// Configs change rarely; a short TTL keeps admin edits visible without
	// hammering the config service.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &Provider{
		source: source,
		cache:  c,
		logger: log,
	}
}

// Get returns the config for the key and whether the key is configured.
func (p *Provider) Get(ctx context.Context, key Key) (*Config, bool) {
	if x, found := p.cache.Get(key.String()); found {
		return x.(*Config), true
	}

	cfg, err := p.source.Fetch(ctx, key)
	if err != nil {
		p.logger.Warn("Verticals", "Config fetch failed, treating as not configured", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})
		return nil, false
	}
	if cfg == nil {
		p.logger.Warn("Verticals", "No config for key", map[string]interface{}{
			"key": key.String(),
		})
		return nil, false
	}

	p.cache.Set(key.String(), cfg, cache.DefaultExpiration)
	return cfg, true
}

// Invalidate drops a cached config so the next Get refetches it.
func (p *Provider) Invalidate(key Key) {
	p.cache.Delete(key.String())
}
