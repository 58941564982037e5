package verticals

import (
	"context"
	"errors"
	"testing"

	"sales-intel-be/internal/pkg/logger"
)

type countingSource struct {
	cfg     *Config
	err     error
	fetches int
}

func (s *countingSource) Fetch(_ context.Context, _ Key) (*Config, error) {
	s.fetches++
	return s.cfg, s.err
}

var bankingKey = Key{Vertical: "banking", SubVertical: "employee-banking", Region: "uae"}

func TestProviderCachesFetches(t *testing.T) {
	src := &countingSource{cfg: &Config{Vertical: "banking"}}
	p := NewProvider(src, logger.NewNop())

	for i := 0; i < 3; i++ {
		cfg, ok := p.Get(context.Background(), bankingKey)
		if !ok || cfg == nil {
			t.Fatalf("Get #%d = (%v, %v), want configured", i+1, cfg, ok)
		}
	}
	if src.fetches != 1 {
		t.Errorf("fetches = %d, want 1 with a warm cache", src.fetches)
	}
}

func TestProviderFetchErrorIsNotConfigured(t *testing.T) {
	src := &countingSource{err: errors.New("config service down")}
	p := NewProvider(src, logger.NewNop())

	if cfg, ok := p.Get(context.Background(), bankingKey); ok || cfg != nil {
		t.Errorf("Get = (%v, %v), want not configured on fetch error", cfg, ok)
	}

	// Errors are not cached; the next Get retries the source.
	p.Get(context.Background(), bankingKey)
	if src.fetches != 2 {
		t.Errorf("fetches = %d, want retry after error", src.fetches)
	}
}

func TestProviderMissingConfigIsNotConfigured(t *testing.T) {
	src := &countingSource{}
	p := NewProvider(src, logger.NewNop())

	if cfg, ok := p.Get(context.Background(), bankingKey); ok || cfg != nil {
		t.Errorf("Get = (%v, %v), want not configured for nil config", cfg, ok)
	}
}

func TestProviderInvalidate(t *testing.T) {
	src := &countingSource{cfg: &Config{Vertical: "banking"}}
	p := NewProvider(src, logger.NewNop())

	p.Get(context.Background(), bankingKey)
	p.Invalidate(bankingKey)
	p.Get(context.Background(), bankingKey)

	if src.fetches != 2 {
		t.Errorf("fetches = %d, want refetch after Invalidate", src.fetches)
	}
}

func TestProviderKeysAreIsolated(t *testing.T) {
	src := &countingSource{cfg: &Config{Vertical: "banking"}}
	p := NewProvider(src, logger.NewNop())

	p.Get(context.Background(), bankingKey)
	other := Key{Vertical: "banking", SubVertical: "sme-banking", Region: "uae"}
	p.Get(context.Background(), other)

	if src.fetches != 2 {
		t.Errorf("fetches = %d, want one per distinct key", src.fetches)
	}
}
