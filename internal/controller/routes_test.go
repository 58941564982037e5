package controller

import (
	"context"
	"testing"

	"sales-intel-be/internal/dto"
	"sales-intel-be/pkg/verticals"

	"github.com/gofiber/fiber/v2"
)

type stubSignalService struct{}

func (stubSignalService) Catalog() []dto.SignalDefinitionResponse { return nil }
func (stubSignalService) Filter(context.Context, *dto.FilterSignalsRequest) (*dto.FilterSignalsResponse, error) {
	return nil, nil
}
func (stubSignalService) Ingest(context.Context, *dto.IngestSignalsRequest) (*dto.IngestSignalsResponse, error) {
	return nil, nil
}

type stubVerticalService struct{}

func (stubVerticalService) Fetch(context.Context, verticals.Key) (*verticals.Config, error) {
	return nil, nil
}
func (stubVerticalService) Upsert(context.Context, verticals.Key, verticals.Config) error {
	return nil
}

func registeredPaths(app *fiber.App) map[string]bool {
	paths := make(map[string]bool)
	for _, r := range app.GetRoutes() {
		paths[r.Method+" "+r.Path] = true
	}
	return paths
}

func TestRoutePrefixes(t *testing.T) {
	app := fiber.New()
	NewSignalController(stubSignalService{}).RegisterRoutes(app)
	NewVerticalController(stubVerticalService{}).RegisterRoutes(app)

	paths := registeredPaths(app)
	want := []string{
		"GET /signals/v1/catalog",
		"POST /signals/v1/filter",
		"POST /signals/v1/ingest",
		"PUT /verticals/v1/config",
	}
	for _, w := range want {
		if !paths[w] {
			t.Errorf("route %q not registered", w)
		}
	}
}
