package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/patterns"
	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/store"
	"sales-intel-be/pkg/verticals"

	"github.com/google/uuid"
)

// maxReportSignals caps how many ranked signals a discovery report entry
// lists per entity.
const maxReportSignals = 5

type IScoringService interface {
	// Score runs the full pipeline for one entity inside the workspace's
	// vertical scope. It satisfies the command resolver's scorer contract.
	Score(ctx context.Context, ws *store.Workspace, entityData *scoring.EntityData) (*scoring.Decision, error)
	ScoreEntity(ctx context.Context, req *dto.ScoreEntityRequest) (*dto.ScoreEntityResponse, error)
	History(ctx context.Context, entityID string, limit int) ([]*dto.DecisionRecordResponse, error)
	DiscoveryReport(ctx context.Context, ws *store.Workspace) (*dto.DiscoveryReportResponse, error)
}

type scoringService struct {
	provider   *verticals.Provider
	matcher    *patterns.Matcher
	filter     *signals.Filter
	directory  IDirectoryService
	feedRepo   *memory.FeedRepository
	uowFactory unitofwork.RepositoryFactory
	thresholds scoring.GradeThresholds
	logger     logger.ILogger
}

func NewScoringService(
	provider *verticals.Provider,
	matcher *patterns.Matcher,
	filter *signals.Filter,
	directory IDirectoryService,
	feedRepo *memory.FeedRepository,
	uowFactory unitofwork.RepositoryFactory,
	thresholds scoring.GradeThresholds,
	log logger.ILogger,
) IScoringService {
	return &scoringService{
		provider:   provider,
		matcher:    matcher,
		filter:     filter,
		directory:  directory,
		feedRepo:   feedRepo,
		uowFactory: uowFactory,
		thresholds: thresholds,
		logger:     log,
	}
}

// ScoreEntity scores one entity supplied directly over HTTP, outside of the
// ingestion pipeline.
func (s *scoringService) ScoreEntity(ctx context.Context, req *dto.ScoreEntityRequest) (*dto.ScoreEntityResponse, error) {
	session, found := s.feedRepo.Get(req.WorkspaceID)
	if !found {
		return nil, ErrWorkspaceNotFound
	}

	sigs := make([]signals.Instance, len(req.Signals))
	for i, d := range req.Signals {
		sigs[i] = d.ToInstance()
	}

	entityData := &scoring.EntityData{
		EntityID:   req.EntityID,
		Name:       req.EntityName,
		Industry:   req.Industry,
		Headcount:  req.Headcount,
		Size:       req.Size,
		City:       req.City,
		Website:    req.Website,
		Signals:    sigs,
		Enrichment: req.Enrichment,
		Behavior:   req.Behavior,
	}

	decision, err := s.Score(ctx, session.Workspace, entityData)
	if err != nil {
		return nil, err
	}

	session.Workspace.LastEntityID = decision.EntityID
	session.Workspace.LastEntityName = decision.EntityName
	s.feedRepo.Save(session)

	return &dto.ScoreEntityResponse{Decision: *decision}, nil
}

func (s *scoringService) Score(ctx context.Context, ws *store.Workspace, entityData *scoring.EntityData) (*scoring.Decision, error) {
	key := verticals.Key{Vertical: ws.Vertical, SubVertical: ws.SubVertical, Region: ws.Region}

	cfg, ok := s.provider.Get(ctx, key)
	if !ok {
		return nil, fmt.Errorf("no vertical configuration for %s", key.String())
	}

	// Re-filter so stale or off-vertical signals never reach the engine.
	result := s.filter.FilterSignals(ctx, key, entityData.Signals, signals.Thresholds{})
	entityData.Signals = result.Signals
	entityData.Patterns = s.matcher.Match(entityData.Signals)

	engine := scoring.NewEngine(cfg, ws.SubVertical, s.logger, scoring.WithGradeThresholds(s.thresholds))
	decision := engine.CalculateScore(entityData)
	decision.Vertical = ws.Vertical
	decision.SubVertical = ws.SubVertical

	if err := s.persist(ctx, ws, decision); err != nil {
		// The decision is still usable; the audit trail is best effort.
		s.logger.Warn("ScoringService", "failed to persist decision record", map[string]interface{}{
			"entity_id": decision.EntityID,
			"error":     err.Error(),
		})
	}

	return decision, nil
}

func (s *scoringService) persist(ctx context.Context, ws *store.Workspace, decision *scoring.Decision) error {
	userID, err := uuid.Parse(ws.UserID)
	if err != nil {
		userID = uuid.Nil
	}

	record := entity.DecisionRecord{
		Id:          decision.ID,
		UserId:      userID,
		WorkspaceId: ws.ID,
		EntityId:    decision.EntityID,
		EntityName:  decision.EntityName,
		Vertical:    decision.Vertical,
		SubVertical: decision.SubVertical,
		Composite:   decision.Score.Composite,
		Grade:       string(decision.Grade),
		SignalCount: decision.SignalCount,
		Decision:    *decision,
		CreatedAt:   decision.GeneratedAt,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DecisionRepository().Create(ctx, &record)
}

func (s *scoringService) History(ctx context.Context, entityID string, limit int) ([]*dto.DecisionRecordResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.DecisionRepository().FindAll(ctx,
		specification.ByEntityID{EntityID: entityID},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.DecisionRecordResponse, len(records))
	for i, r := range records {
		out[i] = &dto.DecisionRecordResponse{
			Id:          r.Id,
			EntityId:    r.EntityId,
			EntityName:  r.EntityName,
			Vertical:    r.Vertical,
			SubVertical: r.SubVertical,
			Composite:   r.Composite,
			Grade:       r.Grade,
			SignalCount: r.SignalCount,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out, nil
}

func (s *scoringService) DiscoveryReport(ctx context.Context, ws *store.Workspace) (*dto.DiscoveryReportResponse, error) {
	entities, err := s.directory.Discover(ctx, ws)
	if err != nil {
		return nil, err
	}

	report := &dto.DiscoveryReportResponse{
		Vertical:    ws.Vertical,
		SubVertical: ws.SubVertical,
		Region:      ws.Region,
		GeneratedAt: time.Now(),
	}

	for _, e := range entities {
		decision, err := s.Score(ctx, ws, e)
		if err != nil {
			s.logger.Warn("ScoringService", "skipping entity in discovery report", map[string]interface{}{
				"entity_id": e.EntityID,
				"error":     err.Error(),
			})
			continue
		}
		// The filter already ranked the signals; the report shows the top 5.
		reportSignals := e.Signals
		if len(reportSignals) > maxReportSignals {
			reportSignals = reportSignals[:maxReportSignals]
		}
		entry := dto.DiscoveryReportEntry{
			EntityID:   decision.EntityID,
			EntityName: decision.EntityName,
			Composite:  decision.Score.Composite,
			Grade:      string(decision.Grade),
			Signals:    reportSignals,
		}
		if len(e.Patterns) > 0 {
			entry.Insight = e.Patterns[0].Pattern.Insight
		} else if len(e.Signals) > 0 {
			if def, ok := signals.LookupDefinition(e.Signals[0].Kind); ok {
				entry.Insight = def.Insight
			}
		}
		report.Entries = append(report.Entries, entry)
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Composite > report.Entries[j].Composite
	})
	for i := range report.Entries {
		report.Entries[i].Rank = i + 1
	}

	return report, nil
}
