package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/database"
	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/verticals"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.VerticalConfigRepository())
	assert.NotNil(t, uow.DecisionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Decision Repository", func(t *testing.T) {
		count, err := uow.DecisionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Decision record count: %d", count)
	})

	t.Run("Vertical Config Round Trip", func(t *testing.T) {
		key := verticals.Key{
			Vertical:    "banking",
			SubVertical: "employee-banking",
			Region:      "itest-" + uuid.New().String(),
		}
		cfg := &entity.VerticalConfig{
			Id:          uuid.New(),
			Vertical:    key.Vertical,
			SubVertical: key.SubVertical,
			Region:      key.Region,
			Config: verticals.Config{
				Vertical:     key.Vertical,
				SubVertical:  key.SubVertical,
				Region:       key.Region,
				AllowedKinds: []string{"hiring-expansion", "funding-round"},
				TimingRules: map[string]verticals.TimingRule{
					"hiring-expansion": {Weight: 0.9, ActionableWindowDays: 30},
				},
			},
		}

		err := uow.VerticalConfigRepository().Create(context.Background(), cfg)
		assert.NoError(t, err)
		defer uow.VerticalConfigRepository().Delete(context.Background(), cfg.Id)

		found, err := uow.VerticalConfigRepository().FindOne(context.Background(), specification.ByVerticalKey{Key: key})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, cfg.Id, found.Id)
			assert.Equal(t, []string{"hiring-expansion", "funding-round"}, found.Config.AllowedKinds)
			assert.Equal(t, 30, found.Config.TimingRules["hiring-expansion"].ActionableWindowDays)
		}
	})

	t.Run("Transactional Decision Audit", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		entityId := "itest-" + uuid.New().String()
		record := &entity.DecisionRecord{
			Id:          uuid.New(),
			UserId:      uuid.New(),
			WorkspaceId: "ws-integration",
			EntityId:    entityId,
			EntityName:  "Integration Test Co",
			Vertical:    "banking",
			SubVertical: "employee-banking",
			Composite:   86,
			Grade:       string(scoring.GradeHot),
			SignalCount: 3,
			Decision: scoring.Decision{
				ID:          uuid.New(),
				EntityID:    entityId,
				EntityName:  "Integration Test Co",
				Score:       scoring.QTLEScore{Composite: 86},
				Grade:       scoring.GradeHot,
				Reasoning:   []string{"Integration Test Co graded hot with a composite score of 86."},
				SignalCount: 3,
			},
		}

		err = uow.DecisionRepository().Create(ctx, record)
		assert.NoError(t, err)

		found, err := uow.DecisionRepository().FindOne(ctx, specification.ByEntityID{EntityID: entityId})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, scoring.GradeHot, found.Decision.Grade)
			assert.Equal(t, float64(86), found.Composite)
		}

		err = uow.Commit()
		assert.NoError(t, err)
		t.Log("Successfully persisted Decision Record in Transaction")
	})
}
