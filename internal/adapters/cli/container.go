package cli

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/viniciusfonseca/fulfillment-go/internal/adapters/persistence"
	"github.com/viniciusfonseca/fulfillment-go/internal/application/releases"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/allocation"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/fulfillment"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/scheduling"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/stock"
	"github.com/viniciusfonseca/fulfillment-go/internal/infrastructure/config"
	"github.com/viniciusfonseca/fulfillment-go/internal/infrastructure/database"
	"github.com/viniciusfonseca/fulfillment-go/internal/infrastructure/logging"
)

// container wires configuration, database, repositories and services for
// one CLI invocation
type container struct {
	cfg        *config.Config
	db         *gorm.DB
	logger     *zap.Logger
	service    *releases.Service
	orderLines *persistence.GormOrderLineRepository
	releases   *persistence.GormReleaseRepository
}

// buildContainer loads configuration, opens the database and assembles the
// application service with its GORM-backed collaborators
func buildContainer() (*container, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	clock := shared.NewRealClock()
	stockRepo := persistence.NewGormStockRepository(db)
	orderLines := persistence.NewGormOrderLineRepository(db)
	releaseRepo := persistence.NewGormReleaseRepository(db)

	projector := stock.NewProjector(stockRepo, stockRepo, stockRepo, clock)
	engine := allocation.NewEngine()
	simulator := fulfillment.NewSimulator(orderLines, releaseRepo, projector, engine)
	analyzer := scheduling.NewAnalyzer(projector, clock, cfg.Engine.RuptureHorizonDays)
	scheduler := scheduling.NewScheduler(clock)

	return &container{
		cfg:        cfg,
		db:         db,
		logger:     logger,
		service:    releases.NewService(simulator, analyzer, scheduler, releaseRepo, logger),
		orderLines: orderLines,
		releases:   releaseRepo,
	}, nil
}

// close releases the container's resources
func (c *container) close() {
	_ = c.logger.Sync()
	_ = database.Close(c.db)
}

// scheduleConstraints builds scheduling constraints from configuration
func (c *container) scheduleConstraints() scheduling.Constraints {
	return scheduling.Constraints{
		MinLeadBusinessDays: c.cfg.Schedule.MinLeadBusinessDays,
		AllowedWeekdays:     c.cfg.Schedule.Weekdays(),
		MaxPerDay:           c.cfg.Schedule.MaxPerDay,
		AdvanceCapDays:      c.cfg.Schedule.AdvanceCapDays,
	}
}
