package releases

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/fulfillment"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/scheduling"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
)

// Service is the application facade over the fulfillment engine. It validates
// structural input at the boundary, delegates to the domain services, and
// logs outcomes; no engine semantics live here.
type Service struct {
	simulator *fulfillment.Simulator
	analyzer  *scheduling.Analyzer
	scheduler *scheduling.Scheduler
	releases  fulfillment.ReleaseRepository
	logger    *zap.Logger
}

// NewService creates the release application service
func NewService(
	simulator *fulfillment.Simulator,
	analyzer *scheduling.Analyzer,
	scheduler *scheduling.Scheduler,
	releases fulfillment.ReleaseRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		simulator: simulator,
		analyzer:  analyzer,
		scheduler: scheduler,
		releases:  releases,
		logger:    logger,
	}
}

// SimulateRequest carries the parameters of one fulfillment simulation
type SimulateRequest struct {
	OrderID       string
	ExcludeFilter []string
	StockOnly     bool
	TargetPallets decimal.Decimal
	WholePallet   bool
}

// SimulateFulfillment produces a fulfillment plan for one order without side
// effects. A negative pallet target is rejected before any computation.
func (s *Service) SimulateFulfillment(ctx context.Context, req SimulateRequest) (*fulfillment.FulfillmentPlan, error) {
	if req.OrderID == "" {
		return nil, shared.NewInvalidInputError("order id is required")
	}
	if req.TargetPallets.IsNegative() {
		return nil, shared.NewInvalidInputError("target pallets must not be negative, got %s", req.TargetPallets)
	}

	plan, err := s.simulator.Simulate(ctx, req.OrderID, req.ExcludeFilter, req.StockOnly, req.TargetPallets, req.WholePallet)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fulfillment simulated",
		zap.String("order_id", req.OrderID),
		zap.String("classification", string(plan.Classification)),
		zap.Int("lines", len(plan.Lines)),
		zap.Int("shortages", len(plan.Shortages)))
	return plan, nil
}

// CommitFulfillment persists a previously simulated plan as a release batch
// and returns its id. The repository enforces at most one active release per
// order at commit time.
func (s *Service) CommitFulfillment(ctx context.Context, plan *fulfillment.FulfillmentPlan) (string, error) {
	if plan == nil {
		return "", shared.NewInvalidInputError("plan is required")
	}
	if plan.OrderID == "" {
		return "", shared.NewInvalidInputError("plan has no order id")
	}
	if len(plan.Lines) == 0 {
		return "", shared.NewInvalidInputError("plan for order %s has no lines to release", plan.OrderID)
	}

	releaseID, err := s.releases.CommitPlan(ctx, plan)
	if err != nil {
		return "", err
	}

	s.logger.Info("release committed",
		zap.String("order_id", plan.OrderID),
		zap.String("release_id", releaseID))
	return releaseID, nil
}

// AssessRuptures computes resolution dates for accounts in priority order
func (s *Service) AssessRuptures(ctx context.Context, accounts []scheduling.AccountDemand) ([]scheduling.RuptureAssessment, error) {
	if len(accounts) == 0 {
		return nil, shared.NewInvalidInputError("no accounts to assess")
	}

	assessments, err := s.analyzer.Assess(ctx, accounts)
	if err != nil {
		return nil, err
	}

	ruptured := 0
	for _, a := range assessments {
		if a.Rupture {
			ruptured++
		}
	}
	s.logger.Info("ruptures assessed",
		zap.Int("accounts", len(assessments)),
		zap.Int("ruptured", ruptured))
	return assessments, nil
}

// ScheduleReleases assigns expedition and appointment dates to accounts in
// priority order under the batch constraints
func (s *Service) ScheduleReleases(ctx context.Context, accounts []scheduling.ScheduleAccount, constraints scheduling.Constraints) ([]scheduling.ScheduleAssignment, error) {
	if len(accounts) == 0 {
		return nil, shared.NewInvalidInputError("no accounts to schedule")
	}
	if constraints.MinLeadBusinessDays < 0 {
		return nil, shared.NewInvalidInputError("minimum lead must not be negative, got %d", constraints.MinLeadBusinessDays)
	}

	assignments, err := s.scheduler.Schedule(accounts, constraints)
	if err != nil {
		return nil, err
	}

	s.logger.Info("releases scheduled",
		zap.Int("accounts", len(assignments)),
		zap.Int("max_per_day", constraints.MaxPerDay))
	return assignments, nil
}
