package events

import (
	"context"
	"fmt"

	"github.com/benassi/liftlog/internal/telemetry/tracing"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) AddTrainingStart(ctx context.Context, ts TrainingStart) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.trainingstart")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tsEvent := NewTrainingStartEvent(ts)
	event, err := s.repo.Add(ctx, tsEvent)
	if err != nil {
		return 0, fmt.Errorf("add training start event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddTrainingFinish(ctx context.Context, tf TrainingFinish) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.trainingfinish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tfEvent := NewTrainingFinishEvent(tf)
	event, err := s.repo.Add(ctx, tfEvent)
	if err != nil {
		return 0, fmt.Errorf("add training finish event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddWeightReport(ctx context.Context, wr WeightReport) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.weightreport")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	wrEvent := NewWeightReportEvent(wr)
	event, err := s.repo.Add(ctx, wrEvent)
	if err != nil {
		return 0, fmt.Errorf("add weight report event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// LatestWeightKilos exposes the most recent reported body weight, used
// as the added load for bodyweight movements during record aggregation.
func (s *Service) LatestWeightKilos(ctx context.Context, userID int) (float64, error) {
	return s.repo.LatestWeightKilos(ctx, userID)
}
