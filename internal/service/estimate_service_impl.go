package service

import (
	"context"
	"strings"
	"time"

	"github.com/erinhale/kcal/internal/domain"
	"github.com/erinhale/kcal/internal/estimator"
	"github.com/erinhale/kcal/internal/repository"
	"github.com/google/uuid"
)

type estimateService struct {
	est      *estimator.Estimator
	history  repository.EstimateRepo
	observer UseCaseObserver
	now      func() time.Time
}

// NewEstimateService creates the estimate service. The estimator is pure;
// the service adds identity, timestamps and history recording around it.
func NewEstimateService(est *estimator.Estimator, history repository.EstimateRepo, observers ...UseCaseObserver) EstimateService {
	return &estimateService{
		est:      est,
		history:  history,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *estimateService) Estimate(ctx context.Context, raw string) (*domain.Estimate, error) {
	started := s.now()

	if strings.TrimSpace(raw) == "" {
		s.observe(ctx, "estimate", started, ErrEmptyInput, nil)
		return nil, ErrEmptyInput
	}

	result := s.est.Estimate(raw)
	entry := &domain.Estimate{
		ID:            uuid.New().String(),
		RawInput:      raw,
		Items:         result.Items,
		TotalCalories: result.TotalCalories,
		CreatedAt:     s.now(),
	}

	if err := s.history.Create(ctx, entry); err != nil {
		s.observe(ctx, "estimate", started, err, nil)
		return nil, err
	}

	s.observe(ctx, "estimate", started, nil, map[string]any{
		"items":          len(entry.Items),
		"total_calories": entry.TotalCalories,
	})
	return entry, nil
}

func (s *estimateService) History(ctx context.Context, limit int) ([]*domain.Estimate, error) {
	return s.history.ListRecent(ctx, limit)
}

func (s *estimateService) Get(ctx context.Context, id string) (*domain.Estimate, error) {
	return s.history.GetByID(ctx, id)
}

func (s *estimateService) Rerun(ctx context.Context, id string) (*domain.Estimate, error) {
	started := s.now()

	prior, err := s.history.GetByID(ctx, id)
	if err != nil {
		s.observe(ctx, "rerun", started, err, nil)
		return nil, err
	}

	entry, err := s.Estimate(ctx, prior.RawInput)
	s.observe(ctx, "rerun", started, err, map[string]any{"source_id": id})
	return entry, err
}

func (s *estimateService) Delete(ctx context.Context, id string) error {
	return s.history.Delete(ctx, id)
}

func (s *estimateService) Clear(ctx context.Context) error {
	started := s.now()
	err := s.history.Clear(ctx)
	s.observe(ctx, "clear_history", started, err, nil)
	return err
}

func (s *estimateService) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  s.now().Sub(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
