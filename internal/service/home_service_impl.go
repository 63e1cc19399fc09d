package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/repository"
)

type homeService struct {
	homes    repository.HomeRepo
	observer UseCaseObserver
}

func NewHomeService(homes repository.HomeRepo, observers ...UseCaseObserver) HomeService {
	return &homeService{homes: homes, observer: useCaseObserverOrNoop(observers)}
}

func (s *homeService) Create(ctx context.Context, h *domain.Home) error {
	if h.Name == "" {
		return fmt.Errorf("home name is required")
	}
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	return s.homes.Create(ctx, h)
}

func (s *homeService) GetByID(ctx context.Context, id string) (*domain.Home, error) {
	return s.homes.GetByID(ctx, id)
}

func (s *homeService) List(ctx context.Context, tenantID string) ([]*domain.Home, error) {
	return s.homes.List(ctx, tenantID)
}

func (s *homeService) Update(ctx context.Context, h *domain.Home) error {
	h.UpdatedAt = time.Now().UTC()
	return s.homes.Update(ctx, h)
}

// SetStartDate re-anchors the home. The stored forecast is stale after
// this; callers are expected to recompute.
func (s *homeService) SetStartDate(ctx context.Context, id string, start *time.Time) error {
	h, err := s.homes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	h.StartDate = start
	h.UpdatedAt = time.Now().UTC()
	return s.homes.Update(ctx, h)
}

func (s *homeService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-home",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"home_id": id},
		})
	}()
	return s.homes.Delete(ctx, id)
}
