package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/repository"
)

type punchService struct {
	punch repository.PunchItemRepo
	tasks repository.HomeTaskRepo
}

func NewPunchService(punch repository.PunchItemRepo, tasks repository.HomeTaskRepo) PunchService {
	return &punchService{punch: punch, tasks: tasks}
}

func (s *punchService) Open(ctx context.Context, taskID, description string) (*domain.PunchItem, error) {
	if description == "" {
		return nil, fmt.Errorf("punch item description is required")
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}
	now := time.Now().UTC()
	p := &domain.PunchItem{
		ID:          uuid.New().String(),
		HomeTaskID:  taskID,
		Description: description,
		Status:      domain.PunchOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.punch.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *punchService) MarkReadyForReview(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.PunchReadyForReview)
}

func (s *punchService) Close(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.PunchClosed)
}

func (s *punchService) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.PunchCanceled)
}

func (s *punchService) transition(ctx context.Context, id string, to domain.PunchStatus) error {
	p, err := s.punch.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.Status.Outstanding() {
		return fmt.Errorf("punch item %s is already %s", id, p.Status)
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	return s.punch.Update(ctx, p)
}

func (s *punchService) GetByID(ctx context.Context, id string) (*domain.PunchItem, error) {
	return s.punch.GetByID(ctx, id)
}

func (s *punchService) ListByTask(ctx context.Context, taskID string) ([]*domain.PunchItem, error) {
	return s.punch.ListByTask(ctx, taskID)
}
