package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/repository"
)

type templateService struct {
	items repository.TemplateItemRepo
	deps  repository.TemplateDependencyRepo
}

func NewTemplateService(items repository.TemplateItemRepo, deps repository.TemplateDependencyRepo) TemplateService {
	return &templateService{items: items, deps: deps}
}

func (s *templateService) CreateItem(ctx context.Context, item *domain.WorkTemplateItem) error {
	if item.Name == "" {
		return fmt.Errorf("template item name is required")
	}
	if item.DefaultDurationDays < 0 {
		return fmt.Errorf("default duration must not be negative")
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	return s.items.Create(ctx, item)
}

func (s *templateService) GetItem(ctx context.Context, id string) (*domain.WorkTemplateItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *templateService) ListItems(ctx context.Context, tenantID string) ([]*domain.WorkTemplateItem, error) {
	return s.items.List(ctx, tenantID)
}

func (s *templateService) UpdateItem(ctx context.Context, item *domain.WorkTemplateItem) error {
	item.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, item)
}

func (s *templateService) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

func (s *templateService) AddDependency(ctx context.Context, templateItemID, dependsOnItemID string, tenantID *string) error {
	if templateItemID == dependsOnItemID {
		return fmt.Errorf("a template item cannot depend on itself")
	}
	// Both endpoints must exist; dangling edges are silently ignored by
	// the engines, which hides typos from the caller.
	if _, err := s.items.GetByID(ctx, templateItemID); err != nil {
		return fmt.Errorf("dependent item: %w", err)
	}
	if _, err := s.items.GetByID(ctx, dependsOnItemID); err != nil {
		return fmt.Errorf("prerequisite item: %w", err)
	}
	return s.deps.Create(ctx, &domain.TemplateDependency{
		TemplateItemID:  templateItemID,
		DependsOnItemID: dependsOnItemID,
		TenantID:        tenantID,
	})
}

func (s *templateService) RemoveDependency(ctx context.Context, templateItemID, dependsOnItemID string) error {
	return s.deps.Delete(ctx, templateItemID, dependsOnItemID)
}

func (s *templateService) ListDependencies(ctx context.Context, templateItemIDs []string, tenantID string) ([]domain.TemplateDependency, error) {
	return s.deps.ListForItems(ctx, templateItemIDs, tenantID)
}
