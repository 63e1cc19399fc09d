package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sergioanunez/phase/internal/category"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/repository"
)

type categoryGateService struct {
	gates repository.CategoryGateRepo
}

func NewCategoryGateService(gates repository.CategoryGateRepo) CategoryGateService {
	return &categoryGateService{gates: gates}
}

func (s *categoryGateService) Create(ctx context.Context, g *domain.CategoryGate) error {
	if g.CategoryName == "" {
		return fmt.Errorf("category name is required")
	}
	// A gate on an unranked category can never block anything.
	if category.Index(g.CategoryName) == category.UnrankedIndex {
		return fmt.Errorf("unknown category %q", g.CategoryName)
	}
	if g.GateScope == "" {
		g.GateScope = domain.ScopeDownstreamOnly
	}
	if g.GateBlockMode == "" {
		g.GateBlockMode = domain.ModeScheduleOnly
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	return s.gates.Create(ctx, g)
}

func (s *categoryGateService) GetByID(ctx context.Context, id string) (*domain.CategoryGate, error) {
	return s.gates.GetByID(ctx, id)
}

func (s *categoryGateService) List(ctx context.Context, tenantID string) ([]*domain.CategoryGate, error) {
	return s.gates.List(ctx, tenantID)
}

func (s *categoryGateService) Delete(ctx context.Context, id string) error {
	return s.gates.Delete(ctx, id)
}
