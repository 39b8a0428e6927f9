package equipment

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name         string
	SKU          *string
	TotalCount   int
	PricePerUnit float64
	Active       *bool
}

type UpdateRequest struct {
	Name         *string
	SKU          *string
	TotalCount   *int
	PricePerUnit *float64
	Active       *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Equipment, error)
	GetByID(ctx context.Context, id string) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Equipment, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Equipment, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.TotalCount < 0 {
		return nil, ErrInvalidCount
	}
	if req.PricePerUnit < 0 {
		return nil, ErrInvalidPrice
	}

	eq := &Equipment{
		Name:         strings.TrimSpace(req.Name),
		SKU:          req.SKU,
		TotalCount:   req.TotalCount,
		PricePerUnit: req.PricePerUnit,
		Active:       true,
	}
	if req.Active != nil {
		eq.Active = *req.Active
	}

	if err := s.repo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Equipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Equipment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Equipment, error) {
	eq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		eq.Name = strings.TrimSpace(*req.Name)
	}
	if req.SKU != nil {
		eq.SKU = req.SKU
	}
	if req.TotalCount != nil {
		if *req.TotalCount < 0 {
			return nil, ErrInvalidCount
		}
		eq.TotalCount = *req.TotalCount
	}
	if req.PricePerUnit != nil {
		if *req.PricePerUnit < 0 {
			return nil, ErrInvalidPrice
		}
		eq.PricePerUnit = *req.PricePerUnit
	}
	if req.Active != nil {
		eq.Active = *req.Active
	}

	if err := s.repo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
