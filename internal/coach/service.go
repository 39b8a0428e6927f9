package coach

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name            string
	ExperienceYears int
	HourlyRate      float64
	Active          *bool
	Notes           *string
}

type UpdateRequest struct {
	Name            *string
	ExperienceYears *int
	HourlyRate      *float64
	Active          *bool
	Notes           *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Coach, error)
	GetByID(ctx context.Context, id string) (*Coach, error)
	List(ctx context.Context, filter Filter) ([]*Coach, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Coach, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Coach, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.HourlyRate < 0 {
		return nil, ErrInvalidRate
	}

	co := &Coach{
		Name:            strings.TrimSpace(req.Name),
		ExperienceYears: req.ExperienceYears,
		HourlyRate:      req.HourlyRate,
		Active:          true,
		Notes:           req.Notes,
	}
	if req.Active != nil {
		co.Active = *req.Active
	}

	if err := s.repo.Create(ctx, co); err != nil {
		return nil, err
	}
	return co, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Coach, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Coach, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Coach, error) {
	co, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		co.Name = strings.TrimSpace(*req.Name)
	}
	if req.ExperienceYears != nil {
		co.ExperienceYears = *req.ExperienceYears
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, ErrInvalidRate
		}
		co.HourlyRate = *req.HourlyRate
	}
	if req.Active != nil {
		co.Active = *req.Active
	}
	if req.Notes != nil {
		co.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, co); err != nil {
		return nil, err
	}
	return co, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
