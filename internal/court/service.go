package court

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/playcourt/booking-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Name      string
	Short     *string
	Type      string
	Active    *bool
	BasePrice float64
	Rating    float64
	Dims      *string
	OpenTime  string
	CloseTime string
}

type UpdateRequest struct {
	Name      *string
	Short     *string
	Type      *string
	Active    *bool
	BasePrice *float64
	Rating    *float64
	Dims      *string
	OpenTime  *string
	CloseTime *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Court, error)
	Delete(ctx context.Context, id string) error

	// UploadImage stores a resized court photo and records its path.
	UploadImage(ctx context.Context, id string, content io.Reader) (*Court, error)
}

const (
	imageMaxWidth  = 1280
	imageMaxHeight = 960
)

type service struct {
	repo      Repository
	store     storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{repo: repo, store: store, processor: processor}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.BasePrice < 0 {
		return nil, ErrInvalidPrice
	}

	ct := &Court{
		Name:      strings.TrimSpace(req.Name),
		Short:     req.Short,
		Type:      req.Type,
		Active:    true,
		BasePrice: req.BasePrice,
		Rating:    req.Rating,
		Dims:      req.Dims,
		OpenTime:  defaultClock(req.OpenTime, "08:00"),
		CloseTime: defaultClock(req.CloseTime, "22:00"),
	}
	if req.Active != nil {
		ct.Active = *req.Active
	}
	if ct.OpenTime >= ct.CloseTime {
		return nil, ErrInvalidHours
	}

	if err := s.repo.Create(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Court, error) {
	ct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		ct.Name = strings.TrimSpace(*req.Name)
	}
	if req.Short != nil {
		ct.Short = req.Short
	}
	if req.Type != nil {
		ct.Type = *req.Type
	}
	if req.Active != nil {
		ct.Active = *req.Active
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, ErrInvalidPrice
		}
		ct.BasePrice = *req.BasePrice
	}
	if req.Rating != nil {
		ct.Rating = *req.Rating
	}
	if req.Dims != nil {
		ct.Dims = req.Dims
	}
	if req.OpenTime != nil {
		ct.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		ct.CloseTime = *req.CloseTime
	}
	if ct.OpenTime >= ct.CloseTime {
		return nil, ErrInvalidHours
	}

	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) UploadImage(ctx context.Context, id string, content io.Reader) (*Court, error) {
	ct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resized, err := s.processor.FitJPEG(content, imageMaxWidth, imageMaxHeight)
	if err != nil {
		return nil, ErrInvalidImage
	}

	path := fmt.Sprintf("courts/%s/%s.jpg", ct.ID, uuid.New().String())
	if err := s.store.Save(ctx, path, resized); err != nil {
		return nil, fmt.Errorf("save court image failed: %w", err)
	}

	// Remove the previous image after the new one is in place.
	old := ct.ImagePath
	ct.ImagePath = &path
	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}
	if old != nil {
		_ = s.store.Delete(ctx, *old)
	}

	return ct, nil
}

func defaultClock(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
