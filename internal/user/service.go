package user

import (
	"context"
	"strings"

	"github.com/playcourt/booking-backend/internal/auth"
)

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Phone    *string
}

type UpdateRequest struct {
	Name  *string
	Phone *string
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{repo: repo, hasher: hasher}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.Password) < 4 {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         RoleUser,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
