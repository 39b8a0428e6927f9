package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/playcourt/booking-backend/internal/court"
)

type CreateRuleRequest struct {
	Name       string
	Active     *bool
	Kind       Kind
	Value      float64
	CourtTypes []string
	CourtIDs   []string
	Window     *TimeWindow
	Priority   *int
}

type UpdateRuleRequest struct {
	Name        *string
	Active      *bool
	Kind        *Kind
	Value       *float64
	CourtTypes  []string
	CourtIDs    []string
	Window      *TimeWindow
	ClearWindow bool
	Priority    *int
}

type Service interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (*Rule, error)
	GetRule(ctx context.Context, id string) (*Rule, error)
	ListRules(ctx context.Context) ([]*Rule, error)
	UpdateRule(ctx context.Context, id string, req UpdateRuleRequest) (*Rule, error)
	DeleteRule(ctx context.Context, id string) error

	// QuoteForCourt runs the evaluator against the court's current base price
	// and the currently active rules. Both the public price preview and the
	// booking commit path go through here, so the two can never diverge for
	// unchanged inputs. When the context carries a transaction, the reads run
	// on that snapshot.
	QuoteForCourt(ctx context.Context, courtID string, start time.Time) (*Quote, error)
}

const defaultPriority = 100

type service struct {
	repo      Repository
	courtRepo court.Repository
}

func NewService(repo Repository, courtRepo court.Repository) Service {
	return &service{repo: repo, courtRepo: courtRepo}
}

func validateWindow(w *TimeWindow) error {
	if w == nil {
		return nil
	}
	if w.Start == "" || w.End == "" || w.Start >= w.End {
		return ErrInvalidWindow
	}
	return nil
}

func (s *service) CreateRule(ctx context.Context, req CreateRuleRequest) (*Rule, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Kind != KindMultiplier && req.Kind != KindFixed {
		return nil, ErrInvalidKind
	}
	if req.Kind == KindMultiplier && req.Value <= 0 {
		return nil, ErrInvalidValue
	}
	if err := validateWindow(req.Window); err != nil {
		return nil, err
	}

	rule := &Rule{
		Name:       strings.TrimSpace(req.Name),
		Active:     true,
		Kind:       req.Kind,
		Value:      req.Value,
		CourtTypes: req.CourtTypes,
		CourtIDs:   req.CourtIDs,
		Window:     req.Window,
		Priority:   defaultPriority,
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) GetRule(ctx context.Context, id string) (*Rule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRules(ctx context.Context) ([]*Rule, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateRule(ctx context.Context, id string, req UpdateRuleRequest) (*Rule, error) {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		rule.Name = strings.TrimSpace(*req.Name)
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if req.Kind != nil {
		if *req.Kind != KindMultiplier && *req.Kind != KindFixed {
			return nil, ErrInvalidKind
		}
		rule.Kind = *req.Kind
	}
	if req.Value != nil {
		if rule.Kind == KindMultiplier && *req.Value <= 0 {
			return nil, ErrInvalidValue
		}
		rule.Value = *req.Value
	}
	if req.CourtTypes != nil {
		rule.CourtTypes = req.CourtTypes
	}
	if req.CourtIDs != nil {
		rule.CourtIDs = req.CourtIDs
	}
	if req.ClearWindow {
		rule.Window = nil
	} else if req.Window != nil {
		if err := validateWindow(req.Window); err != nil {
			return nil, err
		}
		rule.Window = req.Window
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) DeleteRule(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) QuoteForCourt(ctx context.Context, courtID string, start time.Time) (*Quote, error) {
	ct, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]Rule, len(active))
	for i, r := range active {
		rules[i] = *r
	}

	quote := Evaluate(ct.BasePrice, ct.ID, ct.Type, start, rules)
	return &quote, nil
}
