package escalations

import (
	"context"
	"fmt"
	"log/slog"
)

// Notifier delivers out-of-band alerts when a high-priority escalation is
// filed. The queue-backed implementation lives in the jobs package.
type Notifier interface {
	EscalationFiled(ctx context.Context, esc Escalation) error
}

type Service struct {
	logger   *slog.Logger
	repo     Repository
	notifier Notifier
}

func NewService(logger *slog.Logger, repo Repository, notifier Notifier) *Service {
	return &Service{logger: logger, repo: repo, notifier: notifier}
}

// Create files an escalation as OPEN. HIGH priority additionally queues a
// notification; a queue failure is logged but never fails the filing itself.
func (s *Service) Create(ctx context.Context, req CreateEscalationRequest) (*Escalation, error) {
	id, err := s.repo.Create(ctx, Escalation{
		OrderID:     req.OrderID,
		Priority:    req.Priority,
		Status:      StatusOpen,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create escalation: %w", err)
	}

	esc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load escalation: %w", err)
	}

	if esc.Priority == PriorityHigh && s.notifier != nil {
		if err := s.notifier.EscalationFiled(ctx, *esc); err != nil {
			s.logger.Error("queue escalation alert",
				slog.Any("error", err), slog.Int64("escalation_id", esc.ID))
		}
	}
	return esc, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Escalation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListEscalationsRequest) ([]Escalation, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*Escalation, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update escalation status: %w", err)
	}
	return s.repo.Get(ctx, id)
}
