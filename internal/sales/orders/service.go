package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/caterflow/caterflow/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create books an order with its items in one transaction. The order total is
// the sum of item price*quantity; callers cannot set it directly.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("event date %q: %w", req.EventDate, httpx.ErrValidation)
	}

	items := make([]OrderItem, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		items = append(items, OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Category: item.Category,
		})
		total += item.Price * float64(item.Quantity)
	}

	requirements := req.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	order := Order{
		CustomerID:   req.CustomerID,
		Event:        req.Event,
		EventDate:    eventDate,
		EventTime:    req.EventTime,
		Guests:       req.Guests,
		Status:       StatusPending,
		Total:        total,
		Requirements: requirements,
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		id, err = repo.Create(ctx, order, items)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, req)
}

// UpdateStatus enforces the order lifecycle: pending orders may confirm or
// cancel, confirmed orders may only cancel, cancelled orders are terminal.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*Order, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != status {
		if !ValidTransition(current.Status, status) {
			return nil, fmt.Errorf("order status %s cannot move to %s: %w", current.Status, status, httpx.ErrValidation)
		}
		err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
			return repo.UpdateStatus(ctx, id, status)
		})
		if err != nil {
			return nil, fmt.Errorf("update order status: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
