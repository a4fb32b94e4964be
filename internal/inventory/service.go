package inventory

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*InventoryItem, error) {
	id, err := s.repo.Create(ctx, InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
		Supplier:     req.Supplier,
	})
	if err != nil {
		return nil, fmt.Errorf("create inventory item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*InventoryItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListItemsRequest) ([]InventoryItem, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) AdjustQuantity(ctx context.Context, id int64, delta int) (*InventoryItem, error) {
	item, err := s.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("adjust inventory quantity: %w", err)
	}
	return item, nil
}
