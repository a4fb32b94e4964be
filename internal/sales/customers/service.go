package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/caterflow/caterflow/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	customer := Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		id, err = repo.Create(ctx, customer)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// UpsertByEmail creates the customer, or updates name and phone in place when
// the email is already on file. The booking flow calls this so repeat clients
// never fork into duplicate records.
func (s *Service) UpsertByEmail(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	var result *Customer
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		existing, err := repo.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return err
		}
		if existing == nil {
			id, err := repo.Create(ctx, Customer{Name: req.Name, Email: req.Email, Phone: req.Phone})
			if err != nil {
				return err
			}
			result, err = repo.Get(ctx, id)
			return err
		}

		updates := map[string]interface{}{"name": req.Name}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if err := repo.Update(ctx, existing.ID, updates); err != nil {
			return err
		}
		result, err = repo.Get(ctx, existing.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*Customer, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
			return repo.Update(ctx, id, updates)
		})
		if err != nil {
			return nil, fmt.Errorf("update customer: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
