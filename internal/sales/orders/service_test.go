package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caterflow/caterflow/internal/platform/httpx"
)

type mockRepository struct {
	orders map[int64]*Order
	items  map[int64][]OrderItem
	nextID int64

	txError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orders: make(map[int64]*Order),
		items:  make(map[int64][]OrderItem),
		nextID: 1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	copied := *o
	copied.Items = m.items[id]
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var result []Order
	for id, o := range m.orders {
		if req.Status != nil && o.Status != *req.Status {
			continue
		}
		copied := *o
		copied.Items = m.items[id]
		result = append(result, copied)
	}
	return result, len(result), nil
}

func (m *mockRepository) Create(ctx context.Context, order Order, items []OrderItem) (int64, error) {
	id := m.nextID
	m.nextID++
	order.ID = id
	m.orders[id] = &order
	for i := range items {
		items[i].ID = int64(i + 1)
		items[i].OrderID = id
	}
	m.items[id] = items
	return id, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	o.Status = status
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	delete(m.orders, id)
	delete(m.items, id)
	return nil
}

func validCreateRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerID: 7,
		Event:      "Wedding Reception",
		EventDate:  "2026-10-01",
		EventTime:  "19:00",
		Guests:     250,
		Items: []CreateOrderItem{
			{Name: "Chairs", Quantity: 250, Price: 10, Category: CategoryFurniture},
			{Name: "Chicken Kabsa", Quantity: 12, Price: 220, Category: CategoryFood},
		},
	}
}

func TestCreateOrderComputesTotal(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	order, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 250*10.0+12*220.0, order.Total)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, []string{}, order.Requirements)
}

func TestCreateOrderRejectsBadDate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	req := validCreateRequest()
	req.EventDate = "01/10/2026"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	order, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	confirmed, err := svc.UpdateStatus(context.Background(), order.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	// Confirmed orders cannot go back to pending.
	_, err = svc.UpdateStatus(context.Background(), order.ID, StatusPending)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	cancelled, err := svc.UpdateStatus(context.Background(), order.ID, StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Cancelled is terminal.
	_, err = svc.UpdateStatus(context.Background(), order.ID, StatusConfirmed)
	require.Error(t, err)
}

func TestUpdateStatusIdempotent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	order, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	same, err := svc.UpdateStatus(context.Background(), order.ID, StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, same.Status)
}

func TestGetOrderNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
