package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caterflow/caterflow/internal/platform/httpx"
)

type mockRepository struct {
	customers map[int64]*Customer
	byEmail   map[string]int64
	nextID    int64

	createError error
	txError     error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		customers: make(map[int64]*Customer),
		byEmail:   make(map[string]int64),
		nextID:    1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, httpx.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("customer: %w", httpx.ErrNotFound)
	}
	return m.Get(ctx, id)
}

func (m *mockRepository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var result []Customer
	for _, c := range m.customers {
		result = append(result, *c)
	}
	return result, len(result), nil
}

func (m *mockRepository) Create(ctx context.Context, customer Customer) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	if _, exists := m.byEmail[customer.Email]; exists {
		return 0, fmt.Errorf("customer email %s: %w", customer.Email, httpx.ErrDuplicate)
	}
	id := m.nextID
	m.nextID++
	customer.ID = id
	m.customers[id] = &customer
	m.byEmail[customer.Email] = id
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	c, ok := m.customers[id]
	if !ok {
		return fmt.Errorf("customer %d: %w", id, httpx.ErrNotFound)
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		delete(m.byEmail, c.Email)
		c.Email = v.(string)
		m.byEmail[c.Email] = id
	}
	if v, ok := updates["phone"]; ok {
		phone := v.(string)
		c.Phone = &phone
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	c, ok := m.customers[id]
	if !ok {
		return fmt.Errorf("customer %d: %w", id, httpx.ErrNotFound)
	}
	delete(m.byEmail, c.Email)
	delete(m.customers, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name:  "Layla Hassan",
		Email: "layla@example.com",
		Phone: strPtr("0501112233"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Layla Hassan", created.Name)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "A", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCustomerRequest{Name: "B", Email: "dup@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestUpsertByEmailCreatesWhenMissing(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	c, err := svc.UpsertByEmail(context.Background(), CreateCustomerRequest{
		Name:  "Fresh Client",
		Email: "fresh@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
}

func TestUpsertByEmailUpdatesInPlace(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	first, err := svc.UpsertByEmail(context.Background(), CreateCustomerRequest{
		Name:  "Old Name",
		Email: "repeat@example.com",
	})
	require.NoError(t, err)

	second, err := svc.UpsertByEmail(context.Background(), CreateCustomerRequest{
		Name:  "New Name",
		Email: "repeat@example.com",
		Phone: strPtr("0559998877"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeat clients never fork into duplicate records")
	assert.Equal(t, "New Name", second.Name)
	require.NotNil(t, second.Phone)
	assert.Equal(t, "0559998877", *second.Phone)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), 42, UpdateCustomerRequest{Name: strPtr("Nobody")})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
