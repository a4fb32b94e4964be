package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/caterflow/caterflow/internal/platform/db"
	"github.com/caterflow/caterflow/internal/platform/httpx"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Create(ctx context.Context, order Order, items []OrderItem) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.event, o.event_date, o.event_time, o.guests,
	       o.status, o.total, o.requirements, o.created_at, o.updated_at,
	       c.id, c.name, c.email, c.phone
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
`

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRow(ctx, orderSelect+" WHERE o.id = $1", id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if err := r.attachRelations(ctx, []*Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Status != nil && *req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("o.customer_id = $%d", argPos))
		args = append(args, *req.CustomerID)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders o %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("%s %s ORDER BY o.event_date DESC, o.id DESC LIMIT $%d OFFSET $%d",
		orderSelect, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var loaded []*Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		loaded = append(loaded, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachRelations(ctx, loaded); err != nil {
		return nil, 0, err
	}
	result := make([]Order, len(loaded))
	for i, order := range loaded {
		result[i] = *order
	}
	return result, total, nil
}

// attachRelations loads items and escalations for the given orders in
// parallel. The queries run on the pool, not a transaction: a pgx transaction
// is bound to one connection and cannot serve concurrent queries.
func (r *repository) attachRelations(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	byID := make(map[int64]*Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	var items map[int64][]OrderItem
	var escalations map[int64][]Escalation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = r.loadItems(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		escalations, err = r.loadEscalations(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for id, order := range byID {
		order.Items = items[id]
		order.Escalations = escalations[id]
	}
	return nil
}

func (r *repository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, name, quantity, price, category
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]OrderItem)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Quantity, &item.Price, &item.Category); err != nil {
			return nil, err
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	return result, rows.Err()
}

func (r *repository) loadEscalations(ctx context.Context, orderIDs []int64) (map[int64][]Escalation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, priority, status, description, created_at
		FROM escalations
		WHERE order_id = ANY($1)
		ORDER BY created_at DESC
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]Escalation)
	for rows.Next() {
		var orderID int64
		var esc Escalation
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&esc.ID, &orderID, &esc.Priority, &esc.Status, &esc.Description, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			esc.CreatedAt = createdAt.Time
		}
		result[orderID] = append(result[orderID], esc)
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, order Order, items []OrderItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (customer_id, event, event_date, event_time, guests, status, total, requirements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, order.CustomerID, order.Event, order.EventDate, order.EventTime,
		order.Guests, order.Status, order.Total, order.Requirements).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, fmt.Errorf("customer %d: %w", order.CustomerID, httpx.ErrNotFound)
		}
		return 0, err
	}

	for _, item := range items {
		_, err := r.db.Exec(ctx, `
			INSERT INTO order_items (order_id, name, quantity, price, category)
			VALUES ($1, $2, $3, $4, $5)
		`, id, item.Name, item.Quantity, item.Price, item.Category)
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, "UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var ref CustomerRef
	var eventDate, createdAt, updatedAt pgtype.Timestamptz
	var eventTime, phone pgtype.Text

	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Event, &eventDate, &eventTime, &o.Guests,
		&o.Status, &o.Total, &o.Requirements, &createdAt, &updatedAt,
		&ref.ID, &ref.Name, &ref.Email, &phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order: %w", httpx.ErrNotFound)
		}
		return nil, err
	}
	if eventDate.Valid {
		o.EventDate = eventDate.Time
	}
	if eventTime.Valid {
		o.EventTime = eventTime.String
	}
	if createdAt.Valid {
		o.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		o.UpdatedAt = updatedAt.Time
	}
	if phone.Valid {
		ref.Phone = &phone.String
	}
	if o.Requirements == nil {
		o.Requirements = []string{}
	}
	o.Customer = &ref
	return &o, nil
}
