package escalations

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caterflow/caterflow/internal/platform/httpx"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*Escalation, error)
	List(ctx context.Context, req ListEscalationsRequest) ([]Escalation, int, error)
	ListOpen(ctx context.Context) ([]Escalation, error)
	Create(ctx context.Context, esc Escalation) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const escalationSelect = `
	SELECT e.id, e.order_id, e.priority, e.status, e.description,
	       e.created_at, e.updated_at,
	       o.id, o.event, o.status
	FROM escalations e
	JOIN orders o ON o.id = e.order_id
`

func (r *repository) Get(ctx context.Context, id int64) (*Escalation, error) {
	row := r.pool.QueryRow(ctx, escalationSelect+" WHERE e.id = $1", id)
	return scanEscalation(row)
}

func (r *repository) List(ctx context.Context, req ListEscalationsRequest) ([]Escalation, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Status != nil && *req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.Priority != nil && *req.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("e.priority = $%d", argPos))
		args = append(args, *req.Priority)
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
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM escalations e %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("%s %s ORDER BY e.created_at DESC, e.id DESC LIMIT $%d OFFSET $%d",
		escalationSelect, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Escalation
	for rows.Next() {
		esc, err := scanEscalation(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *esc)
	}
	return result, total, rows.Err()
}

func (r *repository) ListOpen(ctx context.Context) ([]Escalation, error) {
	open := StatusOpen
	result, _, err := r.List(ctx, ListEscalationsRequest{Status: &open, Limit: 500})
	return result, err
}

func (r *repository) Create(ctx context.Context, esc Escalation) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO escalations (order_id, priority, status, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, esc.OrderID, esc.Priority, esc.Status, esc.Description).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, fmt.Errorf("order %d: %w", esc.OrderID, httpx.ErrNotFound)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE escalations SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("escalation %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func scanEscalation(row pgx.Row) (*Escalation, error) {
	var e Escalation
	var ref OrderRef
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&e.ID, &e.OrderID, &e.Priority, &e.Status, &e.Description,
		&createdAt, &updatedAt, &ref.ID, &ref.Event, &ref.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("escalation: %w", httpx.ErrNotFound)
		}
		return nil, err
	}
	if createdAt.Valid {
		e.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		e.UpdatedAt = updatedAt.Time
	}
	e.Order = &ref
	return &e, nil
}
