package inventory

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
	Get(ctx context.Context, id int64) (*InventoryItem, error)
	List(ctx context.Context, req ListItemsRequest) ([]InventoryItem, int, error)
	Create(ctx context.Context, item InventoryItem) (int64, error)
	AdjustQuantity(ctx context.Context, id int64, delta int) (*InventoryItem, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const itemColumns = "id, name, category, quantity, unit, reorder_level, supplier, last_restocked, created_at, updated_at"

func (r *repository) Get(ctx context.Context, id int64) (*InventoryItem, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM inventory_items WHERE id = $1", itemColumns), id)
	return scanItem(row)
}

func (r *repository) List(ctx context.Context, req ListItemsRequest) ([]InventoryItem, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Category != nil && *req.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *req.Category)
		argPos++
	}
	if req.LowStock {
		conditions = append(conditions, "quantity <= reorder_level")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM inventory_items %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM inventory_items %s ORDER BY name LIMIT $%d OFFSET $%d",
		itemColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *item)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, item InventoryItem) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO inventory_items (name, category, quantity, unit, reorder_level, supplier)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id
	`, item.Name, item.Category, item.Quantity, item.Unit, item.ReorderLevel, derefStr(item.Supplier)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("inventory item %s: %w", item.Name, httpx.ErrDuplicate)
		}
		return 0, err
	}
	return id, nil
}

// AdjustQuantity applies the delta atomically and refuses to drive stock
// negative. Positive deltas stamp last_restocked.
func (r *repository) AdjustQuantity(ctx context.Context, id int64, delta int) (*InventoryItem, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE inventory_items
		SET quantity = quantity + $1,
		    last_restocked = CASE WHEN $1 > 0 THEN NOW() ELSE last_restocked END,
		    updated_at = NOW()
		WHERE id = $2 AND quantity + $1 >= 0
		RETURNING %s
	`, itemColumns), delta, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			// Distinguish a missing row from an underflow rejection.
			if _, getErr := r.Get(ctx, id); getErr == nil {
				return nil, fmt.Errorf("inventory item %d: adjustment would drive stock negative: %w", id, httpx.ErrValidation)
			}
		}
		return nil, err
	}
	return item, nil
}

func scanItem(row pgx.Row) (*InventoryItem, error) {
	var item InventoryItem
	var supplier pgtype.Text
	var lastRestocked, createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit,
		&item.ReorderLevel, &supplier, &lastRestocked, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("inventory item: %w", httpx.ErrNotFound)
		}
		return nil, err
	}
	if supplier.Valid {
		item.Supplier = &supplier.String
	}
	if lastRestocked.Valid {
		item.LastRestocked = &lastRestocked.Time
	}
	if createdAt.Valid {
		item.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		item.UpdatedAt = updatedAt.Time
	}
	return &item, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
