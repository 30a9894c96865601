package rental

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var _ Store = (*PGStore)(nil)

// filterColumns is the allow-list of filterable columns. Filter keys
// outside this list are rejected so arbitrary SQL can never reach the
// query text.
var filterColumns = map[string]struct{}{
	"merchant_id": {},
	"outlet_id":   {},
	"status":      {},
}

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) List(ctx context.Context, filter map[string]any, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 100
	}
	where, args, err := buildWhere(filter)
	if err != nil {
		return nil, err
	}
	query := `select id, order_number, merchant_id, outlet_id, customer_name, status, total_cents, created_at, updated_at
		 from rental_orders` + where + fmt.Sprintf(` order by created_at desc limit %d`, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.MerchantID, &o.OutletID,
			&o.CustomerName, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *PGStore) Create(ctx context.Context, order *Order) error {
	if order.MerchantID == 0 {
		return fmt.Errorf("%w: merchant_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(order.OrderNumber) == "" {
		return fmt.Errorf("%w: order_number is required", ErrInvalidInput)
	}
	if order.Status == "" {
		order.Status = OrderStatusReserved
	}
	row := s.db.QueryRowContext(ctx,
		`insert into rental_orders(order_number, merchant_id, outlet_id, customer_name, status, total_cents)
		 values($1,$2,$3,$4,$5,$6) returning id, created_at, updated_at`,
		order.OrderNumber, order.MerchantID, order.OutletID, order.CustomerName, order.Status, order.TotalCents,
	)
	return row.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (s *PGStore) Delete(ctx context.Context, orderID int64, filter map[string]any) error {
	where, args, err := buildWhere(filter)
	if err != nil {
		return err
	}
	if where == "" {
		where = fmt.Sprintf(" where id=$%d", len(args)+1)
	} else {
		where += fmt.Sprintf(" and id=$%d", len(args)+1)
	}
	args = append(args, orderID)

	res, err := s.db.ExecContext(ctx, `delete from rental_orders`+where, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// buildWhere renders the scoped filter into a WHERE clause with
// positional args. Keys are sorted so query text is deterministic for
// a given filter.
func buildWhere(filter map[string]any) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		if _, ok := filterColumns[k]; !ok {
			return "", nil, fmt.Errorf("%w: unsupported filter column %q", ErrInvalidInput, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var clauses []string
	var args []any
	for i, k := range keys {
		clauses = append(clauses, fmt.Sprintf("%s=$%d", k, i+1))
		args = append(args, filter[k])
	}
	return " where " + strings.Join(clauses, " and "), args, nil
}

// IsNotFound reports whether err indicates a missing order row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
