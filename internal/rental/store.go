package rental

import "context"

// Store manages rental orders. Filters passed to List and Delete must
// come from auth.BuildScopedFilter so tenant isolation cannot be
// bypassed by handler code.
type Store interface {
	List(ctx context.Context, filter map[string]any, limit int) ([]Order, error)
	Create(ctx context.Context, order *Order) error
	Delete(ctx context.Context, orderID int64, filter map[string]any) error
}
