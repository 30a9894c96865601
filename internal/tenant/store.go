package tenant

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a merchant or subscription row does not
// exist.
var ErrNotFound = errors.New("tenant: not found")

// Store describes the read-only persistence surface the access gate
// consumes. The billing subsystem owns the writes.
type Store interface {
	FindMerchant(ctx context.Context, merchantID int64) (*Merchant, error)
	FindSubscription(ctx context.Context, merchantID int64) (*Subscription, error)
}
