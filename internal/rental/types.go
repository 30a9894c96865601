package rental

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("rental: not found")
	ErrInvalidInput = errors.New("rental: invalid input")
)

// Order statuses follow the rental lifecycle.
const (
	OrderStatusReserved  = "RESERVED"
	OrderStatusActive    = "ACTIVE"
	OrderStatusReturned  = "RETURNED"
	OrderStatusCancelled = "CANCELLED"
)

// Order is a rental order. Every order is bound to a merchant and,
// usually, an outlet.
type Order struct {
	ID           int64     `json:"id"`
	OrderNumber  string    `json:"order_number"`
	MerchantID   int64     `json:"merchant_id"`
	OutletID     int64     `json:"outlet_id,omitempty"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
