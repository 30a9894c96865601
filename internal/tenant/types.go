package tenant

import "time"

// Subscription statuses are externally driven by the billing
// subsystem; this service only reads and classifies them.
const (
	StatusTrial     = "TRIAL"
	StatusActive    = "ACTIVE"
	StatusPastDue   = "PAST_DUE"
	StatusCancelled = "CANCELLED"
	StatusPaused    = "PAUSED"
	StatusExpired   = "EXPIRED"
)

// Merchant is the unit of data isolation.
type Merchant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription is the billing state of a merchant. Period and trial
// ends are nullable; a nil bound never expires on its own.
type Subscription struct {
	ID               int64      `json:"id"`
	MerchantID       int64      `json:"merchant_id"`
	Plan             string     `json:"plan"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	TrialEnd         *time.Time `json:"trial_end,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
