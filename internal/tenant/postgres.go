package tenant

import (
	"context"
	"database/sql"
	"errors"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) FindMerchant(ctx context.Context, merchantID int64) (*Merchant, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, name, email, created_at, updated_at from merchants where id=$1`, merchantID)
	var m Merchant
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *PGStore) FindSubscription(ctx context.Context, merchantID int64) (*Subscription, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, merchant_id, plan, status, current_period_end, trial_end, cancelled_at, created_at, updated_at
		 from subscriptions where merchant_id=$1 order by created_at desc limit 1`, merchantID)
	var sub Subscription
	if err := row.Scan(&sub.ID, &sub.MerchantID, &sub.Plan, &sub.Status,
		&sub.CurrentPeriodEnd, &sub.TrialEnd, &sub.CancelledAt, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}
