package tenant

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreFindMerchant(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`select id, name, email, created_at, updated_at from merchants where id=$1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}).
			AddRow(int64(7), "Bike Hub", "owner@bikehub.example", now, now))

	m, err := NewPGStore(db).FindMerchant(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindMerchant: %v", err)
	}
	if m.ID != 7 || m.Name != "Bike Hub" {
		t.Fatalf("unexpected merchant: %+v", m)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGStoreFindMerchantNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`select id, name, email, created_at, updated_at from merchants where id=$1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}))

	if _, err := NewPGStore(db).FindMerchant(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreFindSubscription(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	periodEnd := now.Add(30 * 24 * time.Hour)
	cols := []string{"id", "merchant_id", "plan", "status", "current_period_end", "trial_end", "cancelled_at", "created_at", "updated_at"}
	mock.ExpectQuery(`select .+ from subscriptions where merchant_id=\$1 order by created_at desc limit 1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(7), "pro", StatusActive, periodEnd, nil, nil, now, now))

	sub, err := NewPGStore(db).FindSubscription(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindSubscription: %v", err)
	}
	if sub.Status != StatusActive || sub.Plan != "pro" {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
	if sub.CurrentPeriodEnd == nil || !sub.CurrentPeriodEnd.Equal(periodEnd) {
		t.Fatalf("period end not scanned: %+v", sub.CurrentPeriodEnd)
	}
	if sub.TrialEnd != nil || sub.CancelledAt != nil {
		t.Fatalf("null timestamps must stay nil: %+v", sub)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGStoreFindSubscriptionNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "merchant_id", "plan", "status", "current_period_end", "trial_end", "cancelled_at", "created_at", "updated_at"}
	mock.ExpectQuery(`select .+ from subscriptions where merchant_id=\$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols))

	if _, err := NewPGStore(db).FindSubscription(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreFindSubscriptionQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`select .+ from subscriptions`).
		WithArgs(int64(7)).
		WillReturnError(errors.New("connection reset"))

	if _, err := NewPGStore(db).FindSubscription(context.Background(), 7); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("query errors must not map to ErrNotFound, got %v", err)
	}
}
