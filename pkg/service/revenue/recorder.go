// Package revenue appends rows to the platform's own revenue ledger. The
// ledger is write-only: rows are never updated or deleted.
package revenue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/repository"
	"github.com/shopspring/decimal"
)

// Recorder writes platform revenue events.
type Recorder struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a revenue recorder.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Recorder {
	return &Recorder{uow: uow, logger: logger, now: time.Now}
}

// WithClock overrides the recorder clock. Used by tests.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// RecordCashoutFee appends the fee earned on a processed cashout request.
// It uses the given unit of work so the row commits atomically with the
// cashout debit.
func (r *Recorder) RecordCashoutFee(ctx context.Context, uow repository.UnitOfWork, req *ledger.CashoutRequest) error {
	if req.Status != ledger.CashoutProcessed {
		return fmt.Errorf("%w: cashout request %s is not processed", domain.ErrInvalidStateTransition, req.ID)
	}
	repo, err := uow.PlatformRevenueRepository()
	if err != nil {
		return err
	}
	id := req.ID
	return repo.Create(ctx, &ledger.PlatformRevenue{
		ID:               uuid.New(),
		CompanyID:        req.CompanyID,
		Source:           ledger.RevenueCashoutFee,
		CashoutRequestID: &id,
		Amount:           req.FeeAmount,
		Status:           ledger.RevenueStatusCollected,
		CreatedAt:        r.now(),
	})
}

// RecordSubscription appends a subscription charge collected from a company.
func (r *Recorder) RecordSubscription(ctx context.Context, companyID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: subscription amount must be positive", domain.ErrValidation)
	}
	err := r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PlatformRevenueRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, &ledger.PlatformRevenue{
			ID:        uuid.New(),
			CompanyID: companyID,
			Source:    ledger.RevenueSubscription,
			Amount:    amount,
			Status:    ledger.RevenueStatusCollected,
			CreatedAt: r.now(),
		})
	})
	if err != nil {
		r.logger.Error("RecordSubscription failed", "companyID", companyID, "error", err)
		return err
	}
	r.logger.Info("subscription revenue recorded", "companyID", companyID, "amount", amount)
	return nil
}
