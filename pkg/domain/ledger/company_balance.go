// Package ledger holds the balance-bearing entities of the reconciliation
// engine and the behavior that mutates them. All mutation goes through the
// methods here so the non-negativity and conservation invariants live in one
// place; the persistence layer only stores what these methods produce.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// CompanyBalance is the single balance row of a property-management company.
// Invariants:
//   - AvailableBalance is never negative.
//   - Credited only by payment reconciliation, debited only by cashout
//     processing.
type CompanyBalance struct {
	ID        uuid.UUID
	CompanyID uuid.UUID

	AvailableBalance      decimal.Decimal
	PendingBalance        decimal.Decimal
	PlatformFeesCollected decimal.Decimal
	DepositsHeld          decimal.Decimal
	ReservationsCollected decimal.Decimal
	TotalCollected        decimal.Decimal
	TotalWithdrawn        decimal.Decimal
	TotalEarned           decimal.Decimal
	TotalCashedOut        decimal.Decimal
	TotalPlatformFeesPaid decimal.Decimal

	LastCashoutAt     *time.Time
	LastCashoutAmount decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCompanyBalance creates the zero-valued balance row for a company.
// A company gets exactly one balance row, created at onboarding.
func NewCompanyBalance(companyID uuid.UUID) *CompanyBalance {
	return &CompanyBalance{
		ID:        uuid.New(),
		CompanyID: companyID,
	}
}

// ApplyReconciliation credits the company with a completed payment: the full
// payment amount is counted as collected and the platform fee becomes
// available company revenue.
func (b *CompanyBalance) ApplyReconciliation(paymentAmount, feeAmount decimal.Decimal) {
	b.TotalCollected = b.TotalCollected.Add(paymentAmount)
	b.PlatformFeesCollected = b.PlatformFeesCollected.Add(feeAmount)
	b.AvailableBalance = b.AvailableBalance.Add(feeAmount)
	b.TotalEarned = b.TotalEarned.Add(feeAmount)
}

// ApplyCashout debits a processed cashout request from the available balance.
// Invariants enforced:
//   - AvailableBalance must cover the gross cashout amount; otherwise
//     ErrInsufficientBalance and the balance is left untouched.
func (b *CompanyBalance) ApplyCashout(amount, feeAmount, netAmount decimal.Decimal, at time.Time) error {
	if b.AvailableBalance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}
	b.AvailableBalance = b.AvailableBalance.Sub(amount)
	b.TotalCashedOut = b.TotalCashedOut.Add(netAmount)
	b.TotalWithdrawn = b.TotalWithdrawn.Add(amount)
	b.TotalPlatformFeesPaid = b.TotalPlatformFeesPaid.Add(feeAmount)
	b.LastCashoutAt = &at
	b.LastCashoutAmount = amount
	return nil
}
