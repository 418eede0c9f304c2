package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// OwnerBalance is the single balance row of a property owner within a company.
// Invariants:
//   - AmountOwed is never negative: payouts and expense deductions are capped
//     by it.
type OwnerBalance struct {
	ID              uuid.UUID
	PropertyOwnerID uuid.UUID
	CompanyID       uuid.UUID

	AmountOwed         decimal.Decimal
	AmountPaid         decimal.Decimal
	TotalRentCollected decimal.Decimal
	TotalPlatformFees  decimal.Decimal
	TotalExpenses      decimal.Decimal
	TotalEarned        decimal.Decimal
	TotalPaid          decimal.Decimal

	LastPaymentDate         *time.Time
	LastPaymentAmount       decimal.Decimal
	NextExpectedPaymentDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOwnerBalance creates the zero-valued balance row for a property owner,
// created when the owner's first property is registered.
func NewOwnerBalance(ownerID, companyID uuid.UUID) *OwnerBalance {
	return &OwnerBalance{
		ID:              uuid.New(),
		PropertyOwnerID: ownerID,
		CompanyID:       companyID,
	}
}

// ApplyReconciliation credits the owner's share of a completed payment.
func (b *OwnerBalance) ApplyReconciliation(paymentAmount, feeAmount, ownerShare decimal.Decimal) {
	b.TotalRentCollected = b.TotalRentCollected.Add(paymentAmount)
	b.TotalPlatformFees = b.TotalPlatformFees.Add(feeAmount)
	b.AmountOwed = b.AmountOwed.Add(ownerShare)
	b.TotalEarned = b.TotalEarned.Add(ownerShare)
}

// ApplyPayout records a manual payout to the owner.
// Invariants enforced:
//   - amount must be positive.
//   - amount must not exceed AmountOwed; otherwise ErrExceedsAmountOwed and
//     the balance is left untouched.
func (b *OwnerBalance) ApplyPayout(amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return domain.ErrValidation
	}
	if amount.GreaterThan(b.AmountOwed) {
		return domain.ErrExceedsAmountOwed
	}
	b.AmountOwed = b.AmountOwed.Sub(amount)
	b.AmountPaid = b.AmountPaid.Add(amount)
	b.TotalPaid = b.TotalPaid.Add(amount)
	b.LastPaymentDate = &date
	b.LastPaymentAmount = amount
	return nil
}

// ApplyExpense charges an expense (e.g. maintenance) against the owner's owed
// amount. Same ceiling rule as payouts.
func (b *OwnerBalance) ApplyExpense(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrValidation
	}
	if amount.GreaterThan(b.AmountOwed) {
		return domain.ErrExceedsAmountOwed
	}
	b.AmountOwed = b.AmountOwed.Sub(amount)
	b.TotalExpenses = b.TotalExpenses.Add(amount)
	return nil
}
