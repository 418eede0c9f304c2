package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/fees"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a row of the balance audit ledger.
type TransactionType string

const (
	TransactionRentPayment      TransactionType = "rent_payment"
	TransactionExpenseDeduction TransactionType = "expense_deduction"
	TransactionCashout          TransactionType = "cashout"
	TransactionOwnerPayment     TransactionType = "owner_payment"
)

// BalanceTransaction is one write-once row of the audit ledger. Every balance
// mutation has exactly one corresponding row.
// Invariant: NetAmount = Amount - FeeAmount, exactly.
type BalanceTransaction struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	PaymentID       *uuid.UUID
	PropertyOwnerID *uuid.UUID

	Type            TransactionType
	Amount          decimal.Decimal
	FeeAmount       decimal.Decimal
	NetAmount       decimal.Decimal
	TransactionDate time.Time
	Description     string
	ReferenceID     string

	CreatedAt time.Time
}

// NewBalanceTransaction builds an audit row, enforcing the net-amount
// conservation invariant at construction time.
func NewBalanceTransaction(
	companyID uuid.UUID,
	txType TransactionType,
	amount, feeAmount decimal.Decimal,
	date time.Time,
) (*BalanceTransaction, error) {
	if feeAmount.IsNegative() || feeAmount.GreaterThan(amount) {
		return nil, fmt.Errorf("%w: fee amount must be within [0, amount]", domain.ErrValidation)
	}
	return &BalanceTransaction{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Type:            txType,
		Amount:          amount,
		FeeAmount:       feeAmount,
		NetAmount:       amount.Sub(feeAmount),
		TransactionDate: date,
	}, nil
}

// FeeStatus tracks whether a platform fee has been settled.
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "pending"
	FeeStatusPaid    FeeStatus = "paid"
)

// PlatformFeeRecord is the one-per-payment fee record. The unique PaymentID is
// the idempotency key for reconciliation: a second delivery of the same
// payment-completed event finds the record and becomes a no-op.
// Immutable once created, except the status transition to paid.
type PlatformFeeRecord struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	PaymentID uuid.UUID

	FeePercentage decimal.Decimal
	FeeAmount     decimal.Decimal
	PaymentAmount decimal.Decimal
	FeeType       fees.Type
	Status        FeeStatus
	PaidAt        *time.Time

	CreatedAt time.Time
}

// MarkPaid transitions the fee record to paid. Only pending records can be
// marked.
func (r *PlatformFeeRecord) MarkPaid(at time.Time) error {
	if r.Status != FeeStatusPending {
		return domain.ErrInvalidStateTransition
	}
	r.Status = FeeStatusPaid
	r.PaidAt = &at
	return nil
}
