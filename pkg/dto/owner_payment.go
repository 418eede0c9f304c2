package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerPaymentCreate is the input for marking a manual payout to a property
// owner.
type OwnerPaymentCreate struct {
	PropertyOwnerID uuid.UUID
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string
	TransactionID   string // Optional external reference
	Notes           string
	CreatedBy       uuid.UUID // Acting admin
}

// ExpenseDeduct is the input for charging an expense against an owner's owed
// amount.
type ExpenseDeduct struct {
	PropertyOwnerID uuid.UUID
	Amount          decimal.Decimal
	Description     string
	CreatedBy       uuid.UUID
}

// OwnerPaymentStatistics is the read-only aggregation block returned with
// owner-payment listings.
type OwnerPaymentStatistics struct {
	TotalPaid decimal.Decimal `json:"total_paid"`
	ThisMonth decimal.Decimal `json:"this_month"`
	LastMonth decimal.Decimal `json:"last_month"`
}
