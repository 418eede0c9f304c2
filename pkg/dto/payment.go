package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatusCompleted is the only payment status the reconciliation engine
// accepts.
const PaymentStatusCompleted = "completed"

// CompletedPayment is the payment-completed event delivered by the payment
// layer. Delivery is at-least-once; PaymentID is the idempotency key.
type CompletedPayment struct {
	PaymentID   uuid.UUID       // Unique payment identifier
	LeaseID     uuid.UUID       // Lease the payment was made against
	CompanyID   uuid.UUID       // Managing company (multi-tenancy boundary)
	RenterID    uuid.UUID       // Renting individual who paid
	Amount      decimal.Decimal // Gross payment amount
	PaymentType string          // e.g. rent, deposit
	Status      string          // Must be "completed"
	CompletedAt time.Time       // When the gateway confirmed the payment
}

// PaymentContext is the resolved lease -> property -> owner chain a payment
// reconciles against. Looked up explicitly so the core stays free of ORM
// relationship loading.
type PaymentContext struct {
	PropertyID        uuid.UUID
	PropertyOwnerID   uuid.UUID
	CommissionPercent *decimal.Decimal // Property-level commission override, nil if unset
}

// CompanySettings carries the company-level fee configuration used by the
// reconciliation and cashout services.
type CompanySettings struct {
	CompanyID                uuid.UUID
	DefaultCommissionPercent *decimal.Decimal // nil if the company has no default
	CashoutFeePercent        decimal.Decimal
	MinCashoutAmount         decimal.Decimal
}
