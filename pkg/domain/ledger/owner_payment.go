package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerPayment is the append-only record of a manual payout to a property
// owner. Never updated after creation.
type OwnerPayment struct {
	ID              uuid.UUID
	PropertyOwnerID uuid.UUID
	CompanyID       uuid.UUID

	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod string
	TransactionID string
	Notes         string
	CreatedBy     uuid.UUID

	CreatedAt time.Time
}

// RevenueSource classifies how the platform earned a revenue event.
type RevenueSource string

const (
	RevenueCashoutFee   RevenueSource = "cashout_fee"
	RevenueSubscription RevenueSource = "subscription"
)

// RevenueStatus tracks collection of a platform revenue event.
type RevenueStatus string

const (
	RevenueStatusCollected RevenueStatus = "collected"
	RevenueStatusPending   RevenueStatus = "pending"
)

// PlatformRevenue is one append-only row of the platform's own revenue ledger,
// written once per qualifying event (cashout fee, subscription charge).
type PlatformRevenue struct {
	ID        uuid.UUID
	CompanyID uuid.UUID

	Source           RevenueSource
	CashoutRequestID *uuid.UUID
	Amount           decimal.Decimal
	Status           RevenueStatus

	CreatedAt time.Time
}
