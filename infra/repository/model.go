// Package repository implements the persistence contracts of
// pkg/repository on gorm. One durable table per balance-bearing entity;
// money columns are fixed decimal(20,2).
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company represents a property-management company (the multi-tenancy
// boundary) with its fee settings.
type Company struct {
	ID                          uuid.UUID        `gorm:"type:uuid;primary_key"`
	Name                        string           `gorm:"size:255;not null"`
	DefaultCommissionPercentage *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CashoutFeePercentage        decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	MinCashoutAmount            decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0"`
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// Property represents a managed property. CompanyID references the managing
// company; OwnerID references the property owner.
type Property struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primary_key"`
	CompanyID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	PropertyOwnerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	CommissionPercentage *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Lease links a renter to a property. RenterID references the renting
// individual, not the company.
type Lease struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index"`
	RenterID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CompanyBalance is the one-per-company balance row.
type CompanyBalance struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key"`
	CompanyID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	AvailableBalance      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	PendingBalance        decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	PlatformFeesCollected decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	DepositsHeld          decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	ReservationsCollected decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalCollected        decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalWithdrawn        decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalEarned           decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalCashedOut        decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalPlatformFeesPaid decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	LastCashoutAt         *time.Time
	LastCashoutAmount     decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// OwnerBalance is the one-per-owner balance row.
type OwnerBalance struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primary_key"`
	PropertyOwnerID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountOwed              decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	AmountPaid              decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalRentCollected      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalPlatformFees       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalExpenses           decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalEarned             decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalPaid               decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	LastPaymentDate         *time.Time
	LastPaymentAmount       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	NextExpectedPaymentDate *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// PlatformFeeRecord is the one-per-payment fee record. The unique payment_id
// is the reconciliation idempotency key.
type PlatformFeeRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	FeePercentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	FeeAmount     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	FeeType       string          `gorm:"size:16;not null;default:'percentage'"`
	Status        string          `gorm:"size:16;not null;default:'pending'"`
	PaidAt        *time.Time
	CreatedAt     time.Time
}

// BalanceTransaction is the append-only audit ledger table.
type BalanceTransaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentID       *uuid.UUID      `gorm:"type:uuid;index"`
	PropertyOwnerID *uuid.UUID      `gorm:"type:uuid;index"`
	TransactionType string          `gorm:"size:32;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	FeeAmount       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	NetAmount       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	TransactionDate time.Time       `gorm:"not null;index"`
	Description     string          `gorm:"size:512"`
	ReferenceID     string          `gorm:"size:255"`
	CreatedAt       time.Time
}

// CashoutRequest is a company withdrawal request and its state machine.
type CashoutRequest struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	FeeAmount       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	NetAmount       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status          string          `gorm:"size:16;not null;default:'pending';index"`
	PaymentMethod   string          `gorm:"size:64;not null"`
	PaymentDetails  string          `gorm:"size:512"`
	ApprovedBy      *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason string `gorm:"size:512"`
	TransactionID   string `gorm:"size:255"`
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OwnerPayment is the append-only record of manual payouts to owners.
type OwnerPayment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	PropertyOwnerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	PaymentDate     time.Time       `gorm:"not null;index"`
	PaymentMethod   string          `gorm:"size:64"`
	TransactionID   string          `gorm:"size:255"`
	Notes           string          `gorm:"size:512"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid"`
	CreatedAt       time.Time
}

// PlatformRevenue is the platform's append-only revenue ledger table.
type PlatformRevenue struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key"`
	CompanyID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	RevenueSource         string          `gorm:"size:32;not null"`
	CashoutRequestID      *uuid.UUID      `gorm:"type:uuid;index"`
	PlatformRevenueAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status                string          `gorm:"size:16;not null;default:'collected'"`
	CreatedAt             time.Time
}

// Models lists every table the ledger owns, in migration order.
func Models() []any {
	return []any{
		&Company{},
		&Property{},
		&Lease{},
		&CompanyBalance{},
		&OwnerBalance{},
		&PlatformFeeRecord{},
		&BalanceTransaction{},
		&CashoutRequest{},
		&OwnerPayment{},
		&PlatformRevenue{},
	}
}
