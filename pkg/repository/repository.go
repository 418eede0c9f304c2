// Package repository defines the persistence contracts of the reconciliation
// engine. Implementations live under infra/repository; the services only ever
// see these interfaces, obtained through a UnitOfWork so that every mutation
// inside one Do call shares a single database transaction.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
)

// CompanyBalanceRepository stores the one-per-company balance row.
type CompanyBalanceRepository interface {
	// Get returns the balance row, or domain.ErrCompanyBalanceNotFound.
	Get(ctx context.Context, companyID uuid.UUID) (*ledger.CompanyBalance, error)
	// GetForUpdate returns the balance row locked for the duration of the
	// enclosing transaction (SELECT ... FOR UPDATE or equivalent).
	GetForUpdate(ctx context.Context, companyID uuid.UUID) (*ledger.CompanyBalance, error)
	// Create inserts the row; domain.ErrAlreadyExists if the company already
	// has one.
	Create(ctx context.Context, b *ledger.CompanyBalance) error
	Update(ctx context.Context, b *ledger.CompanyBalance) error
}

// OwnerBalanceRepository stores the one-per-owner balance row.
type OwnerBalanceRepository interface {
	// Get returns the balance row, or domain.ErrOwnerBalanceNotFound.
	Get(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerBalance, error)
	GetForUpdate(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerBalance, error)
	Create(ctx context.Context, b *ledger.OwnerBalance) error
	Update(ctx context.Context, b *ledger.OwnerBalance) error
}

// PlatformFeeRepository stores the one-per-payment fee records.
type PlatformFeeRepository interface {
	// Create inserts the record; domain.ErrAlreadyExists if a record for the
	// same payment id exists (unique payment_id is the idempotency key).
	Create(ctx context.Context, r *ledger.PlatformFeeRecord) error
	// GetByPaymentID returns the record, or domain.ErrNotFound.
	GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*ledger.PlatformFeeRecord, error)
	ExistsForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error)
	Update(ctx context.Context, r *ledger.PlatformFeeRecord) error
}

// BalanceTransactionRepository stores the append-only audit ledger.
type BalanceTransactionRepository interface {
	Create(ctx context.Context, t *ledger.BalanceTransaction) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*ledger.BalanceTransaction, error)
}

// CashoutRequestRepository stores cashout requests and their aggregations.
type CashoutRequestRepository interface {
	Create(ctx context.Context, r *ledger.CashoutRequest) error
	// Get returns the request, or domain.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*ledger.CashoutRequest, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.CashoutRequest, error)
	Update(ctx context.Context, r *ledger.CashoutRequest) error
	// List returns a company's requests, optionally filtered by status
	// (empty status means all).
	List(ctx context.Context, companyID uuid.UUID, status ledger.CashoutStatus) ([]*ledger.CashoutRequest, error)
	Statistics(ctx context.Context, companyID uuid.UUID) (*dto.CashoutStatistics, error)
}

// OwnerPaymentRepository stores the append-only owner payout records.
type OwnerPaymentRepository interface {
	Create(ctx context.Context, p *ledger.OwnerPayment) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ledger.OwnerPayment, error)
	// Statistics aggregates total, month-to-date and previous-month sums for a
	// company, relative to now.
	Statistics(ctx context.Context, companyID uuid.UUID, now time.Time) (*dto.OwnerPaymentStatistics, error)
}

// PlatformRevenueRepository stores the platform's append-only revenue ledger.
type PlatformRevenueRepository interface {
	Create(ctx context.Context, r *ledger.PlatformRevenue) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*ledger.PlatformRevenue, error)
}

// PaymentContextRepository resolves the lease -> property -> owner chain a
// payment reconciles against.
type PaymentContextRepository interface {
	// ResolveLease returns the payment context, or domain.ErrNotFound when the
	// lease does not resolve to a property and owner.
	ResolveLease(ctx context.Context, leaseID uuid.UUID) (*dto.PaymentContext, error)
}

// CompanySettingsRepository reads company-level fee configuration.
type CompanySettingsRepository interface {
	// Get returns the settings, or domain.ErrNotFound.
	Get(ctx context.Context, companyID uuid.UUID) (*dto.CompanySettings, error)
}
