package repository

import (
	"context"

	"github.com/propertyos/rentledger/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// All repositories obtained inside a Do callback are bound to the same
// transaction, which is what makes the balance mutations atomic.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW whose
// repositories share the transaction session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	// Nested Do reuses the enclosing transaction so a service can compose
	// another service's work atomically.
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction if one is open, the base connection
// otherwise. Read-only repository access outside Do uses the base connection.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) CompanyBalanceRepository() (repository.CompanyBalanceRepository, error) {
	return NewCompanyBalanceRepository(u.session()), nil
}

func (u *UoW) OwnerBalanceRepository() (repository.OwnerBalanceRepository, error) {
	return NewOwnerBalanceRepository(u.session()), nil
}

func (u *UoW) PlatformFeeRepository() (repository.PlatformFeeRepository, error) {
	return NewPlatformFeeRepository(u.session()), nil
}

func (u *UoW) BalanceTransactionRepository() (repository.BalanceTransactionRepository, error) {
	return NewBalanceTransactionRepository(u.session()), nil
}

func (u *UoW) CashoutRequestRepository() (repository.CashoutRequestRepository, error) {
	return NewCashoutRequestRepository(u.session()), nil
}

func (u *UoW) OwnerPaymentRepository() (repository.OwnerPaymentRepository, error) {
	return NewOwnerPaymentRepository(u.session()), nil
}

func (u *UoW) PlatformRevenueRepository() (repository.PlatformRevenueRepository, error) {
	return NewPlatformRevenueRepository(u.session()), nil
}

func (u *UoW) PaymentContextRepository() (repository.PaymentContextRepository, error) {
	return NewPaymentContextRepository(u.session()), nil
}

func (u *UoW) CompanySettingsRepository() (repository.CompanySettingsRepository, error) {
	return NewCompanySettingsRepository(u.session()), nil
}
