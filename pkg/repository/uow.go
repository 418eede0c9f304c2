package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Why is repository access part of UnitOfWork?
// - Ensures all repositories use the same DB session/transaction for true atomicity.
// - Keeps service code focused on business logic.
// - Prevents accidental use of the wrong DB session (which would break
//   transactionality).
// - Is easy to fake in tests.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary. The
	// function receives a UnitOfWork bound to that transaction; if it returns
	// an error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	CompanyBalanceRepository() (CompanyBalanceRepository, error)
	OwnerBalanceRepository() (OwnerBalanceRepository, error)
	PlatformFeeRepository() (PlatformFeeRepository, error)
	BalanceTransactionRepository() (BalanceTransactionRepository, error)
	CashoutRequestRepository() (CashoutRequestRepository, error)
	OwnerPaymentRepository() (OwnerPaymentRepository, error)
	PlatformRevenueRepository() (PlatformRevenueRepository, error)
	PaymentContextRepository() (PaymentContextRepository, error)
	CompanySettingsRepository() (CompanySettingsRepository, error)
}
