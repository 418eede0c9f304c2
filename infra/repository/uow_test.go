package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUnitOfWork_RepositoryAccess(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	companyBalances, err := uow.CompanyBalanceRepository()
	require.NoError(t, err)
	assert.IsType(t, &companyBalanceRepository{}, companyBalances)

	ownerBalances, err := uow.OwnerBalanceRepository()
	require.NoError(t, err)
	assert.IsType(t, &ownerBalanceRepository{}, ownerBalances)

	fees, err := uow.PlatformFeeRepository()
	require.NoError(t, err)
	assert.IsType(t, &platformFeeRepository{}, fees)

	transactions, err := uow.BalanceTransactionRepository()
	require.NoError(t, err)
	assert.IsType(t, &balanceTransactionRepository{}, transactions)

	cashouts, err := uow.CashoutRequestRepository()
	require.NoError(t, err)
	assert.IsType(t, &cashoutRequestRepository{}, cashouts)

	payments, err := uow.OwnerPaymentRepository()
	require.NoError(t, err)
	assert.IsType(t, &ownerPaymentRepository{}, payments)

	revenues, err := uow.PlatformRevenueRepository()
	require.NoError(t, err)
	assert.IsType(t, &platformRevenueRepository{}, revenues)

	contexts, err := uow.PaymentContextRepository()
	require.NoError(t, err)
	assert.IsType(t, &paymentContextRepository{}, contexts)

	settings, err := uow.CompanySettingsRepository()
	require.NoError(t, err)
	assert.IsType(t, &companySettingsRepository{}, settings)
}

func TestUnitOfWork_DoCommits(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_DoRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_NestedDoSharesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	// One BEGIN/COMMIT pair only: the inner Do joins the outer transaction.
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(outer repository.UnitOfWork) error {
		return outer.Do(context.Background(), func(inner repository.UnitOfWork) error {
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil, domain.ErrNotFound))

	assert.ErrorIs(t,
		translateError(gorm.ErrRecordNotFound, domain.ErrCompanyBalanceNotFound),
		domain.ErrCompanyBalanceNotFound)

	assert.ErrorIs(t,
		translateError(gorm.ErrDuplicatedKey, domain.ErrNotFound),
		domain.ErrAlreadyExists)

	assert.ErrorIs(t,
		translateError(errors.New("ERROR: could not serialize access (SQLSTATE 40001)"), domain.ErrNotFound),
		domain.ErrConcurrentModification)

	assert.ErrorIs(t,
		translateError(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), domain.ErrNotFound),
		domain.ErrConcurrentModification)

	assert.ErrorIs(t,
		translateError(errors.New("database is locked"), domain.ErrNotFound),
		domain.ErrConcurrentModification)

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateError(plain, domain.ErrNotFound))
}
