package balance_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyos/rentledger/internal/fixtures/fakes"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/service/balance"
)

func TestEnsureCompanyBalance(t *testing.T) {
	uow := fakes.NewUoW()
	svc := balance.New(uow, slog.Default())
	companyID := uuid.New()

	created, err := svc.EnsureCompanyBalance(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, companyID, created.CompanyID)
	assert.True(t, created.AvailableBalance.IsZero())

	// A second call returns the existing row instead of inserting.
	again, err := svc.EnsureCompanyBalance(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Len(t, uow.CompanyBalances, 1)
}

func TestEnsureOwnerBalance(t *testing.T) {
	uow := fakes.NewUoW()
	svc := balance.New(uow, slog.Default())
	ownerID := uuid.New()
	companyID := uuid.New()

	created, err := svc.EnsureOwnerBalance(context.Background(), ownerID, companyID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, created.PropertyOwnerID)
	assert.Equal(t, companyID, created.CompanyID)

	again, err := svc.EnsureOwnerBalance(context.Background(), ownerID, companyID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestGetCompanyBalance_NotFound(t *testing.T) {
	svc := balance.New(fakes.NewUoW(), slog.Default())

	_, err := svc.GetCompanyBalance(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrCompanyBalanceNotFound)
}

func TestGetOwnerBalance_NotFound(t *testing.T) {
	svc := balance.New(fakes.NewUoW(), slog.Default())

	_, err := svc.GetOwnerBalance(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrOwnerBalanceNotFound)
}

func TestListTransactions(t *testing.T) {
	uow := fakes.NewUoW()
	svc := balance.New(uow, slog.Default())
	companyID := uuid.New()

	older, err := ledger.NewBalanceTransaction(
		companyID, ledger.TransactionRentPayment,
		decimal.NewFromInt(100), decimal.NewFromInt(10),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	newer, err := ledger.NewBalanceTransaction(
		companyID, ledger.TransactionCashout,
		decimal.NewFromInt(50), decimal.NewFromInt(2),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	uow.Transactions = append(uow.Transactions, older, newer)

	txs, err := svc.ListTransactions(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, ledger.TransactionCashout, txs[0].Type, "newest first")
}
