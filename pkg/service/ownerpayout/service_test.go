package ownerpayout_test

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
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/propertyos/rentledger/pkg/service/ownerpayout"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	uow       *fakes.UoW
	svc       *ownerpayout.Service
	companyID uuid.UUID
	ownerID   uuid.UUID
	now       time.Time
}

func newFixture(t *testing.T, owed string) *fixture {
	t.Helper()
	uow := fakes.NewUoW()
	companyID := uuid.New()
	ownerID := uuid.New()

	bal := ledger.NewOwnerBalance(ownerID, companyID)
	bal.ApplyReconciliation(d(owed), decimal.Zero, d(owed))
	uow.OwnerBalances[ownerID] = bal

	now := time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC)
	svc := ownerpayout.New(uow, slog.Default()).WithClock(func() time.Time { return now })
	return &fixture{uow: uow, svc: svc, companyID: companyID, ownerID: ownerID, now: now}
}

func TestMarkPayment(t *testing.T) {
	f := newFixture(t, "45000")

	payment, err := f.svc.MarkPayment(context.Background(), dto.OwnerPaymentCreate{
		PropertyOwnerID: f.ownerID,
		Amount:          d("45000"),
		PaymentMethod:   "bank_transfer",
		TransactionID:   "wire-77",
		Notes:           "April rent share",
		CreatedBy:       uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, f.companyID, payment.CompanyID)
	assert.Equal(t, f.now, payment.PaymentDate, "zero payment date defaults to the clock")

	bal := f.uow.OwnerBalances[f.ownerID]
	assert.True(t, bal.AmountOwed.IsZero())
	assert.True(t, bal.AmountPaid.Equal(d("45000")))

	require.Len(t, f.uow.OwnerPayments, 1)
	require.Len(t, f.uow.Transactions, 1)
	tx := f.uow.Transactions[0]
	assert.Equal(t, ledger.TransactionOwnerPayment, tx.Type)
	assert.True(t, tx.FeeAmount.IsZero(), "owner payouts never carry a fee")
	assert.Equal(t, "wire-77", tx.ReferenceID)
}

func TestMarkPayment_ExceedsAmountOwed(t *testing.T) {
	f := newFixture(t, "30000")

	_, err := f.svc.MarkPayment(context.Background(), dto.OwnerPaymentCreate{
		PropertyOwnerID: f.ownerID,
		Amount:          d("45000"),
		PaymentMethod:   "bank_transfer",
	})
	assert.ErrorIs(t, err, domain.ErrExceedsAmountOwed)

	// Failure leaves no trace anywhere.
	assert.True(t, f.uow.OwnerBalances[f.ownerID].AmountOwed.Equal(d("30000")))
	assert.Empty(t, f.uow.OwnerPayments)
	assert.Empty(t, f.uow.Transactions)
}

func TestMarkPayment_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t, "30000")

	_, err := f.svc.MarkPayment(context.Background(), dto.OwnerPaymentCreate{
		PropertyOwnerID: f.ownerID,
		Amount:          decimal.Zero,
		PaymentMethod:   "bank_transfer",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMarkPayment_UnknownOwner(t *testing.T) {
	f := newFixture(t, "30000")

	_, err := f.svc.MarkPayment(context.Background(), dto.OwnerPaymentCreate{
		PropertyOwnerID: uuid.New(),
		Amount:          d("100"),
		PaymentMethod:   "bank_transfer",
	})
	assert.ErrorIs(t, err, domain.ErrOwnerBalanceNotFound)
}

func TestMarkPayment_KeepsExplicitPaymentDate(t *testing.T) {
	f := newFixture(t, "30000")
	date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	payment, err := f.svc.MarkPayment(context.Background(), dto.OwnerPaymentCreate{
		PropertyOwnerID: f.ownerID,
		Amount:          d("100"),
		PaymentDate:     date,
		PaymentMethod:   "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, date, payment.PaymentDate)
}

func TestDeductExpense(t *testing.T) {
	f := newFixture(t, "1000")

	err := f.svc.DeductExpense(context.Background(), dto.ExpenseDeduct{
		PropertyOwnerID: f.ownerID,
		Amount:          d("250"),
		Description:     "boiler repair",
		CreatedBy:       uuid.New(),
	})
	require.NoError(t, err)

	bal := f.uow.OwnerBalances[f.ownerID]
	assert.True(t, bal.AmountOwed.Equal(d("750")))
	assert.True(t, bal.TotalExpenses.Equal(d("250")))

	require.Len(t, f.uow.Transactions, 1)
	tx := f.uow.Transactions[0]
	assert.Equal(t, ledger.TransactionExpenseDeduction, tx.Type)
	assert.Equal(t, "boiler repair", tx.Description)
}

func TestDeductExpense_Ceiling(t *testing.T) {
	f := newFixture(t, "200")

	err := f.svc.DeductExpense(context.Background(), dto.ExpenseDeduct{
		PropertyOwnerID: f.ownerID,
		Amount:          d("250"),
		Description:     "boiler repair",
	})
	assert.ErrorIs(t, err, domain.ErrExceedsAmountOwed)
	assert.True(t, f.uow.OwnerBalances[f.ownerID].AmountOwed.Equal(d("200")))
	assert.Empty(t, f.uow.Transactions)
}

func TestListAndStatistics(t *testing.T) {
	f := newFixture(t, "10000")

	pay := func(amount string, date time.Time) {
		_, err := f.svc.MarkPayment(context.Background(), dto.OwnerPaymentCreate{
			PropertyOwnerID: f.ownerID,
			Amount:          d(amount),
			PaymentDate:     date,
			PaymentMethod:   "bank_transfer",
		})
		require.NoError(t, err)
	}
	pay("1000", time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC))  // this month
	pay("2000", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)) // last month
	pay("3000", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))  // older

	payments, err := f.svc.List(context.Background(), f.ownerID)
	require.NoError(t, err)
	assert.Len(t, payments, 3)

	stats, err := f.svc.GetStatistics(context.Background(), f.companyID)
	require.NoError(t, err)
	assert.True(t, stats.TotalPaid.Equal(d("6000")))
	assert.True(t, stats.ThisMonth.Equal(d("1000")))
	assert.True(t, stats.LastMonth.Equal(d("2000")))

	rows, listStats, err := f.svc.ListWithStatistics(context.Background(), f.ownerID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	require.NotNil(t, listStats)
	assert.True(t, listStats.TotalPaid.Equal(d("6000")), "company aggregates ride the owner listing")
	assert.True(t, listStats.ThisMonth.Equal(d("1000")))
}

func TestListWithStatistics_UnknownOwner(t *testing.T) {
	f := newFixture(t, "10000")

	_, _, err := f.svc.ListWithStatistics(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrOwnerBalanceNotFound)
}
