package revenue_test

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
	"github.com/propertyos/rentledger/pkg/service/revenue"
)

func timeNow() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func TestRecordCashoutFee(t *testing.T) {
	uow := fakes.NewUoW()
	rec := revenue.New(uow, slog.Default()).WithClock(timeNow)

	req := ledger.NewCashoutRequest(
		uuid.New(), decimal.NewFromInt(50000), decimal.NewFromInt(1500), "bank_transfer", "",
	)
	require.NoError(t, req.Approve(uuid.New(), timeNow()))
	require.NoError(t, req.MarkProcessed("bank-tx-1", timeNow()))

	require.NoError(t, rec.RecordCashoutFee(context.Background(), uow, req))

	require.Len(t, uow.Revenues, 1)
	row := uow.Revenues[0]
	assert.Equal(t, ledger.RevenueCashoutFee, row.Source)
	assert.Equal(t, ledger.RevenueStatusCollected, row.Status)
	assert.True(t, row.Amount.Equal(decimal.NewFromInt(1500)))
	require.NotNil(t, row.CashoutRequestID)
	assert.Equal(t, req.ID, *row.CashoutRequestID)
	assert.Equal(t, timeNow(), row.CreatedAt)
}

func TestRecordCashoutFee_RequiresProcessedRequest(t *testing.T) {
	uow := fakes.NewUoW()
	rec := revenue.New(uow, slog.Default())

	req := ledger.NewCashoutRequest(
		uuid.New(), decimal.NewFromInt(500), decimal.NewFromInt(15), "bank_transfer", "",
	)

	err := rec.RecordCashoutFee(context.Background(), uow, req)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Empty(t, uow.Revenues)
}

func TestRecordSubscription(t *testing.T) {
	uow := fakes.NewUoW()
	rec := revenue.New(uow, slog.Default()).WithClock(timeNow)
	companyID := uuid.New()

	require.NoError(t, rec.RecordSubscription(context.Background(), companyID, decimal.NewFromInt(299)))

	require.Len(t, uow.Revenues, 1)
	row := uow.Revenues[0]
	assert.Equal(t, ledger.RevenueSubscription, row.Source)
	assert.Equal(t, companyID, row.CompanyID)
	assert.Nil(t, row.CashoutRequestID)
	assert.Equal(t, timeNow(), row.CreatedAt)
}

func TestRecordSubscription_RejectsNonPositiveAmount(t *testing.T) {
	rec := revenue.New(fakes.NewUoW(), slog.Default())

	err := rec.RecordSubscription(context.Background(), uuid.New(), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
