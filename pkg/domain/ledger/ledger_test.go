package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompanyBalance_ApplyReconciliation(t *testing.T) {
	bal := ledger.NewCompanyBalance(uuid.New())

	bal.ApplyReconciliation(d("50000"), d("5000"))

	assert.True(t, bal.TotalCollected.Equal(d("50000")))
	assert.True(t, bal.PlatformFeesCollected.Equal(d("5000")))
	assert.True(t, bal.AvailableBalance.Equal(d("5000")))
	assert.True(t, bal.TotalEarned.Equal(d("5000")))
}

func TestCompanyBalance_ApplyCashout(t *testing.T) {
	bal := ledger.NewCompanyBalance(uuid.New())
	bal.ApplyReconciliation(d("100000"), d("100000"))
	at := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	err := bal.ApplyCashout(d("50000"), d("1500"), d("48500"), at)
	require.NoError(t, err)

	assert.True(t, bal.AvailableBalance.Equal(d("50000")))
	assert.True(t, bal.TotalCashedOut.Equal(d("48500")))
	assert.True(t, bal.TotalWithdrawn.Equal(d("50000")))
	assert.True(t, bal.TotalPlatformFeesPaid.Equal(d("1500")))
	require.NotNil(t, bal.LastCashoutAt)
	assert.Equal(t, at, *bal.LastCashoutAt)
	assert.True(t, bal.LastCashoutAmount.Equal(d("50000")))
}

func TestCompanyBalance_ApplyCashoutInsufficient(t *testing.T) {
	bal := ledger.NewCompanyBalance(uuid.New())
	bal.ApplyReconciliation(d("1000"), d("100"))

	err := bal.ApplyCashout(d("200"), d("6"), d("194"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// A rejected cashout must leave the balance untouched.
	assert.True(t, bal.AvailableBalance.Equal(d("100")))
	assert.True(t, bal.TotalWithdrawn.IsZero())
	assert.Nil(t, bal.LastCashoutAt)
}

func TestOwnerBalance_ApplyReconciliation(t *testing.T) {
	bal := ledger.NewOwnerBalance(uuid.New(), uuid.New())

	bal.ApplyReconciliation(d("50000"), d("5000"), d("45000"))

	assert.True(t, bal.TotalRentCollected.Equal(d("50000")))
	assert.True(t, bal.TotalPlatformFees.Equal(d("5000")))
	assert.True(t, bal.AmountOwed.Equal(d("45000")))
	assert.True(t, bal.TotalEarned.Equal(d("45000")))
}

func TestOwnerBalance_ApplyPayout(t *testing.T) {
	bal := ledger.NewOwnerBalance(uuid.New(), uuid.New())
	bal.ApplyReconciliation(d("50000"), d("5000"), d("45000"))
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	err := bal.ApplyPayout(d("45000"), date)
	require.NoError(t, err)

	assert.True(t, bal.AmountOwed.IsZero())
	assert.True(t, bal.AmountPaid.Equal(d("45000")))
	assert.True(t, bal.TotalPaid.Equal(d("45000")))
	require.NotNil(t, bal.LastPaymentDate)
	assert.Equal(t, date, *bal.LastPaymentDate)
}

func TestOwnerBalance_PayoutCeiling(t *testing.T) {
	bal := ledger.NewOwnerBalance(uuid.New(), uuid.New())
	bal.ApplyReconciliation(d("33333"), d("3333"), d("30000"))

	err := bal.ApplyPayout(d("45000"), time.Now())
	assert.ErrorIs(t, err, domain.ErrExceedsAmountOwed)
	assert.True(t, bal.AmountOwed.Equal(d("30000")))
	assert.True(t, bal.AmountPaid.IsZero())
}

func TestOwnerBalance_PayoutMustBePositive(t *testing.T) {
	bal := ledger.NewOwnerBalance(uuid.New(), uuid.New())

	assert.ErrorIs(t, bal.ApplyPayout(decimal.Zero, time.Now()), domain.ErrValidation)
	assert.ErrorIs(t, bal.ApplyPayout(d("-5"), time.Now()), domain.ErrValidation)
}

func TestOwnerBalance_ApplyExpense(t *testing.T) {
	bal := ledger.NewOwnerBalance(uuid.New(), uuid.New())
	bal.ApplyReconciliation(d("1000"), d("100"), d("900"))

	require.NoError(t, bal.ApplyExpense(d("250")))
	assert.True(t, bal.AmountOwed.Equal(d("650")))
	assert.True(t, bal.TotalExpenses.Equal(d("250")))

	assert.ErrorIs(t, bal.ApplyExpense(d("651")), domain.ErrExceedsAmountOwed)
	assert.True(t, bal.AmountOwed.Equal(d("650")))
}

func TestCashoutRequest_Lifecycle(t *testing.T) {
	req := ledger.NewCashoutRequest(uuid.New(), d("50000"), d("1500"), "bank_transfer", "IBAN ...")
	assert.Equal(t, ledger.CashoutPending, req.Status)
	assert.True(t, req.NetAmount.Equal(d("48500")))

	approver := uuid.New()
	at := time.Now()
	require.NoError(t, req.Approve(approver, at))
	assert.Equal(t, ledger.CashoutApproved, req.Status)
	require.NotNil(t, req.ApprovedBy)
	assert.Equal(t, approver, *req.ApprovedBy)

	require.NoError(t, req.MarkProcessed("bank-tx-1", at))
	assert.Equal(t, ledger.CashoutProcessed, req.Status)
	assert.Equal(t, "bank-tx-1", req.TransactionID)
}

func TestCashoutRequest_IllegalTransitions(t *testing.T) {
	actor := uuid.New()
	at := time.Now()

	t.Run("approve twice", func(t *testing.T) {
		req := ledger.NewCashoutRequest(uuid.New(), d("500"), d("15"), "bank_transfer", "")
		require.NoError(t, req.Approve(actor, at))
		assert.ErrorIs(t, req.Approve(actor, at), domain.ErrInvalidStateTransition)
	})

	t.Run("reject after approval", func(t *testing.T) {
		req := ledger.NewCashoutRequest(uuid.New(), d("500"), d("15"), "bank_transfer", "")
		require.NoError(t, req.Approve(actor, at))
		assert.ErrorIs(t, req.Reject(actor, "too late", at), domain.ErrInvalidStateTransition)
	})

	t.Run("process without approval", func(t *testing.T) {
		req := ledger.NewCashoutRequest(uuid.New(), d("500"), d("15"), "bank_transfer", "")
		assert.ErrorIs(t, req.MarkProcessed("tx", at), domain.ErrInvalidStateTransition)
	})

	t.Run("process after rejection", func(t *testing.T) {
		req := ledger.NewCashoutRequest(uuid.New(), d("500"), d("15"), "bank_transfer", "")
		require.NoError(t, req.Reject(actor, "not now", at))
		assert.ErrorIs(t, req.MarkProcessed("tx", at), domain.ErrInvalidStateTransition)
	})
}

func TestNewBalanceTransaction_Conservation(t *testing.T) {
	tx, err := ledger.NewBalanceTransaction(
		uuid.New(), ledger.TransactionRentPayment, d("50000"), d("5000"), time.Now(),
	)
	require.NoError(t, err)
	assert.True(t, tx.NetAmount.Equal(d("45000")))
	assert.True(t, tx.Amount.Sub(tx.FeeAmount).Equal(tx.NetAmount))
}

func TestNewBalanceTransaction_RejectsFeeOutOfRange(t *testing.T) {
	_, err := ledger.NewBalanceTransaction(
		uuid.New(), ledger.TransactionRentPayment, d("100"), d("101"), time.Now(),
	)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ledger.NewBalanceTransaction(
		uuid.New(), ledger.TransactionRentPayment, d("100"), d("-1"), time.Now(),
	)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlatformFeeRecord_MarkPaid(t *testing.T) {
	rec := &ledger.PlatformFeeRecord{Status: ledger.FeeStatusPending}
	at := time.Now()

	require.NoError(t, rec.MarkPaid(at))
	assert.Equal(t, ledger.FeeStatusPaid, rec.Status)
	require.NotNil(t, rec.PaidAt)

	assert.ErrorIs(t, rec.MarkPaid(at), domain.ErrInvalidStateTransition)
}
