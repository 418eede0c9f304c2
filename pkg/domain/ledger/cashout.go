package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// CashoutStatus is the state of a cashout request.
//
// Legal transitions: pending -> approved -> processed, pending -> rejected.
// rejected and processed are terminal.
type CashoutStatus string

const (
	CashoutPending   CashoutStatus = "pending"
	CashoutApproved  CashoutStatus = "approved"
	CashoutRejected  CashoutStatus = "rejected"
	CashoutProcessed CashoutStatus = "processed"
)

// Valid reports whether s is a known request state.
func (s CashoutStatus) Valid() bool {
	switch s {
	case CashoutPending, CashoutApproved, CashoutRejected, CashoutProcessed:
		return true
	}
	return false
}

// CashoutRequest is a company's request to withdraw accumulated balance.
// The balance is debited only when the request is processed; creation and
// approval carry no balance effect.
type CashoutRequest struct {
	ID        uuid.UUID
	CompanyID uuid.UUID

	Amount    decimal.Decimal
	FeeAmount decimal.Decimal
	NetAmount decimal.Decimal
	Status    CashoutStatus

	PaymentMethod  string
	PaymentDetails string

	ApprovedBy *uuid.UUID
	ApprovedAt *time.Time

	RejectedBy      *uuid.UUID
	RejectedAt      *time.Time
	RejectionReason string

	TransactionID string
	ProcessedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCashoutRequest creates a pending request with the fee and net amount
// already computed.
func NewCashoutRequest(
	companyID uuid.UUID,
	amount, feeAmount decimal.Decimal,
	method, details string,
) *CashoutRequest {
	return &CashoutRequest{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Amount:         amount,
		FeeAmount:      feeAmount,
		NetAmount:      amount.Sub(feeAmount),
		Status:         CashoutPending,
		PaymentMethod:  method,
		PaymentDetails: details,
	}
}

// Approve transitions pending -> approved. No balance effect.
func (r *CashoutRequest) Approve(approverID uuid.UUID, at time.Time) error {
	if r.Status != CashoutPending {
		return domain.ErrInvalidStateTransition
	}
	r.Status = CashoutApproved
	r.ApprovedBy = &approverID
	r.ApprovedAt = &at
	return nil
}

// Reject transitions pending -> rejected (terminal). No balance effect.
func (r *CashoutRequest) Reject(rejectorID uuid.UUID, reason string, at time.Time) error {
	if r.Status != CashoutPending {
		return domain.ErrInvalidStateTransition
	}
	r.Status = CashoutRejected
	r.RejectedBy = &rejectorID
	r.RejectedAt = &at
	r.RejectionReason = reason
	return nil
}

// MarkProcessed transitions approved -> processed (terminal), recording the
// external transaction reference. The caller is responsible for the balance
// debit in the same unit of work.
func (r *CashoutRequest) MarkProcessed(transactionID string, at time.Time) error {
	if r.Status != CashoutApproved {
		return domain.ErrInvalidStateTransition
	}
	r.Status = CashoutProcessed
	r.TransactionID = transactionID
	r.ProcessedAt = &at
	return nil
}
