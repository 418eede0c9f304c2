package ownerpayment

import (
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
)

//revive:disable

// OwnerPaymentListResponse is the listing payload: the owner's payout rows
// plus the company's aggregate statistics block.
type OwnerPaymentListResponse struct {
	Payments   []*ledger.OwnerPayment      `json:"payments"`
	Statistics *dto.OwnerPaymentStatistics `json:"statistics"`
}

// MarkPaymentRequest represents the request body for recording a manual
// payout to a property owner.
type MarkPaymentRequest struct {
	PropertyOwnerID string `json:"property_owner_id" validate:"required,uuid4"`
	Amount          string `json:"amount" validate:"required"`
	PaymentDate     string `json:"payment_date" validate:"omitempty"`
	PaymentMethod   string `json:"payment_method" validate:"required,min=2,max=64"`
	TransactionID   string `json:"transaction_id" validate:"max=128"`
	Notes           string `json:"notes" validate:"max=512"`
}

// DeductExpenseRequest represents the request body for charging an expense
// against an owner's owed amount.
type DeductExpenseRequest struct {
	PropertyOwnerID string `json:"property_owner_id" validate:"required,uuid4"`
	Amount          string `json:"amount" validate:"required"`
	Description     string `json:"description" validate:"required,min=2,max=512"`
}
