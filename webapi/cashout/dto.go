package cashout

import (
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
)

//revive:disable

// CreateCashoutRequest represents the request body for requesting a cashout.
type CreateCashoutRequest struct {
	CompanyID      string `json:"company_id" validate:"required,uuid4"`
	Amount         string `json:"amount" validate:"required"`
	PaymentMethod  string `json:"payment_method" validate:"required,min=2,max=64"`
	PaymentDetails string `json:"payment_details" validate:"max=512"`
}

// CashoutListResponse is the listing payload: the matching requests plus the
// company's aggregate statistics block.
type CashoutListResponse struct {
	Requests   []*ledger.CashoutRequest `json:"requests"`
	Statistics *dto.CashoutStatistics   `json:"statistics"`
}

// RejectCashoutRequest represents the request body for rejecting a cashout.
type RejectCashoutRequest struct {
	Reason string `json:"reason" validate:"required,min=2,max=512"`
}

// ProcessCashoutRequest represents the request body for settling an approved
// cashout with the external transfer reference.
type ProcessCashoutRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,min=2,max=128"`
}
