package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashoutCreate is the input for creating a cashout request.
type CashoutCreate struct {
	CompanyID      uuid.UUID
	Amount         decimal.Decimal
	PaymentMethod  string
	PaymentDetails string
}

// CashoutStatistics is the read-only aggregation block returned with cashout
// listings.
type CashoutStatistics struct {
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	TotalCashedOut decimal.Decimal `json:"total_cashed_out"` // Sum of processed net amounts
	TotalFeesPaid  decimal.Decimal `json:"total_fees_paid"`
}
