package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cashoutRequestRepository struct {
	db *gorm.DB
}

// NewCashoutRequestRepository creates a gorm-backed cashout request repository.
func NewCashoutRequestRepository(db *gorm.DB) *cashoutRequestRepository {
	return &cashoutRequestRepository{db: db}
}

func (r *cashoutRequestRepository) Create(ctx context.Context, req *ledger.CashoutRequest) error {
	m := mapCashoutRequestToModel(req)
	return translateError(r.db.WithContext(ctx).Create(m).Error, domain.ErrNotFound)
}

func (r *cashoutRequestRepository) Get(ctx context.Context, id uuid.UUID) (*ledger.CashoutRequest, error) {
	var m CashoutRequest
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	return mapCashoutRequestToDomain(&m), nil
}

func (r *cashoutRequestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.CashoutRequest, error) {
	var m CashoutRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	return mapCashoutRequestToDomain(&m), nil
}

func (r *cashoutRequestRepository) Update(ctx context.Context, req *ledger.CashoutRequest) error {
	m := mapCashoutRequestToModel(req)
	return translateError(
		r.db.WithContext(ctx).Model(&CashoutRequest{}).Where("id = ?", req.ID).
			Select(
				"status", "approved_by", "approved_at", "rejected_by",
				"rejected_at", "rejection_reason", "transaction_id", "processed_at",
			).
			Updates(m).Error,
		domain.ErrNotFound,
	)
}

func (r *cashoutRequestRepository) List(ctx context.Context, companyID uuid.UUID, status ledger.CashoutStatus) ([]*ledger.CashoutRequest, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	var ms []CashoutRequest
	if err := q.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	result := make([]*ledger.CashoutRequest, 0, len(ms))
	for i := range ms {
		result = append(result, mapCashoutRequestToDomain(&ms[i]))
	}
	return result, nil
}

func (r *cashoutRequestRepository) Statistics(ctx context.Context, companyID uuid.UUID) (*dto.CashoutStatistics, error) {
	var row struct {
		PendingAmount  decimal.Decimal
		ApprovedAmount decimal.Decimal
		TotalCashedOut decimal.Decimal
		TotalFeesPaid  decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&CashoutRequest{}).
		Select(
			"COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending_amount, "+
				"COALESCE(SUM(CASE WHEN status = 'approved' THEN amount ELSE 0 END), 0) AS approved_amount, "+
				"COALESCE(SUM(CASE WHEN status = 'processed' THEN net_amount ELSE 0 END), 0) AS total_cashed_out, "+
				"COALESCE(SUM(CASE WHEN status = 'processed' THEN fee_amount ELSE 0 END), 0) AS total_fees_paid",
		).
		Where("company_id = ?", companyID).
		Scan(&row).Error
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	return &dto.CashoutStatistics{
		PendingAmount:  row.PendingAmount,
		ApprovedAmount: row.ApprovedAmount,
		TotalCashedOut: row.TotalCashedOut,
		TotalFeesPaid:  row.TotalFeesPaid,
	}, nil
}

func mapCashoutRequestToModel(req *ledger.CashoutRequest) *CashoutRequest {
	return &CashoutRequest{
		ID:              req.ID,
		CompanyID:       req.CompanyID,
		Amount:          req.Amount,
		FeeAmount:       req.FeeAmount,
		NetAmount:       req.NetAmount,
		Status:          string(req.Status),
		PaymentMethod:   req.PaymentMethod,
		PaymentDetails:  req.PaymentDetails,
		ApprovedBy:      req.ApprovedBy,
		ApprovedAt:      req.ApprovedAt,
		RejectedBy:      req.RejectedBy,
		RejectedAt:      req.RejectedAt,
		RejectionReason: req.RejectionReason,
		TransactionID:   req.TransactionID,
		ProcessedAt:     req.ProcessedAt,
	}
}

func mapCashoutRequestToDomain(m *CashoutRequest) *ledger.CashoutRequest {
	return &ledger.CashoutRequest{
		ID:              m.ID,
		CompanyID:       m.CompanyID,
		Amount:          m.Amount,
		FeeAmount:       m.FeeAmount,
		NetAmount:       m.NetAmount,
		Status:          ledger.CashoutStatus(m.Status),
		PaymentMethod:   m.PaymentMethod,
		PaymentDetails:  m.PaymentDetails,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectedBy:      m.RejectedBy,
		RejectedAt:      m.RejectedAt,
		RejectionReason: m.RejectionReason,
		TransactionID:   m.TransactionID,
		ProcessedAt:     m.ProcessedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
