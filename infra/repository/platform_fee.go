package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/fees"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"gorm.io/gorm"
)

type platformFeeRepository struct {
	db *gorm.DB
}

// NewPlatformFeeRepository creates a gorm-backed platform fee repository.
func NewPlatformFeeRepository(db *gorm.DB) *platformFeeRepository {
	return &platformFeeRepository{db: db}
}

func (r *platformFeeRepository) Create(ctx context.Context, rec *ledger.PlatformFeeRecord) error {
	m := &PlatformFeeRecord{
		ID:            rec.ID,
		CompanyID:     rec.CompanyID,
		PaymentID:     rec.PaymentID,
		FeePercentage: rec.FeePercentage,
		FeeAmount:     rec.FeeAmount,
		PaymentAmount: rec.PaymentAmount,
		FeeType:       string(rec.FeeType),
		Status:        string(rec.Status),
		PaidAt:        rec.PaidAt,
	}
	return translateError(r.db.WithContext(ctx).Create(m).Error, domain.ErrNotFound)
}

func (r *platformFeeRepository) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*ledger.PlatformFeeRecord, error) {
	var m PlatformFeeRecord
	err := r.db.WithContext(ctx).First(&m, "payment_id = ?", paymentID).Error
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	return mapPlatformFeeToDomain(&m), nil
}

func (r *platformFeeRepository) ExistsForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PlatformFeeRecord{}).
		Where("payment_id = ?", paymentID).Count(&count).Error
	if err != nil {
		return false, translateError(err, domain.ErrNotFound)
	}
	return count > 0, nil
}

// Update persists the status transition to paid; all other columns are
// immutable.
func (r *platformFeeRepository) Update(ctx context.Context, rec *ledger.PlatformFeeRecord) error {
	return translateError(
		r.db.WithContext(ctx).Model(&PlatformFeeRecord{}).Where("id = ?", rec.ID).
			Updates(map[string]any{
				"status":  string(rec.Status),
				"paid_at": rec.PaidAt,
			}).Error,
		domain.ErrNotFound,
	)
}

func mapPlatformFeeToDomain(m *PlatformFeeRecord) *ledger.PlatformFeeRecord {
	return &ledger.PlatformFeeRecord{
		ID:            m.ID,
		CompanyID:     m.CompanyID,
		PaymentID:     m.PaymentID,
		FeePercentage: m.FeePercentage,
		FeeAmount:     m.FeeAmount,
		PaymentAmount: m.PaymentAmount,
		FeeType:       fees.Type(m.FeeType),
		Status:        ledger.FeeStatus(m.Status),
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
	}
}
