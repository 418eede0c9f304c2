package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ownerPaymentRepository struct {
	db *gorm.DB
}

// NewOwnerPaymentRepository creates a gorm-backed owner payment repository.
// The table is append-only; there is no update path.
func NewOwnerPaymentRepository(db *gorm.DB) *ownerPaymentRepository {
	return &ownerPaymentRepository{db: db}
}

func (r *ownerPaymentRepository) Create(ctx context.Context, p *ledger.OwnerPayment) error {
	m := &OwnerPayment{
		ID:              p.ID,
		PropertyOwnerID: p.PropertyOwnerID,
		CompanyID:       p.CompanyID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		PaymentMethod:   p.PaymentMethod,
		TransactionID:   p.TransactionID,
		Notes:           p.Notes,
		CreatedBy:       p.CreatedBy,
	}
	return translateError(r.db.WithContext(ctx).Create(m).Error, domain.ErrNotFound)
}

func (r *ownerPaymentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ledger.OwnerPayment, error) {
	var ms []OwnerPayment
	err := r.db.WithContext(ctx).
		Where("property_owner_id = ?", ownerID).
		Order("payment_date DESC").
		Find(&ms).Error
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	result := make([]*ledger.OwnerPayment, 0, len(ms))
	for i := range ms {
		result = append(result, mapOwnerPaymentToDomain(&ms[i]))
	}
	return result, nil
}

func (r *ownerPaymentRepository) Statistics(ctx context.Context, companyID uuid.UUID, now time.Time) (*dto.OwnerPaymentStatistics, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	var row struct {
		TotalPaid decimal.Decimal
		ThisMonth decimal.Decimal
		LastMonth decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&OwnerPayment{}).
		Select(
			"COALESCE(SUM(amount), 0) AS total_paid, "+
				"COALESCE(SUM(CASE WHEN payment_date >= ? THEN amount ELSE 0 END), 0) AS this_month, "+
				"COALESCE(SUM(CASE WHEN payment_date >= ? AND payment_date < ? THEN amount ELSE 0 END), 0) AS last_month",
			monthStart, prevMonthStart, monthStart,
		).
		Where("company_id = ?", companyID).
		Scan(&row).Error
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	return &dto.OwnerPaymentStatistics{
		TotalPaid: row.TotalPaid,
		ThisMonth: row.ThisMonth,
		LastMonth: row.LastMonth,
	}, nil
}

func mapOwnerPaymentToDomain(m *OwnerPayment) *ledger.OwnerPayment {
	return &ledger.OwnerPayment{
		ID:              m.ID,
		PropertyOwnerID: m.PropertyOwnerID,
		CompanyID:       m.CompanyID,
		Amount:          m.Amount,
		PaymentDate:     m.PaymentDate,
		PaymentMethod:   m.PaymentMethod,
		TransactionID:   m.TransactionID,
		Notes:           m.Notes,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}
