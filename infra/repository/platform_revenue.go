package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"gorm.io/gorm"
)

type platformRevenueRepository struct {
	db *gorm.DB
}

// NewPlatformRevenueRepository creates a gorm-backed platform revenue
// repository. Write-only ledger; rows are never updated.
func NewPlatformRevenueRepository(db *gorm.DB) *platformRevenueRepository {
	return &platformRevenueRepository{db: db}
}

func (r *platformRevenueRepository) Create(ctx context.Context, rev *ledger.PlatformRevenue) error {
	m := &PlatformRevenue{
		ID:                    rev.ID,
		CompanyID:             rev.CompanyID,
		RevenueSource:         string(rev.Source),
		CashoutRequestID:      rev.CashoutRequestID,
		PlatformRevenueAmount: rev.Amount,
		Status:                string(rev.Status),
		CreatedAt:             rev.CreatedAt,
	}
	return translateError(r.db.WithContext(ctx).Create(m).Error, domain.ErrNotFound)
}

func (r *platformRevenueRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*ledger.PlatformRevenue, error) {
	var ms []PlatformRevenue
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	result := make([]*ledger.PlatformRevenue, 0, len(ms))
	for i := range ms {
		m := ms[i]
		result = append(result, &ledger.PlatformRevenue{
			ID:               m.ID,
			CompanyID:        m.CompanyID,
			Source:           ledger.RevenueSource(m.RevenueSource),
			CashoutRequestID: m.CashoutRequestID,
			Amount:           m.PlatformRevenueAmount,
			Status:           ledger.RevenueStatus(m.Status),
			CreatedAt:        m.CreatedAt,
		})
	}
	return result, nil
}
