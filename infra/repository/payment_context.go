package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/dto"
	"gorm.io/gorm"
)

type paymentContextRepository struct {
	db *gorm.DB
}

// NewPaymentContextRepository creates the lease -> property -> owner resolver.
// The chain is looked up explicitly here so the reconciliation core never
// depends on ORM relationship loading.
func NewPaymentContextRepository(db *gorm.DB) *paymentContextRepository {
	return &paymentContextRepository{db: db}
}

func (r *paymentContextRepository) ResolveLease(ctx context.Context, leaseID uuid.UUID) (*dto.PaymentContext, error) {
	var lease Lease
	if err := r.db.WithContext(ctx).First(&lease, "id = ?", leaseID).Error; err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	var property Property
	if err := r.db.WithContext(ctx).First(&property, "id = ?", lease.PropertyID).Error; err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	return &dto.PaymentContext{
		PropertyID:        property.ID,
		PropertyOwnerID:   property.PropertyOwnerID,
		CommissionPercent: property.CommissionPercentage,
	}, nil
}

type companySettingsRepository struct {
	db *gorm.DB
}

// NewCompanySettingsRepository creates the company fee-settings reader.
func NewCompanySettingsRepository(db *gorm.DB) *companySettingsRepository {
	return &companySettingsRepository{db: db}
}

func (r *companySettingsRepository) Get(ctx context.Context, companyID uuid.UUID) (*dto.CompanySettings, error) {
	var company Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", companyID).Error; err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	return &dto.CompanySettings{
		CompanyID:                company.ID,
		DefaultCommissionPercent: company.DefaultCommissionPercentage,
		CashoutFeePercent:        company.CashoutFeePercentage,
		MinCashoutAmount:         company.MinCashoutAmount,
	}, nil
}
