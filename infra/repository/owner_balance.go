package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ownerBalanceRepository struct {
	db *gorm.DB
}

// NewOwnerBalanceRepository creates a gorm-backed owner balance repository.
func NewOwnerBalanceRepository(db *gorm.DB) *ownerBalanceRepository {
	return &ownerBalanceRepository{db: db}
}

func (r *ownerBalanceRepository) Get(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerBalance, error) {
	var m OwnerBalance
	err := r.db.WithContext(ctx).First(&m, "property_owner_id = ?", ownerID).Error
	if err != nil {
		return nil, translateError(err, domain.ErrOwnerBalanceNotFound)
	}
	return mapOwnerBalanceToDomain(&m), nil
}

func (r *ownerBalanceRepository) GetForUpdate(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerBalance, error) {
	var m OwnerBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "property_owner_id = ?", ownerID).Error
	if err != nil {
		return nil, translateError(err, domain.ErrOwnerBalanceNotFound)
	}
	return mapOwnerBalanceToDomain(&m), nil
}

func (r *ownerBalanceRepository) Create(ctx context.Context, b *ledger.OwnerBalance) error {
	m := mapOwnerBalanceToModel(b)
	return translateError(r.db.WithContext(ctx).Create(m).Error, domain.ErrOwnerBalanceNotFound)
}

func (r *ownerBalanceRepository) Update(ctx context.Context, b *ledger.OwnerBalance) error {
	m := mapOwnerBalanceToModel(b)
	return translateError(
		r.db.WithContext(ctx).Model(&OwnerBalance{}).Where("id = ?", b.ID).
			Select(
				"amount_owed", "amount_paid", "total_rent_collected",
				"total_platform_fees", "total_expenses", "total_earned",
				"total_paid", "last_payment_date", "last_payment_amount",
				"next_expected_payment_date",
			).
			Updates(m).Error,
		domain.ErrOwnerBalanceNotFound,
	)
}

func mapOwnerBalanceToModel(b *ledger.OwnerBalance) *OwnerBalance {
	return &OwnerBalance{
		ID:                      b.ID,
		PropertyOwnerID:         b.PropertyOwnerID,
		CompanyID:               b.CompanyID,
		AmountOwed:              b.AmountOwed,
		AmountPaid:              b.AmountPaid,
		TotalRentCollected:      b.TotalRentCollected,
		TotalPlatformFees:       b.TotalPlatformFees,
		TotalExpenses:           b.TotalExpenses,
		TotalEarned:             b.TotalEarned,
		TotalPaid:               b.TotalPaid,
		LastPaymentDate:         b.LastPaymentDate,
		LastPaymentAmount:       b.LastPaymentAmount,
		NextExpectedPaymentDate: b.NextExpectedPaymentDate,
	}
}

func mapOwnerBalanceToDomain(m *OwnerBalance) *ledger.OwnerBalance {
	return &ledger.OwnerBalance{
		ID:                      m.ID,
		PropertyOwnerID:         m.PropertyOwnerID,
		CompanyID:               m.CompanyID,
		AmountOwed:              m.AmountOwed,
		AmountPaid:              m.AmountPaid,
		TotalRentCollected:      m.TotalRentCollected,
		TotalPlatformFees:       m.TotalPlatformFees,
		TotalExpenses:           m.TotalExpenses,
		TotalEarned:             m.TotalEarned,
		TotalPaid:               m.TotalPaid,
		LastPaymentDate:         m.LastPaymentDate,
		LastPaymentAmount:       m.LastPaymentAmount,
		NextExpectedPaymentDate: m.NextExpectedPaymentDate,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}
