package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type companyBalanceRepository struct {
	db *gorm.DB
}

// NewCompanyBalanceRepository creates a gorm-backed company balance repository.
func NewCompanyBalanceRepository(db *gorm.DB) *companyBalanceRepository {
	return &companyBalanceRepository{db: db}
}

func (r *companyBalanceRepository) Get(ctx context.Context, companyID uuid.UUID) (*ledger.CompanyBalance, error) {
	var m CompanyBalance
	err := r.db.WithContext(ctx).First(&m, "company_id = ?", companyID).Error
	if err != nil {
		return nil, translateError(err, domain.ErrCompanyBalanceNotFound)
	}
	return mapCompanyBalanceToDomain(&m), nil
}

func (r *companyBalanceRepository) GetForUpdate(ctx context.Context, companyID uuid.UUID) (*ledger.CompanyBalance, error) {
	var m CompanyBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "company_id = ?", companyID).Error
	if err != nil {
		return nil, translateError(err, domain.ErrCompanyBalanceNotFound)
	}
	return mapCompanyBalanceToDomain(&m), nil
}

func (r *companyBalanceRepository) Create(ctx context.Context, b *ledger.CompanyBalance) error {
	m := mapCompanyBalanceToModel(b)
	return translateError(r.db.WithContext(ctx).Create(m).Error, domain.ErrCompanyBalanceNotFound)
}

func (r *companyBalanceRepository) Update(ctx context.Context, b *ledger.CompanyBalance) error {
	m := mapCompanyBalanceToModel(b)
	return translateError(
		r.db.WithContext(ctx).Model(&CompanyBalance{}).Where("id = ?", b.ID).
			Select(
				"available_balance", "pending_balance", "platform_fees_collected",
				"deposits_held", "reservations_collected", "total_collected",
				"total_withdrawn", "total_earned", "total_cashed_out",
				"total_platform_fees_paid", "last_cashout_at", "last_cashout_amount",
			).
			Updates(m).Error,
		domain.ErrCompanyBalanceNotFound,
	)
}

func mapCompanyBalanceToModel(b *ledger.CompanyBalance) *CompanyBalance {
	return &CompanyBalance{
		ID:                    b.ID,
		CompanyID:             b.CompanyID,
		AvailableBalance:      b.AvailableBalance,
		PendingBalance:        b.PendingBalance,
		PlatformFeesCollected: b.PlatformFeesCollected,
		DepositsHeld:          b.DepositsHeld,
		ReservationsCollected: b.ReservationsCollected,
		TotalCollected:        b.TotalCollected,
		TotalWithdrawn:        b.TotalWithdrawn,
		TotalEarned:           b.TotalEarned,
		TotalCashedOut:        b.TotalCashedOut,
		TotalPlatformFeesPaid: b.TotalPlatformFeesPaid,
		LastCashoutAt:         b.LastCashoutAt,
		LastCashoutAmount:     b.LastCashoutAmount,
	}
}

func mapCompanyBalanceToDomain(m *CompanyBalance) *ledger.CompanyBalance {
	return &ledger.CompanyBalance{
		ID:                    m.ID,
		CompanyID:             m.CompanyID,
		AvailableBalance:      m.AvailableBalance,
		PendingBalance:        m.PendingBalance,
		PlatformFeesCollected: m.PlatformFeesCollected,
		DepositsHeld:          m.DepositsHeld,
		ReservationsCollected: m.ReservationsCollected,
		TotalCollected:        m.TotalCollected,
		TotalWithdrawn:        m.TotalWithdrawn,
		TotalEarned:           m.TotalEarned,
		TotalCashedOut:        m.TotalCashedOut,
		TotalPlatformFeesPaid: m.TotalPlatformFeesPaid,
		LastCashoutAt:         m.LastCashoutAt,
		LastCashoutAmount:     m.LastCashoutAmount,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
