package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"gorm.io/gorm"
)

type balanceTransactionRepository struct {
	db *gorm.DB
}

// NewBalanceTransactionRepository creates a gorm-backed audit ledger
// repository. The table is append-only; there is no update path.
func NewBalanceTransactionRepository(db *gorm.DB) *balanceTransactionRepository {
	return &balanceTransactionRepository{db: db}
}

func (r *balanceTransactionRepository) Create(ctx context.Context, t *ledger.BalanceTransaction) error {
	m := &BalanceTransaction{
		ID:              t.ID,
		CompanyID:       t.CompanyID,
		PaymentID:       t.PaymentID,
		PropertyOwnerID: t.PropertyOwnerID,
		TransactionType: string(t.Type),
		Amount:          t.Amount,
		FeeAmount:       t.FeeAmount,
		NetAmount:       t.NetAmount,
		TransactionDate: t.TransactionDate,
		Description:     t.Description,
		ReferenceID:     t.ReferenceID,
	}
	return translateError(r.db.WithContext(ctx).Create(m).Error, domain.ErrNotFound)
}

func (r *balanceTransactionRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*ledger.BalanceTransaction, error) {
	var ms []BalanceTransaction
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("transaction_date DESC").
		Find(&ms).Error
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	result := make([]*ledger.BalanceTransaction, 0, len(ms))
	for i := range ms {
		result = append(result, mapBalanceTransactionToDomain(&ms[i]))
	}
	return result, nil
}

func mapBalanceTransactionToDomain(m *BalanceTransaction) *ledger.BalanceTransaction {
	return &ledger.BalanceTransaction{
		ID:              m.ID,
		CompanyID:       m.CompanyID,
		PaymentID:       m.PaymentID,
		PropertyOwnerID: m.PropertyOwnerID,
		Type:            ledger.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		FeeAmount:       m.FeeAmount,
		NetAmount:       m.NetAmount,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		ReferenceID:     m.ReferenceID,
		CreatedAt:       m.CreatedAt,
	}
}
