// Package ownerpayout applies manual payouts and expense deductions against a
// property owner's accrued balance. Payouts never touch the company balance.
package ownerpayout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/propertyos/rentledger/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service validates and applies owner payouts.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates an owner payout service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// MarkPayment records a manual payout to a property owner and debits the
// owner's owed amount, atomically.
//
// The amount must be positive and must not exceed the owner's current owed
// amount; violations are rejected before any mutation. A missing owner
// balance row is a data-integrity error, not a creation trigger.
func (s *Service) MarkPayment(ctx context.Context, create dto.OwnerPaymentCreate) (*ledger.OwnerPayment, error) {
	logger := s.logger.With("ownerID", create.PropertyOwnerID, "amount", create.Amount)

	if !create.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrValidation)
	}
	if create.PaymentDate.IsZero() {
		create.PaymentDate = s.now()
	}

	var payment *ledger.OwnerPayment
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		balRepo, err := uow.OwnerBalanceRepository()
		if err != nil {
			return err
		}
		payRepo, err := uow.OwnerPaymentRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.BalanceTransactionRepository()
		if err != nil {
			return err
		}

		bal, err := balRepo.GetForUpdate(ctx, create.PropertyOwnerID)
		if err != nil {
			return err
		}
		if err = bal.ApplyPayout(create.Amount, create.PaymentDate); err != nil {
			return fmt.Errorf("%w: owed %s, requested %s", err, bal.AmountOwed, create.Amount)
		}
		if err = balRepo.Update(ctx, bal); err != nil {
			return err
		}

		payment = &ledger.OwnerPayment{
			ID:              uuid.New(),
			PropertyOwnerID: create.PropertyOwnerID,
			CompanyID:       bal.CompanyID,
			Amount:          create.Amount,
			PaymentDate:     create.PaymentDate,
			PaymentMethod:   create.PaymentMethod,
			TransactionID:   create.TransactionID,
			Notes:           create.Notes,
			CreatedBy:       create.CreatedBy,
		}
		if err = payRepo.Create(ctx, payment); err != nil {
			return err
		}

		auditRow, err := ledger.NewBalanceTransaction(
			bal.CompanyID, ledger.TransactionOwnerPayment, create.Amount, decimal.Zero, create.PaymentDate,
		)
		if err != nil {
			return err
		}
		auditRow.PropertyOwnerID = &create.PropertyOwnerID
		auditRow.Description = fmt.Sprintf("owner payout via %s", create.PaymentMethod)
		auditRow.ReferenceID = create.TransactionID
		return txRepo.Create(ctx, auditRow)
	})
	if err != nil {
		logger.Error("MarkPayment failed", "error", err)
		return nil, err
	}
	logger.Info("owner payment recorded", "paymentID", payment.ID)
	return payment, nil
}

// DeductExpense charges an expense against the owner's owed amount, with the
// same ceiling rule as payouts.
func (s *Service) DeductExpense(ctx context.Context, deduct dto.ExpenseDeduct) error {
	logger := s.logger.With("ownerID", deduct.PropertyOwnerID, "amount", deduct.Amount)

	if !deduct.Amount.IsPositive() {
		return fmt.Errorf("%w: expense amount must be positive", domain.ErrValidation)
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		balRepo, err := uow.OwnerBalanceRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.BalanceTransactionRepository()
		if err != nil {
			return err
		}

		bal, err := balRepo.GetForUpdate(ctx, deduct.PropertyOwnerID)
		if err != nil {
			return err
		}
		if err = bal.ApplyExpense(deduct.Amount); err != nil {
			return err
		}
		if err = balRepo.Update(ctx, bal); err != nil {
			return err
		}

		auditRow, err := ledger.NewBalanceTransaction(
			bal.CompanyID, ledger.TransactionExpenseDeduction, deduct.Amount, decimal.Zero, s.now(),
		)
		if err != nil {
			return err
		}
		auditRow.PropertyOwnerID = &deduct.PropertyOwnerID
		auditRow.Description = deduct.Description
		return txRepo.Create(ctx, auditRow)
	})
	if err != nil {
		logger.Error("DeductExpense failed", "error", err)
		return err
	}
	logger.Info("expense deducted")
	return nil
}

// List returns an owner's payout records.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*ledger.OwnerPayment, error) {
	repo, err := s.uow.OwnerPaymentRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByOwner(ctx, ownerID)
}

// ListWithStatistics returns the owner's payout rows together with the payout
// aggregates of the owner's company, resolved through the owner balance.
func (s *Service) ListWithStatistics(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*ledger.OwnerPayment, *dto.OwnerPaymentStatistics, error) {
	balRepo, err := s.uow.OwnerBalanceRepository()
	if err != nil {
		return nil, nil, err
	}
	bal, err := balRepo.Get(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.GetStatistics(ctx, bal.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	return payments, stats, nil
}

// GetStatistics aggregates a company's owner payouts: total, month-to-date and
// previous month. Read-only.
func (s *Service) GetStatistics(ctx context.Context, companyID uuid.UUID) (*dto.OwnerPaymentStatistics, error) {
	repo, err := s.uow.OwnerPaymentRepository()
	if err != nil {
		return nil, err
	}
	return repo.Statistics(ctx, companyID, s.now())
}
