// Package reconciliation applies the platform commission split for every
// completed rent or deposit payment: it credits the company balance with the
// platform fee, credits the owner balance with the owner share, and writes the
// fee record plus the audit ledger row, all inside one transaction.
package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/config"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/fees"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/propertyos/rentledger/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service reconciles completed payments against the company and owner
// balances. It is the single writer of reconciliation credits.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Fee
	logger *slog.Logger
	now    func() time.Time
}

// New creates a reconciliation service.
func New(uow repository.UnitOfWork, cfg *config.Fee, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ReconcilePayment applies the commission split for one completed payment.
//
// The operation is idempotent on the payment id: a payment that already has a
// PlatformFeeRecord is a no-op success, so at-least-once delivery from payment
// gateways is safe. A concurrent-modification failure is retried a bounded
// number of times; any other failure rolls the whole transaction back and the
// payment stays unreconciled.
func (s *Service) ReconcilePayment(ctx context.Context, p dto.CompletedPayment) error {
	logger := s.logger.With(
		"paymentID", p.PaymentID,
		"leaseID", p.LeaseID,
		"companyID", p.CompanyID,
		"amount", p.Amount,
	)

	if p.Status != dto.PaymentStatusCompleted {
		return fmt.Errorf("%w: payment %s is not completed", domain.ErrValidation, p.PaymentID)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", domain.ErrValidation)
	}

	var lastErr error
	for attempt := 0; attempt <= s.cfg.ReconcileMaxRetries; attempt++ {
		lastErr = s.reconcileOnce(ctx, p, logger)
		if !errors.Is(lastErr, domain.ErrConcurrentModification) {
			break
		}
		logger.Warn("ReconcilePayment retrying after concurrent modification", "attempt", attempt+1)
	}
	if lastErr != nil {
		logger.Error("ReconcilePayment failed", "error", lastErr)
		return lastErr
	}
	logger.Info("ReconcilePayment successful")
	return nil
}

func (s *Service) reconcileOnce(ctx context.Context, p dto.CompletedPayment, logger *slog.Logger) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		feeRepo, err := uow.PlatformFeeRepository()
		if err != nil {
			return err
		}

		// Idempotency guard: a duplicate webhook delivery finds the fee record
		// and stops here.
		exists, err := feeRepo.ExistsForPayment(ctx, p.PaymentID)
		if err != nil {
			return err
		}
		if exists {
			logger.Info("payment already reconciled, skipping")
			return nil
		}

		rate, pc, err := s.resolveCommission(ctx, uow, p)
		if err != nil {
			return err
		}

		feeAmount, ownerShare, err := fees.Percentage(rate).Apply(p.Amount)
		if err != nil {
			return err
		}

		companyRepo, err := uow.CompanyBalanceRepository()
		if err != nil {
			return err
		}
		ownerRepo, err := uow.OwnerBalanceRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.BalanceTransactionRepository()
		if err != nil {
			return err
		}

		companyBal, err := companyRepo.GetForUpdate(ctx, p.CompanyID)
		if err != nil {
			return err
		}
		ownerBal, err := ownerRepo.GetForUpdate(ctx, pc.PropertyOwnerID)
		if err != nil {
			return err
		}

		companyBal.ApplyReconciliation(p.Amount, feeAmount)
		ownerBal.ApplyReconciliation(p.Amount, feeAmount, ownerShare)

		if err = companyRepo.Update(ctx, companyBal); err != nil {
			return err
		}
		if err = ownerRepo.Update(ctx, ownerBal); err != nil {
			return err
		}

		feeRecord := &ledger.PlatformFeeRecord{
			ID:            uuid.New(),
			CompanyID:     p.CompanyID,
			PaymentID:     p.PaymentID,
			FeePercentage: rate,
			FeeAmount:     feeAmount,
			PaymentAmount: p.Amount,
			FeeType:       fees.TypePercentage,
			Status:        ledger.FeeStatusPending,
		}
		if err = feeRepo.Create(ctx, feeRecord); err != nil {
			// A racing delivery inserted the record first; the other
			// transaction owns the credit.
			if errors.Is(err, domain.ErrAlreadyExists) {
				logger.Info("payment reconciled concurrently, skipping")
				return domain.ErrConcurrentModification
			}
			return err
		}

		auditRow, err := ledger.NewBalanceTransaction(
			p.CompanyID, ledger.TransactionRentPayment, p.Amount, feeAmount, s.now(),
		)
		if err != nil {
			return err
		}
		auditRow.PaymentID = &p.PaymentID
		auditRow.PropertyOwnerID = &pc.PropertyOwnerID
		auditRow.Description = fmt.Sprintf("%s payment reconciled at %s%% commission", p.PaymentType, rate)
		return txRepo.Create(ctx, auditRow)
	})
}

// resolveCommission looks up the commission rate for a payment: property
// override, then company default, then platform default. Absence everywhere is
// a configuration error, never a silent zero.
func (s *Service) resolveCommission(
	ctx context.Context,
	uow repository.UnitOfWork,
	p dto.CompletedPayment,
) (decimal.Decimal, *dto.PaymentContext, error) {
	ctxRepo, err := uow.PaymentContextRepository()
	if err != nil {
		return decimal.Zero, nil, err
	}
	pc, err := ctxRepo.ResolveLease(ctx, p.LeaseID)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("resolving lease %s: %w", p.LeaseID, err)
	}

	if pc.CommissionPercent != nil {
		return *pc.CommissionPercent, pc, nil
	}

	settingsRepo, err := uow.CompanySettingsRepository()
	if err != nil {
		return decimal.Zero, nil, err
	}
	settings, err := settingsRepo.Get(ctx, p.CompanyID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return decimal.Zero, nil, err
	}
	if settings != nil && settings.DefaultCommissionPercent != nil {
		return *settings.DefaultCommissionPercent, pc, nil
	}

	if s.cfg.DefaultCommissionPercent.IsPositive() {
		return s.cfg.DefaultCommissionPercent, pc, nil
	}
	return decimal.Zero, nil, fmt.Errorf(
		"%w: no commission rate for property %s", domain.ErrMissingFeeConfiguration, pc.PropertyID,
	)
}
