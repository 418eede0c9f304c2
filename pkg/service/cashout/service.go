// Package cashout orchestrates company withdrawal requests through their
// state machine: create -> approve -> process, or create -> reject. Only
// Process touches the company balance.
package cashout

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
	"github.com/propertyos/rentledger/pkg/service/revenue"
	"github.com/shopspring/decimal"
)

// Service validates and orchestrates cashout requests.
type Service struct {
	uow     repository.UnitOfWork
	cfg     *config.Fee
	revenue *revenue.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a cashout service.
func New(uow repository.UnitOfWork, cfg *config.Fee, rec *revenue.Recorder, logger *slog.Logger) *Service {
	return &Service{
		uow:     uow,
		cfg:     cfg,
		revenue: rec,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateRequest validates and creates a pending cashout request. The company
// balance is not touched: the debit happens at Process time.
//
// Validation: amount must be positive, at least the company's (or platform's)
// minimum cashout amount, and covered by the current available balance.
func (s *Service) CreateRequest(ctx context.Context, create dto.CashoutCreate) (*ledger.CashoutRequest, error) {
	logger := s.logger.With("companyID", create.CompanyID, "amount", create.Amount)

	if !create.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: cashout amount must be positive", domain.ErrValidation)
	}

	var req *ledger.CashoutRequest
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		minAmount, feePercent, err := s.resolveCashoutTerms(ctx, uow, create.CompanyID)
		if err != nil {
			return err
		}
		if create.Amount.LessThan(minAmount) {
			return fmt.Errorf("%w: minimum is %s", domain.ErrBelowMinimumCashout, minAmount)
		}

		balRepo, err := uow.CompanyBalanceRepository()
		if err != nil {
			return err
		}
		bal, err := balRepo.Get(ctx, create.CompanyID)
		if err != nil {
			return err
		}
		if bal.AvailableBalance.LessThan(create.Amount) {
			return fmt.Errorf("%w: available %s, requested %s",
				domain.ErrInsufficientBalance, bal.AvailableBalance, create.Amount)
		}

		feeAmount, _, err := fees.Percentage(feePercent).Apply(create.Amount)
		if err != nil {
			return err
		}
		req = ledger.NewCashoutRequest(
			create.CompanyID, create.Amount, feeAmount,
			create.PaymentMethod, create.PaymentDetails,
		)

		reqRepo, err := uow.CashoutRequestRepository()
		if err != nil {
			return err
		}
		return reqRepo.Create(ctx, req)
	})
	if err != nil {
		logger.Error("CreateRequest failed", "error", err)
		return nil, err
	}
	logger.Info("cashout request created", "requestID", req.ID, "fee", req.FeeAmount, "net", req.NetAmount)
	return req, nil
}

// Approve transitions a pending request to approved. No balance effect.
func (s *Service) Approve(ctx context.Context, requestID, approverID uuid.UUID) (*ledger.CashoutRequest, error) {
	return s.transition(ctx, requestID, func(req *ledger.CashoutRequest) error {
		return req.Approve(approverID, s.now())
	})
}

// Reject transitions a pending request to rejected (terminal). No balance
// effect.
func (s *Service) Reject(ctx context.Context, requestID, rejectorID uuid.UUID, reason string) (*ledger.CashoutRequest, error) {
	return s.transition(ctx, requestID, func(req *ledger.CashoutRequest) error {
		return req.Reject(rejectorID, reason, s.now())
	})
}

func (s *Service) transition(
	ctx context.Context,
	requestID uuid.UUID,
	apply func(*ledger.CashoutRequest) error,
) (*ledger.CashoutRequest, error) {
	var req *ledger.CashoutRequest
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CashoutRequestRepository()
		if err != nil {
			return err
		}
		req, err = repo.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err = apply(req); err != nil {
			return err
		}
		return repo.Update(ctx, req)
	})
	if err != nil {
		s.logger.Error("cashout transition failed", "requestID", requestID, "error", err)
		return nil, err
	}
	s.logger.Info("cashout request updated", "requestID", requestID, "status", req.Status)
	return req, nil
}

// Process executes an approved request: debits the company balance, marks the
// request processed with the external transaction reference, and writes the
// audit ledger row and the platform revenue row in a single transaction.
//
// The available balance is re-checked at process time; an insufficient balance
// here is fatal and leaves the request approved for manual resolution. Process
// is not idempotent: callers must check the status before invoking and treat
// ErrInvalidStateTransition on retry as success.
func (s *Service) Process(ctx context.Context, requestID uuid.UUID, transactionID string) (*ledger.CashoutRequest, error) {
	logger := s.logger.With("requestID", requestID, "transactionID", transactionID)

	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction id is required", domain.ErrValidation)
	}

	var req *ledger.CashoutRequest
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		reqRepo, err := uow.CashoutRequestRepository()
		if err != nil {
			return err
		}
		balRepo, err := uow.CompanyBalanceRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.BalanceTransactionRepository()
		if err != nil {
			return err
		}

		req, err = reqRepo.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != ledger.CashoutApproved {
			return fmt.Errorf("%w: request is %s, expected approved",
				domain.ErrInvalidStateTransition, req.Status)
		}

		bal, err := balRepo.GetForUpdate(ctx, req.CompanyID)
		if err != nil {
			return err
		}

		processedAt := s.now()
		if err = bal.ApplyCashout(req.Amount, req.FeeAmount, req.NetAmount, processedAt); err != nil {
			// Balance shifted since approval. The request stays approved.
			return fmt.Errorf("%w: available %s no longer covers %s",
				domain.ErrInsufficientBalance, bal.AvailableBalance, req.Amount)
		}
		if err = req.MarkProcessed(transactionID, processedAt); err != nil {
			return err
		}

		if err = balRepo.Update(ctx, bal); err != nil {
			return err
		}
		if err = reqRepo.Update(ctx, req); err != nil {
			return err
		}

		auditRow, err := ledger.NewBalanceTransaction(
			req.CompanyID, ledger.TransactionCashout, req.Amount, req.FeeAmount, processedAt,
		)
		if err != nil {
			return err
		}
		auditRow.Description = fmt.Sprintf("cashout via %s", req.PaymentMethod)
		auditRow.ReferenceID = transactionID
		if err = txRepo.Create(ctx, auditRow); err != nil {
			return err
		}

		return s.revenue.RecordCashoutFee(ctx, uow, req)
	})
	if err != nil {
		logger.Error("Process failed", "error", err)
		return nil, err
	}
	logger.Info("cashout request processed", "amount", req.Amount, "net", req.NetAmount)
	return req, nil
}

// List returns a company's cashout requests, optionally filtered by status.
// An unknown status filter is a validation error, not an empty result.
func (s *Service) List(ctx context.Context, companyID uuid.UUID, status ledger.CashoutStatus) ([]*ledger.CashoutRequest, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown cashout status %q", domain.ErrValidation, status)
	}
	repo, err := s.uow.CashoutRequestRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, companyID, status)
}

// ListWithStatistics returns the listing together with the company's
// aggregate block, so read surfaces serve both in one round trip.
func (s *Service) ListWithStatistics(
	ctx context.Context,
	companyID uuid.UUID,
	status ledger.CashoutStatus,
) ([]*ledger.CashoutRequest, *dto.CashoutStatistics, error) {
	requests, err := s.List(ctx, companyID, status)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.GetStatistics(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	return requests, stats, nil
}

// GetStatistics aggregates pending, approved and processed amounts for a
// company. Read-only.
func (s *Service) GetStatistics(ctx context.Context, companyID uuid.UUID) (*dto.CashoutStatistics, error) {
	repo, err := s.uow.CashoutRequestRepository()
	if err != nil {
		return nil, err
	}
	return repo.Statistics(ctx, companyID)
}

// resolveCashoutTerms returns the minimum cashout amount and fee percentage
// for a company, falling back to the platform configuration where the company
// has no settings row.
func (s *Service) resolveCashoutTerms(
	ctx context.Context,
	uow repository.UnitOfWork,
	companyID uuid.UUID,
) (minAmount, feePercent decimal.Decimal, err error) {
	settingsRepo, err := uow.CompanySettingsRepository()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	settings, err := settingsRepo.Get(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.cfg.MinCashoutAmount, s.cfg.CashoutFeePercent, nil
		}
		return decimal.Zero, decimal.Zero, err
	}
	return settings.MinCashoutAmount, settings.CashoutFeePercent, nil
}
