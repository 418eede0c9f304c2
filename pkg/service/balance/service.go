// Package balance creates and reads the balance rows the rest of the engine
// mutates. Creation happens once per company (at onboarding) and once per
// owner (when their first property is registered).
package balance

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/repository"
)

// Service creates and reads company and owner balances.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a balance service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// EnsureCompanyBalance creates the company's balance row if it does not exist
// yet. Safe to call more than once; only the first call inserts.
func (s *Service) EnsureCompanyBalance(ctx context.Context, companyID uuid.UUID) (*ledger.CompanyBalance, error) {
	var bal *ledger.CompanyBalance
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CompanyBalanceRepository()
		if err != nil {
			return err
		}
		bal, err = repo.Get(ctx, companyID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrCompanyBalanceNotFound) {
			return err
		}
		bal = ledger.NewCompanyBalance(companyID)
		if err = repo.Create(ctx, bal); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				bal, err = repo.Get(ctx, companyID)
			}
			return err
		}
		s.logger.Info("company balance created", "companyID", companyID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bal, nil
}

// EnsureOwnerBalance creates the owner's balance row if it does not exist yet.
func (s *Service) EnsureOwnerBalance(ctx context.Context, ownerID, companyID uuid.UUID) (*ledger.OwnerBalance, error) {
	var bal *ledger.OwnerBalance
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.OwnerBalanceRepository()
		if err != nil {
			return err
		}
		bal, err = repo.Get(ctx, ownerID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrOwnerBalanceNotFound) {
			return err
		}
		bal = ledger.NewOwnerBalance(ownerID, companyID)
		if err = repo.Create(ctx, bal); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				bal, err = repo.Get(ctx, ownerID)
			}
			return err
		}
		s.logger.Info("owner balance created", "ownerID", ownerID, "companyID", companyID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bal, nil
}

// GetCompanyBalance returns a company's balance row.
func (s *Service) GetCompanyBalance(ctx context.Context, companyID uuid.UUID) (*ledger.CompanyBalance, error) {
	repo, err := s.uow.CompanyBalanceRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, companyID)
}

// GetOwnerBalance returns an owner's balance row.
func (s *Service) GetOwnerBalance(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerBalance, error) {
	repo, err := s.uow.OwnerBalanceRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, ownerID)
}

// ListTransactions returns a company's audit ledger rows.
func (s *Service) ListTransactions(ctx context.Context, companyID uuid.UUID) ([]*ledger.BalanceTransaction, error) {
	repo, err := s.uow.BalanceTransactionRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByCompany(ctx, companyID)
}
