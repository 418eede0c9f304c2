// Package fakes provides an in-memory UnitOfWork and repository set for
// service and handler tests. State is held in maps keyed the same way the
// real schema is, so multi-step scenarios can assert on end state instead of
// call expectations.
package fakes

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/propertyos/rentledger/pkg/repository"
)

// UoW is the in-memory unit of work. Not safe for concurrent use; tests
// drive it from a single goroutine.
type UoW struct {
	CompanyBalances map[uuid.UUID]*ledger.CompanyBalance // keyed by company id
	OwnerBalances   map[uuid.UUID]*ledger.OwnerBalance   // keyed by owner id
	FeeRecords      map[uuid.UUID]*ledger.PlatformFeeRecord
	Transactions    []*ledger.BalanceTransaction
	CashoutRequests map[uuid.UUID]*ledger.CashoutRequest
	OwnerPayments   []*ledger.OwnerPayment
	Revenues        []*ledger.PlatformRevenue
	Leases          map[uuid.UUID]*dto.PaymentContext
	Settings        map[uuid.UUID]*dto.CompanySettings

	// DoErr, when set, makes Do fail before running its function.
	DoErr error
}

// NewUoW returns an empty in-memory unit of work.
func NewUoW() *UoW {
	return &UoW{
		CompanyBalances: make(map[uuid.UUID]*ledger.CompanyBalance),
		OwnerBalances:   make(map[uuid.UUID]*ledger.OwnerBalance),
		FeeRecords:      make(map[uuid.UUID]*ledger.PlatformFeeRecord),
		CashoutRequests: make(map[uuid.UUID]*ledger.CashoutRequest),
		Leases:          make(map[uuid.UUID]*dto.PaymentContext),
		Settings:        make(map[uuid.UUID]*dto.CompanySettings),
	}
}

var _ repository.UnitOfWork = (*UoW)(nil)

// Do runs fn against the same store. Rollback is not simulated; tests that
// care about partial failure assert the service left state untouched.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.DoErr != nil {
		return u.DoErr
	}
	return fn(u)
}

func (u *UoW) CompanyBalanceRepository() (repository.CompanyBalanceRepository, error) {
	return &companyBalanceRepo{u}, nil
}

func (u *UoW) OwnerBalanceRepository() (repository.OwnerBalanceRepository, error) {
	return &ownerBalanceRepo{u}, nil
}

func (u *UoW) PlatformFeeRepository() (repository.PlatformFeeRepository, error) {
	return &platformFeeRepo{u}, nil
}

func (u *UoW) BalanceTransactionRepository() (repository.BalanceTransactionRepository, error) {
	return &balanceTransactionRepo{u}, nil
}

func (u *UoW) CashoutRequestRepository() (repository.CashoutRequestRepository, error) {
	return &cashoutRequestRepo{u}, nil
}

func (u *UoW) OwnerPaymentRepository() (repository.OwnerPaymentRepository, error) {
	return &ownerPaymentRepo{u}, nil
}

func (u *UoW) PlatformRevenueRepository() (repository.PlatformRevenueRepository, error) {
	return &platformRevenueRepo{u}, nil
}

func (u *UoW) PaymentContextRepository() (repository.PaymentContextRepository, error) {
	return &paymentContextRepo{u}, nil
}

func (u *UoW) CompanySettingsRepository() (repository.CompanySettingsRepository, error) {
	return &companySettingsRepo{u}, nil
}

// SeedLease registers a lease -> property -> owner chain for reconciliation.
func (u *UoW) SeedLease(leaseID uuid.UUID, ctx dto.PaymentContext) {
	u.Leases[leaseID] = &ctx
}

// SeedSettings registers company-level fee settings.
func (u *UoW) SeedSettings(s dto.CompanySettings) {
	u.Settings[s.CompanyID] = &s
}

type companyBalanceRepo struct{ u *UoW }

func (r *companyBalanceRepo) Get(ctx context.Context, companyID uuid.UUID) (*ledger.CompanyBalance, error) {
	b, ok := r.u.CompanyBalances[companyID]
	if !ok {
		return nil, domain.ErrCompanyBalanceNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *companyBalanceRepo) GetForUpdate(ctx context.Context, companyID uuid.UUID) (*ledger.CompanyBalance, error) {
	return r.Get(ctx, companyID)
}

func (r *companyBalanceRepo) Create(ctx context.Context, b *ledger.CompanyBalance) error {
	if _, ok := r.u.CompanyBalances[b.CompanyID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *b
	r.u.CompanyBalances[b.CompanyID] = &cp
	return nil
}

func (r *companyBalanceRepo) Update(ctx context.Context, b *ledger.CompanyBalance) error {
	if _, ok := r.u.CompanyBalances[b.CompanyID]; !ok {
		return domain.ErrCompanyBalanceNotFound
	}
	cp := *b
	r.u.CompanyBalances[b.CompanyID] = &cp
	return nil
}

type ownerBalanceRepo struct{ u *UoW }

func (r *ownerBalanceRepo) Get(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerBalance, error) {
	b, ok := r.u.OwnerBalances[ownerID]
	if !ok {
		return nil, domain.ErrOwnerBalanceNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *ownerBalanceRepo) GetForUpdate(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerBalance, error) {
	return r.Get(ctx, ownerID)
}

func (r *ownerBalanceRepo) Create(ctx context.Context, b *ledger.OwnerBalance) error {
	if _, ok := r.u.OwnerBalances[b.PropertyOwnerID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *b
	r.u.OwnerBalances[b.PropertyOwnerID] = &cp
	return nil
}

func (r *ownerBalanceRepo) Update(ctx context.Context, b *ledger.OwnerBalance) error {
	if _, ok := r.u.OwnerBalances[b.PropertyOwnerID]; !ok {
		return domain.ErrOwnerBalanceNotFound
	}
	cp := *b
	r.u.OwnerBalances[b.PropertyOwnerID] = &cp
	return nil
}

type platformFeeRepo struct{ u *UoW }

func (r *platformFeeRepo) Create(ctx context.Context, rec *ledger.PlatformFeeRecord) error {
	if _, ok := r.u.FeeRecords[rec.PaymentID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *rec
	r.u.FeeRecords[rec.PaymentID] = &cp
	return nil
}

func (r *platformFeeRepo) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*ledger.PlatformFeeRecord, error) {
	rec, ok := r.u.FeeRecords[paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *platformFeeRepo) ExistsForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	_, ok := r.u.FeeRecords[paymentID]
	return ok, nil
}

func (r *platformFeeRepo) Update(ctx context.Context, rec *ledger.PlatformFeeRecord) error {
	if _, ok := r.u.FeeRecords[rec.PaymentID]; !ok {
		return domain.ErrNotFound
	}
	cp := *rec
	r.u.FeeRecords[rec.PaymentID] = &cp
	return nil
}

type balanceTransactionRepo struct{ u *UoW }

func (r *balanceTransactionRepo) Create(ctx context.Context, t *ledger.BalanceTransaction) error {
	cp := *t
	r.u.Transactions = append(r.u.Transactions, &cp)
	return nil
}

func (r *balanceTransactionRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*ledger.BalanceTransaction, error) {
	var out []*ledger.BalanceTransaction
	for _, t := range r.u.Transactions {
		if t.CompanyID == companyID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	return out, nil
}

type cashoutRequestRepo struct{ u *UoW }

func (r *cashoutRequestRepo) Create(ctx context.Context, req *ledger.CashoutRequest) error {
	if _, ok := r.u.CashoutRequests[req.ID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *req
	r.u.CashoutRequests[req.ID] = &cp
	return nil
}

func (r *cashoutRequestRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.CashoutRequest, error) {
	req, ok := r.u.CashoutRequests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *cashoutRequestRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.CashoutRequest, error) {
	return r.Get(ctx, id)
}

func (r *cashoutRequestRepo) Update(ctx context.Context, req *ledger.CashoutRequest) error {
	if _, ok := r.u.CashoutRequests[req.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *req
	r.u.CashoutRequests[req.ID] = &cp
	return nil
}

func (r *cashoutRequestRepo) List(ctx context.Context, companyID uuid.UUID, status ledger.CashoutStatus) ([]*ledger.CashoutRequest, error) {
	var out []*ledger.CashoutRequest
	for _, req := range r.u.CashoutRequests {
		if req.CompanyID != companyID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *cashoutRequestRepo) Statistics(ctx context.Context, companyID uuid.UUID) (*dto.CashoutStatistics, error) {
	stats := &dto.CashoutStatistics{}
	for _, req := range r.u.CashoutRequests {
		if req.CompanyID != companyID {
			continue
		}
		switch req.Status {
		case ledger.CashoutPending:
			stats.PendingAmount = stats.PendingAmount.Add(req.Amount)
		case ledger.CashoutApproved:
			stats.ApprovedAmount = stats.ApprovedAmount.Add(req.Amount)
		case ledger.CashoutProcessed:
			stats.TotalCashedOut = stats.TotalCashedOut.Add(req.NetAmount)
			stats.TotalFeesPaid = stats.TotalFeesPaid.Add(req.FeeAmount)
		}
	}
	return stats, nil
}

type ownerPaymentRepo struct{ u *UoW }

func (r *ownerPaymentRepo) Create(ctx context.Context, p *ledger.OwnerPayment) error {
	cp := *p
	r.u.OwnerPayments = append(r.u.OwnerPayments, &cp)
	return nil
}

func (r *ownerPaymentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ledger.OwnerPayment, error) {
	var out []*ledger.OwnerPayment
	for _, p := range r.u.OwnerPayments {
		if p.PropertyOwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PaymentDate.After(out[j].PaymentDate)
	})
	return out, nil
}

func (r *ownerPaymentRepo) Statistics(ctx context.Context, companyID uuid.UUID, now time.Time) (*dto.OwnerPaymentStatistics, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	stats := &dto.OwnerPaymentStatistics{
		TotalPaid: decimal.Zero,
		ThisMonth: decimal.Zero,
		LastMonth: decimal.Zero,
	}
	for _, p := range r.u.OwnerPayments {
		if p.CompanyID != companyID {
			continue
		}
		stats.TotalPaid = stats.TotalPaid.Add(p.Amount)
		switch {
		case !p.PaymentDate.Before(monthStart):
			stats.ThisMonth = stats.ThisMonth.Add(p.Amount)
		case !p.PaymentDate.Before(prevMonthStart):
			stats.LastMonth = stats.LastMonth.Add(p.Amount)
		}
	}
	return stats, nil
}

type platformRevenueRepo struct{ u *UoW }

func (r *platformRevenueRepo) Create(ctx context.Context, rec *ledger.PlatformRevenue) error {
	cp := *rec
	r.u.Revenues = append(r.u.Revenues, &cp)
	return nil
}

func (r *platformRevenueRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*ledger.PlatformRevenue, error) {
	var out []*ledger.PlatformRevenue
	for _, rec := range r.u.Revenues {
		if rec.CompanyID == companyID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

type paymentContextRepo struct{ u *UoW }

func (r *paymentContextRepo) ResolveLease(ctx context.Context, leaseID uuid.UUID) (*dto.PaymentContext, error) {
	pc, ok := r.u.Leases[leaseID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *pc
	return &cp, nil
}

type companySettingsRepo struct{ u *UoW }

func (r *companySettingsRepo) Get(ctx context.Context, companyID uuid.UUID) (*dto.CompanySettings, error) {
	s, ok := r.u.Settings[companyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}
