package app

import (
	"log/slog"

	"github.com/propertyos/rentledger/pkg/config"
	"github.com/propertyos/rentledger/pkg/repository"
	"github.com/propertyos/rentledger/pkg/service/balance"
	"github.com/propertyos/rentledger/pkg/service/cashout"
	"github.com/propertyos/rentledger/pkg/service/ownerpayout"
	"github.com/propertyos/rentledger/pkg/service/reconciliation"
	"github.com/propertyos/rentledger/pkg/service/revenue"
)

// Deps contains the shared dependencies the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

type App struct {
	Deps                  *Deps
	Config                *config.App
	BalanceService        *balance.Service
	ReconciliationService *reconciliation.Service
	CashoutService        *cashout.Service
	OwnerPayoutService    *ownerpayout.Service
	RevenueRecorder       *revenue.Recorder
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.BalanceService = balance.New(deps.Uow, deps.Logger)
	app.ReconciliationService = reconciliation.New(deps.Uow, cfg.Fee, deps.Logger)
	app.RevenueRecorder = revenue.New(deps.Uow, deps.Logger)
	app.CashoutService = cashout.New(deps.Uow, cfg.Fee, app.RevenueRecorder, deps.Logger)
	app.OwnerPayoutService = ownerpayout.New(deps.Uow, deps.Logger)
	return app
}
