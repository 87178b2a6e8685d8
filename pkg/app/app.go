// Package app assembles the minibank services from their infrastructure
// dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/domain/transfer"
	"github.com/amirasaad/minibank/pkg/provider/exchange"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/amirasaad/minibank/pkg/service/account"
	currencysvc "github.com/amirasaad/minibank/pkg/service/currency"
	"github.com/amirasaad/minibank/pkg/service/user"
	"github.com/shopspring/decimal"
)

// Deps holds the infrastructure the services are built on.
type Deps struct {
	Uow        repository.UnitOfWork
	RateSource exchange.RateSource
	Logger     *slog.Logger
}

type App struct {
	Deps            *Deps
	Config          *config.App
	UserService     *user.Service
	AccountService  *account.Service
	CurrencyService *currencysvc.Converter
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}

	rate := transfer.DefaultCommissionRate
	if cfg != nil && cfg.Fee != nil {
		rate = decimal.NewFromFloat(cfg.Fee.CommissionRate)
	}

	app.CurrencyService = currencysvc.NewConverter(deps.RateSource, deps.Logger)
	app.UserService = user.New(deps.Uow, deps.Logger)
	app.AccountService = account.NewService(
		deps.Uow,
		app.CurrencyService,
		transfer.NewPolicy(rate),
		deps.Logger,
	)
	return app
}
