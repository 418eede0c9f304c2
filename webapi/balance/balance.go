// Package balance exposes the read-side HTTP endpoints for company and
// owner balances.
package balance

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/propertyos/rentledger/pkg/config"
	"github.com/propertyos/rentledger/pkg/middleware"
	balancesvc "github.com/propertyos/rentledger/pkg/service/balance"
	"github.com/propertyos/rentledger/webapi/common"
)

// Routes registers HTTP routes for balance rows.
//
// Routes:
//   - PUT /balances/companies/:id               : Ensure the company's balance row exists.
//   - GET /balances/companies/:id               : Company balance snapshot.
//   - GET /balances/companies/:id/transactions  : Company ledger history.
//   - PUT /balances/owners/:id                  : Ensure the owner's balance row exists.
//   - GET /balances/owners/:id                  : Owner balance snapshot.
func Routes(app *fiber.App, svc *balancesvc.Service, cfg *config.App) {
	app.Put("/balances/companies/:id", middleware.JwtProtected(cfg.Auth.Jwt), EnsureCompanyBalance(svc))
	app.Get("/balances/companies/:id", middleware.JwtProtected(cfg.Auth.Jwt), GetCompanyBalance(svc))
	app.Get("/balances/companies/:id/transactions", middleware.JwtProtected(cfg.Auth.Jwt), ListTransactions(svc))
	app.Put("/balances/owners/:id", middleware.JwtProtected(cfg.Auth.Jwt), EnsureOwnerBalance(svc))
	app.Get("/balances/owners/:id", middleware.JwtProtected(cfg.Auth.Jwt), GetOwnerBalance(svc))
}

// EnsureCompanyBalance returns a Fiber handler creating the company's balance
// row if it does not exist yet. Called at company onboarding; idempotent.
func EnsureCompanyBalance(svc *balancesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		bal, err := svc.EnsureCompanyBalance(c.UserContext(), companyID)
		if err != nil {
			log.Errorf("Failed to ensure company balance %s: %v", companyID, err)
			return common.ProblemDetailsJSON(c, "Failed to ensure company balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Company balance ensured", bal)
	}
}

// EnsureOwnerBalance returns a Fiber handler creating the owner's balance row
// if it does not exist yet. Called when the owner's first property is
// registered; idempotent.
func EnsureOwnerBalance(svc *balancesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid property owner ID", err, fiber.StatusBadRequest)
		}
		companyID, err := uuid.Parse(c.Query("company_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		bal, err := svc.EnsureOwnerBalance(c.UserContext(), ownerID, companyID)
		if err != nil {
			log.Errorf("Failed to ensure owner balance %s: %v", ownerID, err)
			return common.ProblemDetailsJSON(c, "Failed to ensure owner balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Owner balance ensured", bal)
	}
}

// GetCompanyBalance returns a Fiber handler for reading a company's balance.
func GetCompanyBalance(svc *balancesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		bal, err := svc.GetCompanyBalance(c.UserContext(), companyID)
		if err != nil {
			log.Errorf("Failed to get company balance %s: %v", companyID, err)
			return common.ProblemDetailsJSON(c, "Failed to get company balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Company balance", bal)
	}
}

// ListTransactions returns a Fiber handler for a company's ledger history,
// newest first.
func ListTransactions(svc *balancesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		txs, err := svc.ListTransactions(c.UserContext(), companyID)
		if err != nil {
			log.Errorf("Failed to list transactions for company %s: %v", companyID, err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance transactions", txs)
	}
}

// GetOwnerBalance returns a Fiber handler for reading an owner's balance.
func GetOwnerBalance(svc *balancesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid property owner ID", err, fiber.StatusBadRequest)
		}
		bal, err := svc.GetOwnerBalance(c.UserContext(), ownerID)
		if err != nil {
			log.Errorf("Failed to get owner balance %s: %v", ownerID, err)
			return common.ProblemDetailsJSON(c, "Failed to get owner balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Owner balance", bal)
	}
}
