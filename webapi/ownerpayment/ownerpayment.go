// Package ownerpayment exposes the HTTP endpoints for manual owner payouts
// and expense deductions.
package ownerpayment

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyos/rentledger/pkg/config"
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/propertyos/rentledger/pkg/middleware"
	ownerpayoutsvc "github.com/propertyos/rentledger/pkg/service/ownerpayout"
	"github.com/propertyos/rentledger/webapi/common"
)

// Routes registers HTTP routes for owner payout operations.
//
// Routes:
//   - POST /owner-payments             : Record a manual payout to an owner.
//   - POST /owner-payments/expenses    : Deduct an expense from an owner's owed amount.
//   - GET  /owner-payments             : List payouts for a property owner.
//   - GET  /owner-payments/statistics  : Aggregate payout statistics for a company.
func Routes(app *fiber.App, svc *ownerpayoutsvc.Service, cfg *config.App) {
	app.Post("/owner-payments", middleware.JwtProtected(cfg.Auth.Jwt), MarkPayment(svc))
	app.Post("/owner-payments/expenses", middleware.JwtProtected(cfg.Auth.Jwt), DeductExpense(svc))
	app.Get("/owner-payments", middleware.JwtProtected(cfg.Auth.Jwt), List(svc))
	app.Get("/owner-payments/statistics", middleware.JwtProtected(cfg.Auth.Jwt), Statistics(svc))
}

// MarkPayment returns a Fiber handler recording a payout made to a property
// owner outside the platform, reducing the amount still owed to them.
func MarkPayment(svc *ownerpayoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := uuid.Parse(middleware.CurrentSubject(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[MarkPaymentRequest](c)
		if input == nil {
			return err // error response already written
		}
		ownerID, err := uuid.Parse(input.PropertyOwnerID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid property owner ID", err, fiber.StatusBadRequest)
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		var paymentDate time.Time
		if input.PaymentDate != "" {
			paymentDate, err = time.Parse(time.RFC3339, input.PaymentDate)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid payment date", err, "payment_date must be RFC 3339", fiber.StatusBadRequest)
			}
		}
		payment, err := svc.MarkPayment(c.UserContext(), dto.OwnerPaymentCreate{
			PropertyOwnerID: ownerID,
			Amount:          amount,
			PaymentDate:     paymentDate,
			PaymentMethod:   input.PaymentMethod,
			TransactionID:   input.TransactionID,
			Notes:           input.Notes,
			CreatedBy:       actorID,
		})
		if err != nil {
			log.Errorf("Failed to mark owner payment: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to mark owner payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Owner payment recorded", payment)
	}
}

// DeductExpense returns a Fiber handler charging a property expense against
// the owner's owed amount.
func DeductExpense(svc *ownerpayoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := uuid.Parse(middleware.CurrentSubject(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[DeductExpenseRequest](c)
		if input == nil {
			return err
		}
		ownerID, err := uuid.Parse(input.PropertyOwnerID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid property owner ID", err, fiber.StatusBadRequest)
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		if err := svc.DeductExpense(c.UserContext(), dto.ExpenseDeduct{
			PropertyOwnerID: ownerID,
			Amount:          amount,
			Description:     input.Description,
			CreatedBy:       actorID,
		}); err != nil {
			log.Errorf("Failed to deduct expense: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to deduct expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense deducted", nil)
	}
}

// List returns a Fiber handler listing payouts recorded for a property owner,
// with the owning company's aggregate block embedded.
func List(svc *ownerpayoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := uuid.Parse(c.Query("property_owner_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid property owner ID", err, fiber.StatusBadRequest)
		}
		payments, stats, err := svc.ListWithStatistics(c.UserContext(), ownerID)
		if err != nil {
			log.Errorf("Failed to list owner payments: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list owner payments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Owner payments", OwnerPaymentListResponse{
			Payments:   payments,
			Statistics: stats,
		})
	}
}

// Statistics returns a Fiber handler for the company's owner payout
// aggregates.
func Statistics(svc *ownerpayoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := uuid.Parse(c.Query("company_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		stats, err := svc.GetStatistics(c.UserContext(), companyID)
		if err != nil {
			log.Errorf("Failed to compute owner payment statistics: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to compute owner payment statistics", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Owner payment statistics", stats)
	}
}
