// Package cashout exposes the HTTP endpoints for company cashout requests.
package cashout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyos/rentledger/pkg/config"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/propertyos/rentledger/pkg/middleware"
	cashoutsvc "github.com/propertyos/rentledger/pkg/service/cashout"
	"github.com/propertyos/rentledger/webapi/common"
)

// Routes registers HTTP routes for cashout-related operations.
//
// Routes:
//   - POST   /cashout-requests               : Create a new cashout request.
//   - GET    /cashout-requests               : List cashout requests for a company.
//   - GET    /cashout-requests/statistics    : Aggregate cashout statistics for a company.
//   - PATCH  /cashout-requests/:id/approve   : Approve a pending request.
//   - PATCH  /cashout-requests/:id/reject    : Reject a pending request.
//   - PATCH  /cashout-requests/:id/process   : Settle an approved request.
func Routes(app *fiber.App, svc *cashoutsvc.Service, cfg *config.App) {
	app.Post("/cashout-requests", middleware.JwtProtected(cfg.Auth.Jwt), Create(svc))
	app.Get("/cashout-requests", middleware.JwtProtected(cfg.Auth.Jwt), List(svc))
	app.Get("/cashout-requests/statistics", middleware.JwtProtected(cfg.Auth.Jwt), Statistics(svc))
	app.Patch("/cashout-requests/:id/approve", middleware.JwtProtected(cfg.Auth.Jwt), Approve(svc))
	app.Patch("/cashout-requests/:id/reject", middleware.JwtProtected(cfg.Auth.Jwt), Reject(svc))
	app.Patch("/cashout-requests/:id/process", middleware.JwtProtected(cfg.Auth.Jwt), Process(svc))
}

// Create returns a Fiber handler that opens a cashout request against the
// company's available balance.
func Create(svc *cashoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCashoutRequest](c)
		if input == nil {
			return err // error response already written
		}
		companyID, err := uuid.Parse(input.CompanyID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		req, err := svc.CreateRequest(c.UserContext(), dto.CashoutCreate{
			CompanyID:      companyID,
			Amount:         amount,
			PaymentMethod:  input.PaymentMethod,
			PaymentDetails: input.PaymentDetails,
		})
		if err != nil {
			log.Errorf("Failed to create cashout request: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create cashout request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Cashout request created", req)
	}
}

// List returns a Fiber handler listing a company's cashout requests,
// optionally filtered by status, with the aggregate block embedded. An
// unknown status filter is a 400, not an empty list.
func List(svc *cashoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := uuid.Parse(c.Query("company_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		status := ledger.CashoutStatus(c.Query("status"))
		requests, stats, err := svc.ListWithStatistics(c.UserContext(), companyID, status)
		if err != nil {
			log.Errorf("Failed to list cashout requests: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list cashout requests", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cashout requests", CashoutListResponse{
			Requests:   requests,
			Statistics: stats,
		})
	}
}

// Statistics returns a Fiber handler for the company's cashout aggregates.
func Statistics(svc *cashoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := uuid.Parse(c.Query("company_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		stats, err := svc.GetStatistics(c.UserContext(), companyID)
		if err != nil {
			log.Errorf("Failed to compute cashout statistics: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to compute cashout statistics", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cashout statistics", stats)
	}
}

// Approve returns a Fiber handler moving a pending request to approved.
func Approve(svc *cashoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request ID", err, fiber.StatusBadRequest)
		}
		actorID, err := uuid.Parse(middleware.CurrentSubject(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, "missing user context", fiber.StatusUnauthorized)
		}
		req, err := svc.Approve(c.UserContext(), requestID, actorID)
		if err != nil {
			log.Errorf("Failed to approve cashout request %s: %v", requestID, err)
			return common.ProblemDetailsJSON(c, "Failed to approve cashout request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cashout request approved", req)
	}
}

// Reject returns a Fiber handler moving a pending request to rejected.
func Reject(svc *cashoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request ID", err, fiber.StatusBadRequest)
		}
		actorID, err := uuid.Parse(middleware.CurrentSubject(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[RejectCashoutRequest](c)
		if input == nil {
			return err
		}
		req, err := svc.Reject(c.UserContext(), requestID, actorID, input.Reason)
		if err != nil {
			log.Errorf("Failed to reject cashout request %s: %v", requestID, err)
			return common.ProblemDetailsJSON(c, "Failed to reject cashout request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cashout request rejected", req)
	}
}

// Process returns a Fiber handler settling an approved request: the balance
// is debited, the request is closed and the platform fee is recorded.
func Process(svc *cashoutsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ProcessCashoutRequest](c)
		if input == nil {
			return err
		}
		req, err := svc.Process(c.UserContext(), requestID, input.TransactionID)
		if err != nil {
			log.Errorf("Failed to process cashout request %s: %v", requestID, err)
			return common.ProblemDetailsJSON(c, "Failed to process cashout request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cashout request processed", req)
	}
}
