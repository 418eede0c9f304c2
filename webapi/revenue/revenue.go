// Package revenue exposes the platform revenue endpoints.
package revenue

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyos/rentledger/pkg/config"
	"github.com/propertyos/rentledger/pkg/middleware"
	revenuesvc "github.com/propertyos/rentledger/pkg/service/revenue"
	"github.com/propertyos/rentledger/webapi/common"
)

//revive:disable

// SubscriptionChargeRequest represents the request body for recording a
// collected subscription charge.
type SubscriptionChargeRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid4"`
	Amount    string `json:"amount" validate:"required"`
}

//revive:enable

// Routes registers HTTP routes for platform revenue.
//
// Routes:
//   - POST /platform-revenue/subscriptions : Record a collected subscription charge.
func Routes(app *fiber.App, rec *revenuesvc.Recorder, cfg *config.App) {
	app.Post("/platform-revenue/subscriptions", middleware.JwtProtected(cfg.Auth.Jwt), RecordSubscription(rec))
}

// RecordSubscription returns a Fiber handler appending a subscription charge
// to the platform revenue ledger.
func RecordSubscription(rec *revenuesvc.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SubscriptionChargeRequest](c)
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
		if err := rec.RecordSubscription(c.UserContext(), companyID, amount); err != nil {
			log.Errorf("Failed to record subscription revenue: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to record subscription revenue", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Subscription revenue recorded", nil)
	}
}
