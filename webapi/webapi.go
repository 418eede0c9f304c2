// Package webapi provides the HTTP surface of the reconciliation engine.
// It is organized into sub-packages for different domains:
// - balance: Company and owner balance read endpoints
// - cashout: Cashout request lifecycle endpoints
// - ownerpayment: Owner payout and expense endpoints
// - payment: Payment-completion webhook
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/propertyos/rentledger/pkg/app"
	balanceweb "github.com/propertyos/rentledger/webapi/balance"
	cashoutweb "github.com/propertyos/rentledger/webapi/cashout"
	"github.com/propertyos/rentledger/webapi/common"
	ownerpaymentweb "github.com/propertyos/rentledger/webapi/ownerpayment"
	"github.com/propertyos/rentledger/webapi/payment"
	revenueweb "github.com/propertyos/rentledger/webapi/revenue"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        app.Config.RateLimit.MaxRequests,
		Expiration: app.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Rent ledger API is running")
		},
	)

	payment.Routes(fiberApp, app.ReconciliationService)
	balanceweb.Routes(fiberApp, app.BalanceService, app.Config)
	cashoutweb.Routes(fiberApp, app.CashoutService, app.Config)
	ownerpaymentweb.Routes(fiberApp, app.OwnerPayoutService, app.Config)
	revenueweb.Routes(fiberApp, app.RevenueRecorder, app.Config)
	return fiberApp
}
