// Package payment receives payment-completion events from the payment layer
// and feeds them into balance reconciliation.
package payment

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyos/rentledger/pkg/dto"
	reconciliationsvc "github.com/propertyos/rentledger/pkg/service/reconciliation"
	"github.com/propertyos/rentledger/webapi/common"
)

//revive:disable

// CompletionEvent represents the payment-completed webhook body. Delivery is
// at-least-once, so replays of the same payment_id are acknowledged without
// effect.
type CompletionEvent struct {
	PaymentID   string `json:"payment_id" validate:"required,uuid4"`
	LeaseID     string `json:"lease_id" validate:"required,uuid4"`
	CompanyID   string `json:"company_id" validate:"required,uuid4"`
	RenterID    string `json:"renter_id" validate:"required,uuid4"`
	Amount      string `json:"amount" validate:"required"`
	PaymentType string `json:"payment_type" validate:"required,min=2,max=32"`
	Status      string `json:"status" validate:"required"`
	CompletedAt string `json:"completed_at" validate:"required"`
}

//revive:enable

// CompletionWebhookHandler handles incoming payment-completion events.
func CompletionWebhookHandler(svc *reconciliationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CompletionEvent](c)
		if input == nil {
			return err // error response already written
		}
		event, err := input.toCompletedPayment()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payment event", err, fiber.StatusBadRequest)
		}
		if err := svc.ReconcilePayment(c.UserContext(), *event); err != nil {
			log.Errorf("Failed to reconcile payment %s: %v", event.PaymentID, err)
			return common.ProblemDetailsJSON(c, "Failed to reconcile payment", err)
		}
		// Acknowledge receipt so the payment layer stops redelivering.
		return c.SendStatus(fiber.StatusOK)
	}
}

// Routes sets up the payment webhook routes.
func Routes(app *fiber.App, svc *reconciliationsvc.Service) {
	app.Post("/webhooks/payment-completion", CompletionWebhookHandler(svc))
}

func (e *CompletionEvent) toCompletedPayment() (*dto.CompletedPayment, error) {
	paymentID, err := uuid.Parse(e.PaymentID)
	if err != nil {
		return nil, err
	}
	leaseID, err := uuid.Parse(e.LeaseID)
	if err != nil {
		return nil, err
	}
	companyID, err := uuid.Parse(e.CompanyID)
	if err != nil {
		return nil, err
	}
	renterID, err := uuid.Parse(e.RenterID)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(e.Amount)
	if err != nil {
		return nil, err
	}
	completedAt, err := time.Parse(time.RFC3339, e.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &dto.CompletedPayment{
		PaymentID:   paymentID,
		LeaseID:     leaseID,
		CompanyID:   companyID,
		RenterID:    renterID,
		Amount:      amount,
		PaymentType: e.PaymentType,
		Status:      e.Status,
		CompletedAt: completedAt,
	}, nil
}
