package payment_test

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyos/rentledger/internal/fixtures/fakes"
	"github.com/propertyos/rentledger/pkg/config"
	"github.com/propertyos/rentledger/pkg/domain/ledger"
	"github.com/propertyos/rentledger/pkg/dto"
	"github.com/propertyos/rentledger/pkg/service/reconciliation"
	"github.com/propertyos/rentledger/webapi/payment"
)

type webhookFixture struct {
	app       *fiber.App
	uow       *fakes.UoW
	companyID uuid.UUID
	ownerID   uuid.UUID
	leaseID   uuid.UUID
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	uow := fakes.NewUoW()
	companyID := uuid.New()
	ownerID := uuid.New()
	leaseID := uuid.New()
	rate := decimal.RequireFromString("10")

	uow.CompanyBalances[companyID] = ledger.NewCompanyBalance(companyID)
	uow.OwnerBalances[ownerID] = ledger.NewOwnerBalance(ownerID, companyID)
	uow.SeedLease(leaseID, dto.PaymentContext{
		PropertyID:        uuid.New(),
		PropertyOwnerID:   ownerID,
		CommissionPercent: &rate,
	})

	svc := reconciliation.New(uow, &config.Fee{ReconcileMaxRetries: 3}, slog.Default())
	app := fiber.New()
	payment.Routes(app, svc)
	return &webhookFixture{app: app, uow: uow, companyID: companyID, ownerID: ownerID, leaseID: leaseID}
}

func (f *webhookFixture) eventBody(paymentID uuid.UUID, amount, status string) string {
	return fmt.Sprintf(`{
		"payment_id": %q,
		"lease_id": %q,
		"company_id": %q,
		"renter_id": %q,
		"amount": %q,
		"payment_type": "rent",
		"status": %q,
		"completed_at": "2026-05-01T08:30:00Z"
	}`, paymentID, f.leaseID, f.companyID, uuid.New(), amount, status)
}

func (f *webhookFixture) post(t *testing.T, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment-completion", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCompletionWebhook(t *testing.T) {
	f := newWebhookFixture(t)
	paymentID := uuid.New()

	resp := f.post(t, f.eventBody(paymentID, "50000", "completed"))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.True(t, f.uow.CompanyBalances[f.companyID].AvailableBalance.Equal(decimal.NewFromInt(5000)))
	assert.True(t, f.uow.OwnerBalances[f.ownerID].AmountOwed.Equal(decimal.NewFromInt(45000)))
	_, reconciled := f.uow.FeeRecords[paymentID]
	assert.True(t, reconciled)
}

func TestCompletionWebhook_ReplayIsAcknowledged(t *testing.T) {
	f := newWebhookFixture(t)
	paymentID := uuid.New()
	body := f.eventBody(paymentID, "50000", "completed")

	first := f.post(t, body)
	defer first.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, first.StatusCode)

	second := f.post(t, body)
	defer second.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, second.StatusCode)

	assert.True(t, f.uow.CompanyBalances[f.companyID].AvailableBalance.Equal(decimal.NewFromInt(5000)),
		"replayed delivery must not credit twice")
}

func TestCompletionWebhook_RejectsNonCompletedStatus(t *testing.T) {
	f := newWebhookFixture(t)

	resp := f.post(t, f.eventBody(uuid.New(), "50000", "pending"))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, f.uow.FeeRecords)
}

func TestCompletionWebhook_RejectsMalformedBody(t *testing.T) {
	f := newWebhookFixture(t)

	resp := f.post(t, `{"payment_id": "not-a-uuid"}`)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
