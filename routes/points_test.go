package routes

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewApp() *fiber.App {
	app := fiber.New()
	SetupPointsRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestPreviewInvestmentPoints(t *testing.T) {
	app := previewApp()

	status, out := postJSON(t, app, "/points/preview/investment",
		`{"type":"ruche","amount_eur":50,"partner":"habeebee","bonus_percentage":30}`)
	assert.Equal(t, 200, status)
	assert.EqualValues(t, 50, out["base_points"])
	assert.EqualValues(t, 15, out["bonus_points"])
	assert.EqualValues(t, 65, out["total_points"])
	assert.EqualValues(t, 65, out["euro_value_equivalent"])
	assert.Equal(t, "ruche", out["investment_type"])
}

func TestPreviewInvestmentPoints_Errors(t *testing.T) {
	app := previewApp()

	t.Run("montant nul", func(t *testing.T) {
		status, out := postJSON(t, app, "/points/preview/investment",
			`{"type":"ruche","amount_eur":0,"bonus_percentage":30}`)
		assert.Equal(t, 400, status)
		assert.Equal(t, "invalid_amount", out["kind"])
	})

	t.Run("bonus négatif", func(t *testing.T) {
		status, out := postJSON(t, app, "/points/preview/investment",
			`{"type":"ruche","amount_eur":50,"bonus_percentage":-10}`)
		assert.Equal(t, 400, status)
		assert.Equal(t, "invalid_bonus_percentage", out["kind"])
	})
}

func TestPreviewSubscriptionPoints(t *testing.T) {
	app := previewApp()

	status, out := postJSON(t, app, "/points/preview/subscription",
		`{"type":"ambassadeur_standard","billing_frequency":"monthly","amount_eur":18,"bonus_percentage":20}`)
	assert.Equal(t, 200, status)
	assert.EqualValues(t, 18, out["base_points"])
	assert.EqualValues(t, 4, out["bonus_points"])
	assert.EqualValues(t, 22, out["total_points"])
}

func TestPreviewSubscriptionPoints_Errors(t *testing.T) {
	app := previewApp()

	t.Run("formule inconnue", func(t *testing.T) {
		status, out := postJSON(t, app, "/points/preview/subscription",
			`{"type":"invalid_type","billing_frequency":"monthly","amount_eur":18,"bonus_percentage":20}`)
		assert.Equal(t, 400, status)
		assert.Equal(t, "invalid_subscription_type", out["kind"])
	})

	t.Run("cadence inconnue", func(t *testing.T) {
		status, out := postJSON(t, app, "/points/preview/subscription",
			`{"type":"ambassadeur_standard","billing_frequency":"weekly","amount_eur":18,"bonus_percentage":20}`)
		assert.Equal(t, 400, status)
		assert.Equal(t, "invalid_billing_frequency", out["kind"])
	})
}
