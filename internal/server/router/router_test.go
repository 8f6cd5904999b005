package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/buffercalc/internal/catalog"
	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/export"
	"github.com/mamadbah2/buffercalc/internal/i18n"
	"github.com/mamadbah2/buffercalc/internal/server/handlers"
	"github.com/mamadbah2/buffercalc/internal/service/recipe"
)

type stubMessaging struct {
	payloads []models.WebhookPayload
}

func (s *stubMessaging) VerifyWebhookToken(mode, token, challenge string) (string, error) {
	if mode == "subscribe" && token == "verify" {
		return challenge, nil
	}
	return "", assert.AnError
}

func (s *stubMessaging) HandleWebhook(_ context.Context, payload models.WebhookPayload) error {
	s.payloads = append(s.payloads, payload)
	return nil
}

func newEngine(t *testing.T, templatePath string, webhook *handlers.WebhookHandler) http.Handler {
	t.Helper()
	svc := recipe.NewService(catalog.NewStore(nil, nil, nil), nil,
		export.NewXLSXExporter(templatePath, export.DefaultLayout(), nil))
	return New(handlers.NewRecipeHandler(svc, i18n.English, nil), webhook, nil)
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthzAndRequestID(t *testing.T) {
	h := newEngine(t, "", nil)

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	const id = "0b6f3c52-2d53-4b8e-9f55-8f0a5f1c2b11"
	rec = do(t, h, http.MethodGet, "/healthz", nil, RequestIDHeader, id)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	rec = do(t, h, http.MethodGet, "/healthz", nil, RequestIDHeader, "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestCatalogEndpoint(t *testing.T) {
	rec := do(t, newEngine(t, "", nil), http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc catalog.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Len(t, doc.Stocks, 6)
	assert.Len(t, doc.Solids, 5)
}

func TestCalculateEndpoint(t *testing.T) {
	rec := do(t, newEngine(t, "", nil), http.MethodPost, "/api/calculate",
		models.CalculateRequest{Formula: "20 mM Tris, 150 mM NaCl", Volume: "1 L"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, rec.Header().Get(RequestIDHeader), resp.RequestID)
	assert.InDelta(t, 1000.0, resp.TotalVolumeML, 1e-9)
	assert.InDelta(t, 40.0, resp.TotalNonWaterML, 1e-9)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, models.ResultRow{Name: "Water", Target: "-", Volume: "960.00", Mass: "960.00"}, resp.Rows[2])
}

func TestCalculateLanguage(t *testing.T) {
	h := newEngine(t, "", nil)

	rec := do(t, h, http.MethodPost, "/api/calculate",
		models.CalculateRequest{Formula: "1 X PBS", Volume: "500 mL"}, "Accept-Language", "zh-CN,zh;q=0.9")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "水")

	rec = do(t, h, http.MethodPost, "/api/calculate",
		models.CalculateRequest{Formula: "1 X PBS", Volume: "500 mL", Lang: "en"}, "Accept-Language", "zh-CN")
	assert.Contains(t, rec.Body.String(), "Water")
}

func TestCalculateErrors(t *testing.T) {
	h := newEngine(t, "", nil)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"unit mismatch", models.CalculateRequest{Formula: "5 % NaCl", Volume: "1 L"}, http.StatusUnprocessableEntity, "unit_mismatch"},
		{"unknown reagent", models.CalculateRequest{Formula: "5 mM HEPES", Volume: "1 L"}, http.StatusUnprocessableEntity, "unknown_reagent"},
		{"empty recipe", models.CalculateRequest{Formula: ",,", Volume: "1 L"}, http.StatusUnprocessableEntity, "empty_recipe"},
		{"bad volume", models.CalculateRequest{Formula: "20 mM Tris", Volume: "lots"}, http.StatusUnprocessableEntity, "invalid_volume"},
		{"overflow", models.CalculateRequest{Formula: "9" + strings.Repeat("0", 307) + " M Tris", Volume: "1 L"}, http.StatusUnprocessableEntity, "out_of_range"},
		{"missing volume", map[string]string{"formula": "20 mM Tris"}, http.StatusBadRequest, "invalid_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/calculate", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestExportEndpoint(t *testing.T) {
	h := newEngine(t, "", nil)

	rec := do(t, h, http.MethodPost, "/api/export", models.CalculateRequest{Formula: "20 mM Tris", Volume: "1 L"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, export.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment"))
	assert.Equal(t, "PK", rec.Body.String()[:2])

	rec = do(t, h, http.MethodPost, "/api/export", models.CalculateRequest{Formula: "20 mM Tris", Volume: "1 L", Target: "sheets"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportFailure(t *testing.T) {
	h := newEngine(t, filepath.Join(t.TempDir(), "missing.xlsx"), nil)

	rec := do(t, h, http.MethodPost, "/api/export", models.CalculateRequest{Formula: "20 mM Tris", Volume: "1 L"})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "export_failed")
}

func TestWebhookRoutes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, do(t, newEngine(t, "", nil), http.MethodGet, "/webhook", nil).Code)

	messaging := &stubMessaging{}
	h := newEngine(t, "", handlers.NewWebhookHandler(messaging, nil))

	rec := do(t, h, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=verify&hub.challenge=abc", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=abc", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPost, "/webhook", models.WebhookPayload{Object: "whatsapp_business_account"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, messaging.payloads, 1)
}
