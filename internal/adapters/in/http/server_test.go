package http_test

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "deliverybot/internal/adapters/in/http"
	"deliverybot/internal/core/application/usecases/queries"
	"deliverybot/internal/core/domain/model/kernel"
)

func newTestServer(t *testing.T) (*httpadapter.Server, *echo.Echo) {
	t.Helper()

	origin, err := kernel.NewGeoPoint(55.683037, 37.661695)
	require.NoError(t, err)

	srv, err := httpadapter.NewServer(queries.GetActiveSessionsQueryHandler{}, origin)
	require.NoError(t, err)

	e := echo.New()
	srv.RegisterRoutes(e)
	return srv, e
}

func TestNewServer_InvalidOrigin(t *testing.T) {
	_, err := httpadapter.NewServer(queries.GetActiveSessionsQueryHandler{}, kernel.GeoPoint{})
	require.Error(t, err)
}

func TestServer_Health(t *testing.T) {
	_, e := newTestServer(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_GetTariffs(t *testing.T) {
	_, e := newTestServer(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/tariffs", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)

	var tiers []httpadapter.TariffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiers))
	require.Len(t, tiers, 5)

	assert.Equal(t, "Экспресс (до 20кг)", tiers[0].Name)
	assert.InDelta(t, 20, tiers[0].MaxWeightKg, 1e-9)
	assert.Equal(t, int64(1500), tiers[0].BaseFeeRub)
	assert.Equal(t, int64(60), tiers[0].PerKmRub)

	assert.Equal(t, "Карго XL (до 2000кг)", tiers[4].Name)
	assert.Equal(t, int64(3200), tiers[4].BaseFeeRub)

	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].MaxWeightKg, tiers[i-1].MaxWeightKg)
	}
}

func TestServer_CreateQuote(t *testing.T) {
	_, e := newTestServer(t)

	// destination equals the warehouse origin: zero distance, base fee only
	body := `{"weight_kg": 500, "latitude": 55.683037, "longitude": 37.661695}`

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/quote", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)

	var quote httpadapter.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))

	assert.NotEmpty(t, quote.QuoteID)
	assert.Equal(t, "Карго M (до 700кг)", quote.Tariff)
	assert.InDelta(t, 0, quote.DistanceKm, 1e-9)
	// 1850 * 1.2 = 2220, rounded up to 2500
	assert.Equal(t, int64(2500), quote.AmountRub)
	assert.Equal(t, "RUB", quote.Currency)
	assert.NotEmpty(t, quote.Explanation)
}

func TestServer_CreateQuote_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "malformed body",
			body:       `{"weight_kg": "heavy"}`,
			wantStatus: nethttp.StatusBadRequest,
		},
		{
			name:       "non-positive weight",
			body:       `{"weight_kg": 0, "latitude": 55.7, "longitude": 37.6}`,
			wantStatus: nethttp.StatusBadRequest,
		},
		{
			name:       "weight above the grid",
			body:       `{"weight_kg": 2500, "latitude": 55.7, "longitude": 37.6}`,
			wantStatus: nethttp.StatusUnprocessableEntity,
		},
		{
			name:       "out-of-range coordinates",
			body:       `{"weight_kg": 100, "latitude": 200, "longitude": 37.6}`,
			wantStatus: nethttp.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e := newTestServer(t)

			req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/quote", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var apiErr httpadapter.Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.Code)
			assert.NotEmpty(t, apiErr.Message)
		})
	}
}
