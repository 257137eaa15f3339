package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devacc8/cybership-carrier-service/internal/server"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const rateRequestJSON = `{
  "origin": {
    "name": "Acme Warehouse",
    "addressLines": ["123 Main St"],
    "city": "Timonium",
    "stateProvince": "MD",
    "postalCode": "21093",
    "countryCode": "US"
  },
  "destination": {
    "addressLines": ["456 Oak Ave"],
    "city": "Alpharetta",
    "stateProvince": "GA",
    "postalCode": "30005",
    "countryCode": "US"
  },
  "packages": [
    {"weight": {"value": 5, "unit": "LBS"}}
  ]
}`

func newTestHandler(carriers ...carrier.Carrier) http.Handler {
	registry := carrier.NewRegistry()
	for _, c := range carriers {
		registry.Register(c)
	}
	srv := server.New(server.Config{Port: 0}, registry, otelzap.New(zap.NewNop()), nil)
	return srv.Handler()
}

func decodeError(t *testing.T, body *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body.Body.Bytes(), &out))
	errObj, ok := out["error"].(map[string]any)
	require.True(t, ok, "response should carry an error object")
	return errObj
}

func TestServer_Health(t *testing.T) {
	handler := newTestHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Carriers(t *testing.T) {
	handler := newTestHandler(mock.New(carrier.CarrierUPS), mock.New(carrier.CarrierFedEx))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/carriers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Carriers []carrier.CarrierCode `json:"carriers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Carriers, 2)
	assert.Contains(t, out.Carriers, carrier.CarrierUPS)
	assert.Contains(t, out.Carriers, carrier.CarrierFedEx)
}

func TestServer_ShopRates(t *testing.T) {
	ups := mock.New(carrier.CarrierUPS)
	handler := newTestHandler(ups)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rates/shop",
		strings.NewReader(rateRequestJSON)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp carrier.RateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Quotes, 2)
	assert.Equal(t, 15.82, resp.Quotes[0].TotalCharges.Amount)
	assert.Equal(t, 1, ups.Calls())
}

func TestServer_GetRates_CarrierPathIsCaseInsensitive(t *testing.T) {
	ups := mock.New(carrier.CarrierUPS)
	handler := newTestHandler(ups)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rates/ups",
		strings.NewReader(rateRequestJSON)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ups.Calls())
}

func TestServer_GetRates_UnknownCarrier(t *testing.T) {
	handler := newTestHandler(mock.New(carrier.CarrierUPS))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rates/fedex",
		strings.NewReader(rateRequestJSON)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	errObj := decodeError(t, rec)
	assert.Equal(t, "CARRIER_NOT_FOUND", errObj["code"])
}

func TestServer_ShopRates_InvalidJSON(t *testing.T) {
	handler := newTestHandler(mock.New(carrier.CarrierUPS))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rates/shop",
		strings.NewReader(`{"origin":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := decodeError(t, rec)
	assert.Equal(t, "BAD_REQUEST", errObj["code"])
}

func TestServer_ShopRates_ValidationError(t *testing.T) {
	ups := mock.New(carrier.CarrierUPS)
	handler := newTestHandler(ups)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rates/shop",
		strings.NewReader(`{"origin":{},"destination":{},"packages":[]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	assert.Contains(t, errObj, "details")
	assert.Equal(t, 0, ups.Calls())
}

func TestServer_GetRates_CarrierErrorMapsToStatus(t *testing.T) {
	ups := mock.New(carrier.CarrierUPS)
	ups.Err = carrier.NewCarrierError(carrier.ErrCodeRateLimited, "UPS rate limit exceeded").
		WithCarrier(carrier.CarrierUPS).
		WithStatus(429).
		WithRetryable(true)
	handler := newTestHandler(ups)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rates/ups",
		strings.NewReader(rateRequestJSON)))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	errObj := decodeError(t, rec)
	assert.Equal(t, "RATE_LIMITED", errObj["code"])
	assert.Equal(t, "UPS", errObj["carrier"])
	assert.Equal(t, true, errObj["retryable"])
}

func TestServer_ShopRates_PartialFailureStillOK(t *testing.T) {
	ups := mock.New(carrier.CarrierUPS)
	fedex := mock.New(carrier.CarrierFedEx)
	fedex.Err = carrier.NewCarrierError(carrier.ErrCodeNetwork, "connection refused").
		WithCarrier(carrier.CarrierFedEx)
	handler := newTestHandler(ups, fedex)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rates/shop",
		strings.NewReader(rateRequestJSON)))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp carrier.RateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Quotes, 2)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "FEDEX")
}
