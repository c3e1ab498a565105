package currency

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		External: config.ExternalConfig{
			FX: config.FXConfig{
				BaseURL:      baseURL,
				BaseCurrency: "USD",
				CacheTTL:     time.Hour,
			},
		},
	}
}

func rateServer(t *testing.T, hits *int32, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestConvert(t *testing.T) {
	var hits int32
	srv := rateServer(t, &hits, `{"result":"success","base_code":"USD","rates":{"USD":1,"PHP":56.0,"EUR":0.9}}`, http.StatusOK)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL))

	converted, ok := svc.Convert(100, "PHP")
	require.True(t, ok)
	require.Equal(t, int64(5600), converted)

	converted, ok = svc.Convert(2000, "EUR")
	require.True(t, ok)
	require.Equal(t, int64(1800), converted)
}

func TestConvertBaseCurrencyIsIdentity(t *testing.T) {
	var hits int32
	srv := rateServer(t, &hits, `{"rates":{"USD":1}}`, http.StatusOK)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL))

	converted, ok := svc.Convert(1234, "USD")
	require.True(t, ok)
	require.Equal(t, int64(1234), converted)
	require.Equal(t, int32(0), atomic.LoadInt32(&hits), "base currency conversion should not fetch rates")
}

func TestConvertUnknownCurrencyFallsBackOneToOne(t *testing.T) {
	var hits int32
	srv := rateServer(t, &hits, `{"rates":{"USD":1,"PHP":56.0}}`, http.StatusOK)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL))

	converted, ok := svc.Convert(999, "XYZ")
	require.False(t, ok)
	require.Equal(t, int64(999), converted)
}

func TestGetRatesCachesWithinTTL(t *testing.T) {
	var hits int32
	srv := rateServer(t, &hits, `{"rates":{"USD":1,"PHP":56.0}}`, http.StatusOK)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL))

	first, _ := svc.GetRates()
	second, _ := svc.GetRates()

	require.Equal(t, first, second)
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGetRatesServesStaleOnFetchFailure(t *testing.T) {
	var hits int32
	srv := rateServer(t, &hits, `{"rates":{"USD":1,"PHP":56.0}}`, http.StatusOK)

	cfg := testConfig(srv.URL)
	svc := NewService(cfg)

	rates, _ := svc.GetRates()
	require.Equal(t, 56.0, rates["PHP"])

	// Expire the cache and take the provider away.
	srv.Close()
	svc.mu.Lock()
	svc.fetchedAt = time.Now().Add(-2 * time.Hour)
	svc.mu.Unlock()

	stale, staleAt := svc.GetRates()
	require.Equal(t, rates, stale)
	require.False(t, staleAt.IsZero())

	converted, ok := svc.Convert(100, "PHP")
	require.True(t, ok)
	require.Equal(t, int64(5600), converted)
}

func TestGetRatesEmptyWhenNeverFetched(t *testing.T) {
	var hits int32
	srv := rateServer(t, &hits, `{"error":"boom"}`, http.StatusInternalServerError)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL))

	rates, _ := svc.GetRates()
	require.Nil(t, rates)

	converted, ok := svc.Convert(500, "PHP")
	require.False(t, ok)
	require.Equal(t, int64(500), converted)
}
