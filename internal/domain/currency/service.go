// internal/domain/currency/service.go
package currency

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/sneakershop-backend/internal/config"
)

// Service converts base-currency (USD) amounts using rates fetched from an
// external provider. The rate table is a single process-wide cache slot with
// an age-based refresh: a fresh slot is served as-is, an expired slot
// triggers a refetch, and a failed refetch falls back to the stale slot
// rather than failing the request. There is no single-flight deduplication;
// concurrent refreshes each hit the provider and the last write wins.
type Service struct {
	config *config.Config
	client *http.Client

	mu        sync.RWMutex
	rates     map[string]float64
	fetchedAt time.Time
}

// NewService creates a new currency service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ratesResponse mirrors the provider's JSON payload
type ratesResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// GetRates returns the rate table against the base currency. Returns the
// cached table when younger than the configured TTL; otherwise refetches.
// On refetch failure the stale table is returned if one exists, else nil,
// and the caller must treat missing rates as "rate unknown".
func (s *Service) GetRates() (map[string]float64, time.Time) {
	s.mu.RLock()
	rates, fetchedAt := s.rates, s.fetchedAt
	s.mu.RUnlock()

	if rates != nil && time.Since(fetchedAt) < s.config.External.FX.CacheTTL {
		return rates, fetchedAt
	}

	fresh, err := s.fetchRates()
	if err != nil {
		logrus.WithError(err).Warn("currency rate refresh failed, serving stale rates")
		return rates, fetchedAt
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.rates = fresh
	s.fetchedAt = now
	s.mu.Unlock()

	return fresh, now
}

// Convert converts an amount in base-currency cents to the target currency.
// The second return value is false when no rate is known for the code, in
// which case the amount is returned unconverted (1:1 fallback) and the
// caller should surface a warning.
func (s *Service) Convert(amount int64, code string) (int64, bool) {
	if code == "" || code == s.config.External.FX.BaseCurrency {
		return amount, true
	}

	rates, _ := s.GetRates()
	rate, ok := rates[code]
	if !ok || rate <= 0 {
		return amount, false
	}

	return int64(math.Round(float64(amount) * rate)), true
}

func (s *Service) fetchRates() (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", s.config.External.FX.BaseURL, s.config.External.FX.BaseCurrency)

	resp, err := s.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to reach rate provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}

	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates")
	}

	return payload.Rates, nil
}
