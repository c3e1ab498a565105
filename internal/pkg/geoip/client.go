// internal/pkg/geoip/client.go
package geoip

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/your-org/sneakershop-backend/internal/config"
)

// Location is the subset of the geo lookup the store cares about:
// enough to suggest a display currency for the visitor.
type Location struct {
	CountryCode string `json:"countryCode"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
}

// Client resolves visitor IPs to a coarse location
type Client struct {
	config *config.Config
	client *http.Client
}

// NewClient creates a new geoip client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type lookupResponse struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
}

// Lookup resolves an IP address. Private or unroutable addresses and any
// upstream failure return an error; callers fall back to the store default.
func (c *Client) Lookup(ip string) (*Location, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=status,countryCode,country,currency", c.config.External.GeoIP.BaseURL, ip)

	resp, err := c.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoip lookup returned status %d", resp.StatusCode)
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geoip response: %w", err)
	}

	if payload.Status != "success" {
		return nil, fmt.Errorf("geoip lookup failed for %s", ip)
	}

	return &Location{
		CountryCode: payload.CountryCode,
		Country:     payload.Country,
		Currency:    payload.Currency,
	}, nil
}
