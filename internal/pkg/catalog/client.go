// internal/pkg/catalog/client.go
package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/your-org/sneakershop-backend/internal/config"
)

// Candidate is one external catalog search hit, normalized for import.
// RetailPrice is in cents.
type Candidate struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Gender       string `json:"gender"`
	Colorway     string `json:"colorway"`
	RetailPrice  int64  `json:"retail_price"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Client queries the external sneaker catalog API
type Client struct {
	config *config.Config
	client *http.Client
}

// NewClient creates a new catalog client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// searchResponse mirrors the catalog API payload
type searchResponse struct {
	Results []struct {
		SKU         string  `json:"sku"`
		Title       string  `json:"title"`
		Brand       string  `json:"brand"`
		Gender      string  `json:"gender"`
		Colorway    string  `json:"colorway"`
		RetailPrice float64 `json:"retail_price"`
		Image       string  `json:"image"`
		Thumbnail   string  `json:"thumbnail"`
	} `json:"results"`
}

// Search queries the external catalog. An unreachable or erroring API
// returns an error; callers degrade to an empty result set.
func (c *Client) Search(query string) ([]Candidate, error) {
	endpoint := fmt.Sprintf("%s?query=%s", c.config.External.Catalog.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	if c.config.External.Catalog.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.External.Catalog.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	candidates := make([]Candidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.SKU == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			SKU:          r.SKU,
			Name:         r.Title,
			Brand:        r.Brand,
			Gender:       r.Gender,
			Colorway:     r.Colorway,
			RetailPrice:  int64(r.RetailPrice * 100),
			ImageURL:     r.Image,
			ThumbnailURL: r.Thumbnail,
		})
	}

	return candidates, nil
}
