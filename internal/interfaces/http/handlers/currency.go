// internal/interfaces/http/handlers/currency.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/currency"
	"github.com/your-org/sneakershop-backend/internal/pkg/geoip"
)

// CurrencyHandler handles exchange rates and locale detection
type CurrencyHandler struct {
	currencyService *currency.Service
	geoipClient     *geoip.Client
	config          *config.Config
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(currencyService *currency.Service, cfg *config.Config) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
		geoipClient:     geoip.NewClient(cfg),
		config:          cfg,
	}
}

// GetRates handles GET /currency/rates
func (h *CurrencyHandler) GetRates(c *gin.Context) {
	rates, fetchedAt := h.currencyService.GetRates()

	c.JSON(http.StatusOK, gin.H{
		"message": "Rates retrieved successfully",
		"data": gin.H{
			"base_currency": h.config.External.FX.BaseCurrency,
			"rates":         rates,
			"fetched_at":    fetchedAt,
		},
	})
}

// Convert handles GET /currency/convert?amount=<cents>&to=<code>. When no
// rate is known for the target the amount comes back unconverted with a
// warning so the storefront can still render a price.
func (h *CurrencyHandler) Convert(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid amount",
		})
		return
	}

	code := c.Query("to")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Target currency is required",
		})
		return
	}

	converted, known := h.currencyService.Convert(amount, code)
	resp := gin.H{
		"amount":    converted,
		"currency":  code,
		"converted": known,
	}
	if !known {
		resp["warning"] = "No exchange rate available, showing base currency amount"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Conversion completed",
		"data":    resp,
	})
}

// Locale handles GET /locale. It geolocates the caller's IP and suggests
// a display currency, falling back to the store default when the lookup
// fails.
func (h *CurrencyHandler) Locale(c *gin.Context) {
	loc, err := h.geoipClient.Lookup(c.ClientIP())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Locale defaulted",
			"data": gin.H{
				"currency": h.config.Store.DefaultCurrency,
			},
		})
		return
	}

	suggested := loc.Currency
	if suggested == "" {
		suggested = h.config.Store.DefaultCurrency
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Locale detected successfully",
		"data": gin.H{
			"country_code": loc.CountryCode,
			"country":      loc.Country,
			"currency":     suggested,
		},
	})
}
