// internal/domain/catalogimport/service.go
package catalogimport

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/activity"
	"github.com/your-org/sneakershop-backend/internal/domain/product"
	"github.com/your-org/sneakershop-backend/internal/pkg/catalog"
	"gorm.io/gorm"
)

// StandardSizes is the size run every imported product starts with,
// US 8 through 12 in half steps.
var StandardSizes = []string{
	"8", "8.5", "9", "9.5", "10", "10.5", "11", "11.5", "12",
}

// Searcher queries the external catalog for import candidates
type Searcher interface {
	Search(query string) ([]catalog.Candidate, error)
}

// Service handles admin product import from the external catalog
type Service struct {
	db       *gorm.DB
	config   *config.Config
	searcher Searcher
	activity *activity.Service
}

// NewService creates a new catalog import service
func NewService(db *gorm.DB, cfg *config.Config, searcher Searcher, activitySvc *activity.Service) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		searcher: searcher,
		activity: activitySvc,
	}
}

// ImportRequest represents the admin's import submission
type ImportRequest struct {
	Candidates []catalog.Candidate `json:"candidates" binding:"required,min=1,dive"`
}

// ImportResult reports what an import run did
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	SKUs     []string `json:"skus"`
}

// SearchExternal queries the catalog API and drops candidates whose SKU is
// already in the store, so the admin only sees importable products. An
// upstream failure degrades to an empty result set.
func (s *Service) SearchExternal(query string) ([]catalog.Candidate, error) {
	candidates, err := s.searcher.Search(query)
	if err != nil {
		logrus.WithError(err).WithField("query", query).Warn("Catalog search failed")
		return []catalog.Candidate{}, nil
	}
	return s.FilterNew(candidates)
}

// FilterNew returns the candidates whose SKU does not yet exist locally.
// Matching is exact and case-sensitive: "ab-1" and "AB-1" are distinct SKUs.
func (s *Service) FilterNew(candidates []catalog.Candidate) ([]catalog.Candidate, error) {
	if len(candidates) == 0 {
		return []catalog.Candidate{}, nil
	}

	skus := make([]string, 0, len(candidates))
	for _, c := range candidates {
		skus = append(skus, c.SKU)
	}

	var existing []string
	if err := s.db.Model(&product.Product{}).
		Where("sku IN ?", skus).
		Pluck("sku", &existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing SKUs: %w", err)
	}

	taken := make(map[string]bool, len(existing))
	for _, sku := range existing {
		taken[sku] = true
	}

	fresh := make([]catalog.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !taken[c.SKU] {
			fresh = append(fresh, c)
		}
	}

	return fresh, nil
}

// Import creates local products from the selected candidates. Each product
// gets the standard size run with the configured uniform initial stock.
// SKU existence is re-checked immediately before each insert: the filter
// the admin saw and this call are separated by user interaction time, so
// another import may have landed the same SKU in between. Finishes with an
// audit entry naming the importing admin and the count imported.
func (s *Service) Import(req *ImportRequest, adminID uint, adminName string) (*ImportResult, error) {
	result := &ImportResult{}
	initialStock := s.config.Store.ImportInitialStock
	if initialStock < 1 {
		initialStock = 10
	}

	for _, c := range req.Candidates {
		var count int64
		if err := s.db.Model(&product.Product{}).
			Where("sku = ?", c.SKU).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to re-check SKU %s: %w", c.SKU, err)
		}
		if count > 0 {
			result.Skipped++
			continue
		}

		now := time.Now().UTC()
		p := product.Product{
			SKU:          c.SKU,
			Name:         c.Name,
			Brand:        c.Brand,
			Gender:       c.Gender,
			Colorway:     c.Colorway,
			RetailPrice:  c.RetailPrice,
			ImageURL:     c.ImageURL,
			ThumbnailURL: c.ThumbnailURL,
			IsActive:     true,
			ImportedAt:   &now,
		}
		for _, size := range StandardSizes {
			p.Stock = append(p.Stock, product.SizeStock{
				SizeKey:  product.SanitizeSizeKey(size),
				Quantity: initialStock,
			})
		}

		if err := s.db.Create(&p).Error; err != nil {
			return nil, fmt.Errorf("failed to import product %s: %w", c.SKU, err)
		}

		result.Imported++
		result.SKUs = append(result.SKUs, c.SKU)
	}

	if s.activity != nil {
		s.activity.Record(&adminID, adminName, activity.ActionProductImport,
			fmt.Sprintf("imported %d products, skipped %d", result.Imported, result.Skipped))
	}

	return result, nil
}
