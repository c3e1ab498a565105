// internal/interfaces/http/handlers/import.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/activity"
	"github.com/your-org/sneakershop-backend/internal/domain/catalogimport"
	"github.com/your-org/sneakershop-backend/internal/domain/user"
	"github.com/your-org/sneakershop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/sneakershop-backend/internal/pkg/catalog"
	"gorm.io/gorm"
)

// ImportHandler handles external catalog search and product imports
type ImportHandler struct {
	importService *catalogimport.Service
	db            *gorm.DB
	config        *config.Config
}

// NewImportHandler creates a new import handler
func NewImportHandler(db *gorm.DB, cfg *config.Config) *ImportHandler {
	return &ImportHandler{
		importService: catalogimport.NewService(db, cfg, catalog.NewClient(cfg), activity.NewService(db)),
		db:            db,
		config:        cfg,
	}
}

// SearchCatalog handles GET /admin/import/search. Results already present
// in the local catalog are filtered out.
func (h *ImportHandler) SearchCatalog(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter is required",
		})
		return
	}

	// SearchExternal already drops candidates whose SKU exists locally.
	fresh, err := h.importService.SearchExternal(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search catalog",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search completed successfully",
		"data":    fresh,
	})
}

// ImportProducts handles POST /admin/import
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	var req catalogimport.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	adminID, _ := middleware.GetUserIDFromContext(c)
	adminName := h.adminDisplayName(c, adminID)

	result, err := h.importService.Import(&req, adminID, adminName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to import products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Import completed successfully",
		"data":    result,
	})
}

// adminDisplayName resolves the acting admin's name for the audit log,
// falling back to the token email when the lookup fails.
func (h *ImportHandler) adminDisplayName(c *gin.Context, adminID uint) string {
	var u user.User
	if err := h.db.First(&u, adminID).Error; err == nil {
		return u.GetDisplayName()
	}
	email, _ := middleware.GetUserEmailFromContext(c)
	return email
}
