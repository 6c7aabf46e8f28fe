package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/capacity-planner/api/v1"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// RVTools exports stay in the low megabytes; anything bigger is not a
// spreadsheet.
const maxSpreadsheetBytes = 64 << 20

// GetInventory returns the stored fleet summary
// (GET /inventory)
func (h *Handler) GetInventory(c *gin.Context) {
	fleet, err := h.inventorySrv.GetInventory(c.Request.Context())
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("inventory_handler").Errorw("failed to get inventory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get inventory"})
		return
	}

	c.JSON(http.StatusOK, v1.NewFleetSummary(*fleet))
}

// UpdateInventory replaces the fleet summary with manual totals
// (PUT /inventory)
func (h *Handler) UpdateInventory(c *gin.Context) {
	var req v1.InventoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fleet := req.ToModel()
	if err := h.inventorySrv.SetManual(c.Request.Context(), fleet); err != nil {
		if srvErrors.IsInvalidConfigurationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("inventory_handler").Errorw("failed to update inventory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inventory"})
		return
	}

	c.JSON(http.StatusOK, v1.NewFleetSummary(*fleet))
}

// ImportRVTools replaces the fleet summary from an RVTools export
// (POST /inventory/rvtools)
func (h *Handler) ImportRVTools(c *gin.Context) {
	var src io.Reader = http.MaxBytesReader(c.Writer, c.Request.Body, maxSpreadsheetBytes)

	// accept both a multipart "file" field and a raw body upload
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
			return
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	fleet, err := h.inventorySrv.ImportRVTools(c.Request.Context(), src)
	if err != nil {
		if srvErrors.IsInvalidSpreadsheetError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("inventory_handler").Errorw("failed to import rvtools export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import rvtools export"})
		return
	}

	c.JSON(http.StatusOK, v1.NewFleetSummary(*fleet))
}
