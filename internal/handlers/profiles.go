package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/capacity-planner/api/v1"
	"github.com/kubev2v/capacity-planner/internal/store"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// ListProfiles returns the hardware profile catalog with optional filters
// (GET /profiles)
func (h *Handler) ListProfiles(c *gin.Context) {
	opts := []store.ListOption{store.WithDefaultSort()}

	if manufacturers := c.QueryArray("manufacturer"); len(manufacturers) > 0 {
		opts = append(opts, store.ByManufacturers(manufacturers...))
	}
	if raw := c.Query("supported"); raw != "" {
		supported, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supported value: " + raw})
			return
		}
		opts = append(opts, store.BySupported(supported))
	}
	if raw := c.Query("minMemoryGiB"); raw != "" {
		gib, err := strconv.ParseFloat(raw, 64)
		if err != nil || gib < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minMemoryGiB value: " + raw})
			return
		}
		opts = append(opts, store.ByMinMemory(gib))
	}
	if raw := c.Query("minCores"); raw != "" {
		cores, err := strconv.Atoi(raw)
		if err != nil || cores < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minCores value: " + raw})
			return
		}
		opts = append(opts, store.ByMinCores(cores))
	}
	if raw := c.Query("localStorage"); raw != "" {
		localStorage, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid localStorage value: " + raw})
			return
		}
		if localStorage {
			opts = append(opts, store.WithLocalStorage())
		}
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit value: " + raw})
			return
		}
		opts = append(opts, store.WithLimit(limit))
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset value: " + raw})
			return
		}
		opts = append(opts, store.WithOffset(offset))
	}

	profiles, err := h.catalogSrv.ListProfiles(c.Request.Context(), opts...)
	if err != nil {
		zap.S().Named("profile_handler").Errorw("failed to list profiles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list profiles"})
		return
	}

	c.JSON(http.StatusOK, v1.NewProfileList(profiles))
}

// GetProfile returns one catalog entry
// (GET /profiles/{name})
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.catalogSrv.GetProfile(c.Request.Context(), c.Param("name"))
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("profile_handler").Errorw("failed to get profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, v1.NewHardwareProfile(*profile))
}

// PutProfile creates or replaces a catalog entry
// (PUT /profiles/{name})
func (h *Handler) PutProfile(c *gin.Context) {
	var req v1.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// the path owns the name
	profile := req.ToModel()
	profile.Name = c.Param("name")

	if err := h.catalogSrv.SaveProfile(c.Request.Context(), profile); err != nil {
		if srvErrors.IsInvalidConfigurationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("profile_handler").Errorw("failed to save profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	saved, err := h.catalogSrv.GetProfile(c.Request.Context(), profile.Name)
	if err != nil {
		zap.S().Named("profile_handler").Errorw("failed to get profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, v1.NewHardwareProfile(*saved))
}

// DeleteProfile removes a catalog entry
// (DELETE /profiles/{name})
func (h *Handler) DeleteProfile(c *gin.Context) {
	if err := h.catalogSrv.DeleteProfile(c.Request.Context(), c.Param("name")); err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("profile_handler").Errorw("failed to delete profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile"})
		return
	}

	c.Status(http.StatusNoContent)
}
