package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/capacity-planner/api/v1"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// CreatePlan evaluates the stored fleet against candidate profiles
// (POST /plans)
func (h *Handler) CreatePlan(c *gin.Context) {
	var req v1.PlanCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.plannerSrv.CreatePlan(c.Request.Context(), req.Settings.ToModel(), req.Profiles)
	if err != nil {
		switch {
		case srvErrors.IsInvalidConfigurationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case srvErrors.IsResourceNotFoundError(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			zap.S().Named("plan_handler").Errorw("failed to create plan", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create plan"})
		}
		return
	}

	c.JSON(http.StatusCreated, v1.NewPlan(*record))
}

// ListPlans returns all persisted plans, newest first
// (GET /plans)
func (h *Handler) ListPlans(c *gin.Context) {
	records, err := h.plannerSrv.ListPlans(c.Request.Context())
	if err != nil {
		zap.S().Named("plan_handler").Errorw("failed to list plans", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
		return
	}

	c.JSON(http.StatusOK, v1.NewPlanList(records))
}

// GetPlan returns one persisted plan
// (GET /plans/{id})
func (h *Handler) GetPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	record, err := h.plannerSrv.GetPlan(c.Request.Context(), id)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("plan_handler").Errorw("failed to get plan", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get plan"})
		return
	}

	c.JSON(http.StatusOK, v1.NewPlan(*record))
}

// DeletePlan removes a persisted plan
// (DELETE /plans/{id})
func (h *Handler) DeletePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	if err := h.plannerSrv.DeletePlan(c.Request.Context(), id); err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("plan_handler").Errorw("failed to delete plan", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete plan"})
		return
	}

	c.Status(http.StatusNoContent)
}
