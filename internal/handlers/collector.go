package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/capacity-planner/api/v1"
	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// GetCollectorStatus returns the collector status
// (GET /collector)
func (h *Handler) GetCollectorStatus(c *gin.Context) {
	status := h.collectorSrv.GetStatus(c.Request.Context())
	c.JSON(http.StatusOK, v1.NewCollectorStatus(status))
}

// StartCollector starts fleet collection from vCenter
// (POST /collector)
func (h *Handler) StartCollector(c *gin.Context) {
	var req v1.CollectorStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validateEndpointURL(req.Url); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creds := &models.Credentials{
		URL:      req.Url,
		Username: req.Username,
		Password: req.Password,
	}

	if err := h.collectorSrv.Start(c.Request.Context(), creds); err != nil {
		switch {
		case srvErrors.IsCollectionInProgressError(err):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case srvErrors.IsVCenterError(err):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			zap.S().Named("collector_handler").Errorw("failed to start collector", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start collector"})
		}
		return
	}

	status := h.collectorSrv.GetStatus(c.Request.Context())
	c.JSON(http.StatusAccepted, v1.NewCollectorStatus(status))
}

// StopCollector stops a running collection but keeps credentials for retry
// (DELETE /collector)
func (h *Handler) StopCollector(c *gin.Context) {
	if err := h.collectorSrv.Stop(c.Request.Context()); err != nil {
		zap.S().Named("collector_handler").Errorw("failed to stop collector", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop collector"})
		return
	}

	status := h.collectorSrv.GetStatus(c.Request.Context())
	c.JSON(http.StatusOK, v1.NewCollectorStatus(status))
}

func validateEndpointURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return srvErrors.NewInvalidConfigurationError("url", "must be an absolute URL")
	}
	return nil
}
