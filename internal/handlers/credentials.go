package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/capacity-planner/api/v1"
	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// GetCredentials returns the stored vCenter endpoint without the password
// (GET /credentials)
func (h *Handler) GetCredentials(c *gin.Context) {
	creds, err := h.collectorSrv.GetCredentials(c.Request.Context())
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("credentials_handler").Errorw("failed to get credentials", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get credentials"})
		return
	}

	c.JSON(http.StatusOK, v1.Credentials{Url: creds.URL, Username: creds.Username})
}

// PutCredentials verifies and stores vCenter credentials without collecting
// (PUT /credentials)
func (h *Handler) PutCredentials(c *gin.Context) {
	var req v1.CredentialsRequest
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

	if err := h.collectorSrv.SaveCredentials(c.Request.Context(), creds); err != nil {
		if srvErrors.IsVCenterError(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("credentials_handler").Errorw("failed to save credentials", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save credentials"})
		return
	}

	c.JSON(http.StatusOK, v1.Credentials{Url: creds.URL, Username: creds.Username})
}

// DeleteCredentials removes the stored credentials
// (DELETE /credentials)
func (h *Handler) DeleteCredentials(c *gin.Context) {
	if err := h.collectorSrv.DeleteCredentials(c.Request.Context()); err != nil {
		zap.S().Named("credentials_handler").Errorw("failed to delete credentials", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete credentials"})
		return
	}

	c.Status(http.StatusNoContent)
}
