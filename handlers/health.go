package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"murmur/speech"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	client *speech.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(client *speech.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

// HealthCheck returns the health status of the service
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "murmur",
		"version":   "1.0.0",
		"timestamp": time.Now().Unix(),
	})
}

// APIStatus returns the status of the API plus the speech backend's
// authentication state.
func (h *HealthHandler) APIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Murmur API is running",
		"transcriber": h.client.Transcriber().Name(),
		"auth":        h.client.AuthStatus(),
	})
}
