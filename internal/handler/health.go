package handler

import (
	"net/http"

	"orgchart/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService *service.HealthService
}

func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Liveness 行程存活
// @Summary 存活檢查
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.healthService.IsLive() {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
		return
	}
	c.Status(http.StatusServiceUnavailable)
}

// Readiness 是否已有可查詢的組織圖
// @Summary 就緒檢查
// @Tags Health
// @Produce json
// @Success 200 {object} service.Readiness
// @Failure 503 {object} service.Readiness
// @Router /health/readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	readiness := h.healthService.Readiness()
	status := http.StatusOK
	if !readiness.Ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, readiness)
}
