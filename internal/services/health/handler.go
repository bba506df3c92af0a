package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"files-backend/internal/shared/server/respond"
	"files-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	report := h.Svc.Check(c.Request.Context())
	if report.Status != StatusOK {
		telemetry.Warn("health.degraded", map[string]any{"error": report.Error["database"].Message})
		respond.JSON(c, http.StatusServiceUnavailable, report)
		return
	}
	respond.OK(c, report)
}
