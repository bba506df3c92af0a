package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"files-backend/internal/files"
	"files-backend/internal/services/health"
	"files-backend/internal/shared/config"
	"files-backend/internal/shared/metrics"
	"files-backend/internal/shared/server/middleware"
	"files-backend/internal/shared/server/respond"
	"files-backend/internal/users"
)

const (
	uploadRoute     = "/api/files/upload"
	rateGroupUpload = "UPLOAD"
)

// RouterDeps carries the handlers mounted under /api.
type RouterDeps struct {
	Config        config.Config
	FilesHandler  *files.Handler
	UsersHandler  *users.Handler
	HealthHandler *health.Handler
	RateLimiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Metrics(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: uploadGroup,
			Limiter:  deps.RateLimiter,
			Rules: map[string]middleware.RateLimitRule{
				rateGroupUpload: {Rate: deps.Config.UploadRatePerSec, Burst: deps.Config.UploadRateBurst},
			},
		}),
	)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Cannot "+c.Request.Method+" "+c.Request.URL.Path, nil)
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.HealthHandler != nil {
		deps.HealthHandler.RegisterRoutes(api)
	}
	if deps.FilesHandler != nil {
		deps.FilesHandler.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}

	return r
}

func uploadGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == uploadRoute {
		return rateGroupUpload
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
