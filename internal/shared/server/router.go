package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/analyses"
	"triage-backend/internal/services/health"
	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/metrics"
	"triage-backend/internal/shared/server/middleware"
	"triage-backend/internal/shared/server/respond"
	"triage-backend/internal/shared/telemetry"
)

const (
	apiName    = "Emergency Triage Symptom Analyzer API"
	apiVersion = "1.0"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// Forwarded client addresses are honoured only from cfg.TrustedProxies.
func NewRouter(cfg config.Config) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		telemetry.Warn("router.trusted_proxies_invalid", map[string]any{
			"proxies": cfg.TrustedProxies,
			"error":   err.Error(),
		})
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor:     rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
				"ANALYZE": {Rate: cfg.AnalyzeRateLimitRPS, Burst: cfg.AnalyzeRateLimitBurst},
			},
		}),
	)

	healthSvc := health.NewService()
	analysisHandler := analyses.NewHandler(analyses.NewService())

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"message": apiName,
			"version": apiVersion,
			"endpoints": gin.H{
				"/analyze": "POST - Analyze symptoms and determine priority",
			},
		})
	})
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())
	analysisHandler.RegisterRoutes(r)

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/analyze" {
		return "ANALYZE"
	}
	return "DEFAULT"
}

// Mode picks the gin mode for an environment.
func Mode(env string) string {
	if env == "production" || env == "staging" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
