package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Paudel3101/meditrack/internal/config"
	"github.com/Paudel3101/meditrack/internal/handler"
	appointmenthandler "github.com/Paudel3101/meditrack/internal/handler/appointment"
	authhandler "github.com/Paudel3101/meditrack/internal/handler/auth"
	dashboardhandler "github.com/Paudel3101/meditrack/internal/handler/dashboard"
	patienthandler "github.com/Paudel3101/meditrack/internal/handler/patient"
	staffhandler "github.com/Paudel3101/meditrack/internal/handler/staff"
	"github.com/Paudel3101/meditrack/internal/middleware"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

// Handlers bundles the route groups the router mounts.
type Handlers struct {
	Auth        *authhandler.Handler
	Patient     *patienthandler.Handler
	Appointment *appointmenthandler.Handler
	Staff       *staffhandler.Handler
	Dashboard   *dashboardhandler.Handler
}

func New(cfg *config.Config, log *logger.Logger, am *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Server.CORSOrigin),
		middleware.Metrics(),
		middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/health", handler.Health)

	h.Auth.RegisterRoutes(api, am)
	h.Patient.RegisterRoutes(api, am)
	h.Appointment.RegisterRoutes(api, am)
	h.Staff.RegisterRoutes(api, am)
	h.Dashboard.RegisterRoutes(api, am)

	return r
}
