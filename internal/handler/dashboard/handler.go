package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/Paudel3101/meditrack/internal/handler"
	"github.com/Paudel3101/meditrack/internal/middleware"
	"github.com/Paudel3101/meditrack/internal/service/dashboard"
	"github.com/Paudel3101/meditrack/internal/service/patient"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

type Handler struct {
	service    dashboard.Service
	patientSvc patient.Service
	logger     *logger.Logger
}

func NewHandler(service dashboard.Service, patientSvc patient.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, patientSvc: patientSvc, logger: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, am *middleware.AuthMiddleware) {
	g := rg.Group("/dashboard")
	g.Use(am.Authenticate(), am.CheckSession(), am.RequireRoles(middleware.OpDashboardRead))

	g.GET("/stats", h.Stats)
	g.GET("/recent-appointments", h.RecentAppointments)
	g.GET("/patient-count", h.PatientCount)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, stats)
}

func (h *Handler) RecentAppointments(c *gin.Context) {
	appts, err := h.service.RecentAppointments(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, appts, len(appts))
}

func (h *Handler) PatientCount(c *gin.Context) {
	counts, err := h.patientSvc.Counts(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, counts)
}
