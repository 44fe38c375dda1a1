package appointment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Paudel3101/meditrack/internal/handler"
	"github.com/Paudel3101/meditrack/internal/middleware"
	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	"github.com/Paudel3101/meditrack/internal/service/appointment"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

type Handler struct {
	service appointment.Service
	outbox  repository.OutboxRepository
	logger  *logger.Logger
}

func NewHandler(service appointment.Service, outbox repository.OutboxRepository, log *logger.Logger) *Handler {
	return &Handler{service: service, outbox: outbox, logger: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, am *middleware.AuthMiddleware) {
	g := rg.Group("/appointments")
	g.Use(am.Authenticate(), am.CheckSession())

	g.GET("", am.RequireRoles(middleware.OpAppointmentRead), h.List)
	g.GET("/:id", am.RequireRoles(middleware.OpAppointmentRead), h.Get)
	g.POST("", am.RequireRoles(middleware.OpAppointmentWrite), h.Create)
	g.PUT("/:id", am.RequireRoles(middleware.OpAppointmentWrite), h.Update)
	g.PUT("/:id/status", am.RequireRoles(middleware.OpAppointmentStatus), h.UpdateStatus)
	g.DELETE("/:id", am.RequireRoles(middleware.OpAppointmentDelete), h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	filters := model.AppointmentFilters{
		Date:      c.Query("date"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if v := c.Query("doctor_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.DoctorID = &id
		}
	}
	if v := c.Query("patient_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.PatientID = &id
		}
	}
	if v := c.Query("status"); v != "" {
		status := model.AppointmentStatus(v)
		filters.Status = &status
	}

	appts, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, appts, len(appts))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, detail)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	detail, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "appointment.created", detail)
	handler.Created(c, "appointment scheduled", detail)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	detail, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "appointment.updated", detail)
	handler.OKMessage(c, "appointment updated", detail)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	detail, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "appointment.status_changed", detail)
	handler.OKMessage(c, "appointment status updated", detail)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "appointment.deleted", gin.H{"id": id})
	handler.OKMessage(c, "appointment deleted", nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		handler.Error(c, apperrors.Validation("invalid id"))
		return 0, false
	}
	return id, true
}
