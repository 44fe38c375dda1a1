package patient

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Paudel3101/meditrack/internal/handler"
	"github.com/Paudel3101/meditrack/internal/middleware"
	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	"github.com/Paudel3101/meditrack/internal/service/patient"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

type Handler struct {
	service patient.Service
	outbox  repository.OutboxRepository
	logger  *logger.Logger
}

func NewHandler(service patient.Service, outbox repository.OutboxRepository, log *logger.Logger) *Handler {
	return &Handler{service: service, outbox: outbox, logger: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, am *middleware.AuthMiddleware) {
	g := rg.Group("/patients")
	g.Use(am.Authenticate(), am.CheckSession())

	g.GET("", am.RequireRoles(middleware.OpPatientRead), h.List)
	g.GET("/search", am.RequireRoles(middleware.OpPatientRead), h.Search)
	g.GET("/:id", am.RequireRoles(middleware.OpPatientRead), h.Get)
	g.POST("", am.RequireRoles(middleware.OpPatientWrite), h.Create)
	g.PUT("/:id", am.RequireRoles(middleware.OpPatientWrite), h.Update)
	g.PUT("/:id/archive", am.RequireRoles(middleware.OpPatientArchive), h.Archive)
	g.PUT("/:id/unarchive", am.RequireRoles(middleware.OpPatientArchive), h.Unarchive)
}

func (h *Handler) List(c *gin.Context) {
	filters := model.PatientFilters{Search: c.Query("search")}
	if gender := c.Query("gender"); gender != "" {
		filters.Gender = &gender
	}
	// Archived patients only show up when asked for explicitly.
	archived := c.Query("is_archived") == "true"
	filters.IsArchived = &archived

	patients, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, patients, len(patients))
}

func (h *Handler) Search(c *gin.Context) {
	query := model.PatientSearchQuery{
		Term:  c.Query("q"),
		Field: c.Query("field"),
	}

	patients, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, patients, len(patients))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	include := c.Query("include") == "appointments"
	p, err := h.service.Get(c.Request.Context(), id, include)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, p)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "patient.created", p)
	handler.Created(c, "patient created", p)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "patient.updated", p)
	handler.OKMessage(c, "patient updated", p)
}

func (h *Handler) Archive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Archive(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "patient.archived", gin.H{"id": id})
	handler.OKMessage(c, "patient archived", nil)
}

func (h *Handler) Unarchive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Unarchive(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "patient.unarchived", gin.H{"id": id})
	handler.OKMessage(c, "patient unarchived", nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		handler.Error(c, apperrors.Validation("invalid id"))
		return 0, false
	}
	return id, true
}
