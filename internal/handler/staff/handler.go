package staff

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Paudel3101/meditrack/internal/handler"
	"github.com/Paudel3101/meditrack/internal/middleware"
	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	"github.com/Paudel3101/meditrack/internal/service/staff"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

type Handler struct {
	service staff.Service
	outbox  repository.OutboxRepository
	logger  *logger.Logger
}

func NewHandler(service staff.Service, outbox repository.OutboxRepository, log *logger.Logger) *Handler {
	return &Handler{service: service, outbox: outbox, logger: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, am *middleware.AuthMiddleware) {
	g := rg.Group("/staff")
	g.Use(am.Authenticate())

	g.GET("", am.RequireRoles(middleware.OpStaffRead), h.List)
	g.GET("/:id", am.RequireRoles(middleware.OpStaffRead), h.Get)
	g.POST("", am.RequireRoles(middleware.OpStaffManage), h.Create)
	g.PUT("/:id", am.RequireRoles(middleware.OpStaffManage), h.Update)
	g.PUT("/:id/deactivate", am.RequireRoles(middleware.OpStaffManage), h.Deactivate)
	g.PUT("/:id/reactivate", am.RequireRoles(middleware.OpStaffManage), h.Reactivate)
}

func (h *Handler) List(c *gin.Context) {
	filters := model.StaffFilters{}
	if v := c.Query("role"); v != "" {
		role := model.StaffRole(v)
		filters.Role = &role
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	list, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, list, len(list))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, s)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	s, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "staff.created", s)
	handler.Created(c, "staff member created", s)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "staff.updated", s)
	handler.OKMessage(c, "staff member updated", s)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "staff.deactivated", gin.H{"id": id})
	handler.OKMessage(c, "staff member deactivated", nil)
}

func (h *Handler) Reactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Reactivate(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	handler.RecordEvent(c.Request.Context(), h.outbox, h.logger, "staff.reactivated", gin.H{"id": id})
	handler.OKMessage(c, "staff member reactivated", nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		handler.Error(c, apperrors.Validation("invalid id"))
		return 0, false
	}
	return id, true
}
