package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/Paudel3101/meditrack/internal/handler"
	"github.com/Paudel3101/meditrack/internal/middleware"
	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/service/auth"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

type Handler struct {
	service auth.Service
	logger  *logger.Logger
}

func NewHandler(service auth.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes mounts the auth endpoints. Login and register are
// public; the rest require a verified token.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, am *middleware.AuthMiddleware) {
	g := rg.Group("/auth")
	g.POST("/login", h.Login)
	g.POST("/register", h.Register)

	protected := g.Group("")
	protected.Use(am.Authenticate())
	protected.GET("/profile", h.Profile)
	protected.PUT("/password", h.UpdatePassword)
	protected.POST("/logout", h.Logout)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OKMessage(c, "login successful", resp)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, "account created", resp)
}

func (h *Handler) Profile(c *gin.Context) {
	staff, err := h.service.GetProfile(c.Request.Context(), c.GetInt64(middleware.ContextStaffID))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, staff)
}

// Logout acknowledges the client discarding its token. Tokens are
// stateless with no revocation list, so there is nothing to invalidate
// server-side.
func (h *Handler) Logout(c *gin.Context) {
	handler.OKMessage(c, "logout successful", nil)
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var req model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	err := h.service.UpdatePassword(c.Request.Context(), c.GetInt64(middleware.ContextStaffID), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OKMessage(c, "password updated", nil)
}
