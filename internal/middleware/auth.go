package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	"github.com/Paudel3101/meditrack/pkg/auth"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

// Context keys set by the auth chain.
const (
	ContextStaffID   = "staff_id"
	ContextStaffRole = "staff_role"
	ContextClaims    = "claims"
)

type AuthMiddleware struct {
	jwt       auth.JWTService
	staffRepo repository.StaffRepository
	logger    *logger.Logger
}

func NewAuthMiddleware(jwt auth.JWTService, staffRepo repository.StaffRepository, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, staffRepo: staffRepo, logger: log}
}

// Authenticate extracts and verifies the bearer token and attaches the
// subject identity to the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			reject(c, http.StatusUnauthorized, "authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			reject(c, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := m.jwt.Validate(parts[1])
		if err != nil {
			reject(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(ContextStaffID, claims.StaffID)
		c.Set(ContextStaffRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// CheckSession re-fetches the subject's active flag so that
// deactivation takes effect on the next request even though the token
// is still cryptographically valid.
func (m *AuthMiddleware) CheckSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := c.GetInt64(ContextStaffID)
		if staffID == 0 {
			reject(c, http.StatusUnauthorized, "authorization header required")
			return
		}

		staff, err := m.staffRepo.GetByID(c.Request.Context(), staffID)
		if err != nil || !staff.IsActive {
			reject(c, http.StatusUnauthorized, "session is no longer valid")
			return
		}
		c.Next()
	}
}

// RequireRoles gates the route behind the policy table entry for op.
func (m *AuthMiddleware) RequireRoles(op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextStaffRole)
		if !exists {
			reject(c, http.StatusUnauthorized, "authorization header required")
			return
		}

		role, ok := roleVal.(model.StaffRole)
		if !ok || !RoleAllowed(op, role) {
			reject(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

func reject(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
