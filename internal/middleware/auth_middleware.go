package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/app/models/dto"
	"github.com/estatecore/backend/internal/app/repositories"
	"github.com/estatecore/backend/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserKey   = "currentUser"
	ContextUserIDKey = "userID"
	ContextEmailKey  = "email"
	ContextRoleKey   = "role"
)

// AuthMiddleware handles authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repositories.IUserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repositories.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// JWTAuth validates the bearer token and loads the authenticated user into
// the request context. Tokens that outlive their account are rejected.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
			return
		}

		claims, err := m.jwtService.ValidateSessionToken(tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("User no longer exists"))
			return
		}
		if user.Status != models.StatusActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Account is not active"))
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextEmailKey, user.Email)
		c.Set(ContextRoleKey, string(user.Role))

		c.Next()
	}
}

// RoleRequired rejects requests whose authenticated user lacks the role.
// Must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != string(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("You don't have sufficient permissions for this operation"))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by JWTAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
