// File: internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"roadsuite_backend/internal/auth"
	"roadsuite_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
// Requests without a valid bearer token are rejected.
func AuthMiddleware(tokenService auth.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		claims, err := parseBearer(tokenService, authHeader)
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails(err.Error()))
			return
		}

		common.SetCallerInContext(c, common.Caller{UserID: claims.UserID, Roles: claims.Roles})

		logger.Debug("User authenticated successfully",
			zap.String("userID", claims.UserID.String()),
			zap.Strings("roles", claims.Roles),
		)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches a caller identity when a valid bearer token
// is present and leaves the request anonymous otherwise. Malformed or expired
// tokens are still rejected so a client never silently loses its identity.
func OptionalAuthMiddleware(tokenService auth.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.Next()
			return
		}

		claims, err := parseBearer(tokenService, authHeader)
		if err != nil {
			logger.Warn("Token validation failed on optional auth route", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails(err.Error()))
			return
		}

		common.SetCallerInContext(c, common.Caller{UserID: claims.UserID, Roles: claims.Roles})
		c.Next()
	}
}

// RequireRolesMiddleware checks that the authenticated caller holds at least
// one of the allowed roles. It must run after AuthMiddleware.
func RequireRolesMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := common.GetCallerFromContext(c)
		if !caller.IsAuthenticated() {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authentication required."))
			return
		}

		for _, role := range allowedRoles {
			if caller.HasRole(role) {
				c.Next()
				return
			}
		}

		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
	}
}

func parseBearer(tokenService auth.TokenService, authHeader string) (*auth.Claims, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return nil, errors.New("Authorization header format must be 'Bearer <token>'.")
	}
	return tokenService.ValidateToken(parts[1])
}
