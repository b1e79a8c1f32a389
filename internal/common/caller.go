// File: internal/common/caller.go
package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Role names carried in JWT claims and user records.
const (
	RoleDealer    = "dealer"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ContextKeyCaller is the gin context key holding the authenticated caller.
const ContextKeyCaller = "caller"

// Caller identifies who is making a request. The zero value is anonymous.
type Caller struct {
	UserID uuid.UUID
	Roles  []string
}

// IsAuthenticated reports whether the caller carries an identity.
func (c Caller) IsAuthenticated() bool {
	return c.UserID != uuid.Nil
}

// HasRole reports whether the caller holds the given role.
func (c Caller) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller is an administrator.
func (c Caller) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

// IsModeratorOrAbove reports whether the caller may moderate listings.
func (c Caller) IsModeratorOrAbove() bool {
	return c.HasRole(RoleModerator) || c.HasRole(RoleAdmin)
}

// IsDealerOnly reports whether the caller is a dealer without moderation rights.
func (c Caller) IsDealerOnly() bool {
	return c.HasRole(RoleDealer) && !c.IsModeratorOrAbove()
}

// SetCallerInContext stores the caller on the gin context.
func SetCallerInContext(c *gin.Context, caller Caller) {
	c.Set(ContextKeyCaller, caller)
}

// GetCallerFromContext retrieves the caller from the gin context.
// Returns the anonymous caller when no identity was attached.
func GetCallerFromContext(c *gin.Context) Caller {
	v, exists := c.Get(ContextKeyCaller)
	if !exists {
		return Caller{}
	}
	caller, ok := v.(Caller)
	if !ok {
		return Caller{}
	}
	return caller
}
