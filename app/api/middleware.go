package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/models"
)

// ContextKeyUserID is the gin context key holding the authenticated account id.
const ContextKeyUserID = "userID"

// ContextKeyCapabilities is the gin context key holding the account's
// capability slugs as []string.
const ContextKeyCapabilities = "capabilities"

// Can gates a route on a capability. It fails closed: a request with no
// capability set in context is forbidden. Admin implies every capability.
func Can(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(ContextKeyCapabilities)
		if !exists {
			ForbiddenResponse(c, "insufficient permissions")
			c.Abort()
			return
		}
		caps, ok := raw.([]string)
		if !ok {
			ForbiddenResponse(c, "insufficient permissions")
			c.Abort()
			return
		}
		for _, have := range caps {
			if have == capability || have == models.CapabilityAdmin {
				c.Next()
				return
			}
		}
		ForbiddenResponse(c, "insufficient permissions")
		c.Abort()
	}
}
