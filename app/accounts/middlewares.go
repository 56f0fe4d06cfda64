package accounts

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/internal/security"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
)

// AuthMiddleware verifies the bearer token and loads the account's
// capabilities into the request context for api.Can checks downstream.
func AuthMiddleware(tokenMaker security.Maker, authService AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || fields[0] != AuthorizationTypeBearer {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		accessToken := fields[1]
		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		capabilities, err := authService.GetAccountCapabilities(c.Request.Context(), payload.AccountID)
		if err != nil {
			api.ForbiddenResponse(c, "Could not retrieve account capabilities")
			c.Abort()
			return
		}

		c.Set(api.ContextKeyUserID, payload.AccountID)
		c.Set(api.ContextKeyCapabilities, capabilities)
		c.Next()
	}
}

// AccountIDFromContext returns the authenticated account id set by
// AuthMiddleware, or false if the request is unauthenticated.
func AccountIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(api.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}
