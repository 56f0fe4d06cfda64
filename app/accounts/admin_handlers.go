package accounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/models"
)

// AdminHandler handles capability administration requests
type AdminHandler struct {
	service AdminService
	logger  logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service AdminService, logger logger.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

func (h *AdminHandler) GetAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid account id")
		return
	}

	account, err := h.service.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Account")
			return
		}
		api.InternalErrorResponse(c, "Failed to load account")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Account retrieved", account)
}

func (h *AdminHandler) GrantCapability(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid account id")
		return
	}

	var req GrantCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.GrantCapability(c.Request.Context(), accountID, req.Capability); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Capability")
			return
		}
		h.logger.Error(err, logger.Fields{"op": "accounts.grant", "account_id": accountID})
		api.InternalErrorResponse(c, "Failed to grant capability")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Capability granted", nil)
}

func (h *AdminHandler) RevokeCapability(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid account id")
		return
	}

	capability := c.Param("capability")
	if capability == "" {
		api.BadRequestResponse(c, "capability is required")
		return
	}

	if err := h.service.RevokeCapability(c.Request.Context(), accountID, capability); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Capability")
			return
		}
		h.logger.Error(err, logger.Fields{"op": "accounts.revoke", "account_id": accountID})
		api.InternalErrorResponse(c, "Failed to revoke capability")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Capability revoked", nil)
}
