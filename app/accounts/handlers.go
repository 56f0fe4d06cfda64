package accounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/models"
)

// Handler handles HTTP requests for account operations
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new account handler
func NewHandler(service Service, logger logger.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	account, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error(err, logger.Fields{"op": "accounts.register"})
		api.InternalErrorResponse(c, "Failed to register account")
		return
	}

	api.CreatedResponse(c, "Account registered successfully", account)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			api.UnauthorizedResponse(c)
			return
		}
		h.logger.Error(err, logger.Fields{"op": "accounts.login"})
		api.InternalErrorResponse(c, "Failed to log in")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

func (h *Handler) GetProfile(c *gin.Context) {
	accountID, ok := AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	account, err := h.service.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Account")
			return
		}
		api.InternalErrorResponse(c, "Failed to load profile")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Profile retrieved", account)
}
