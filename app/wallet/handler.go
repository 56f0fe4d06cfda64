package wallet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app/accounts"
	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/models"
)

// Handler handles HTTP requests for wallet operations
type Handler struct {
	service Service
}

// NewHandler creates a new wallet handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetWallet(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	wallet, err := h.service.GetWallet(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Wallet")
			return
		}
		api.InternalErrorResponse(c, "Failed to load wallet")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Wallet retrieved", wallet)
}

func (h *Handler) Faucet(c *gin.Context) {
	var req FaucetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err)
		return
	}

	wallet, err := h.service.Faucet(c.Request.Context(), req.AccountID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRecordNotFound):
			api.NotFoundResponse(c, "Wallet")
		case errors.Is(err, models.ErrInvalidTransactionAmount):
			api.BadRequestResponse(c, err.Error())
		default:
			api.InternalErrorResponse(c, "Failed to credit wallet")
		}
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Wallet credited", wallet)
}

func (h *Handler) GetTransactions(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transactions, err := h.service.GetTransactions(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Wallet")
			return
		}
		api.InternalErrorResponse(c, "Failed to load transactions")
		return
	}

	api.ListResponse(c, "Transactions retrieved", transactions, len(transactions))
}
