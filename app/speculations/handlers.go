package speculations

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app/accounts"
	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/models"
)

// Handler handles HTTP requests for speculation operations
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new speculation handler
func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

func (h *Handler) CreateSpeculation(c *gin.Context) {
	creatorID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req CreateSpeculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	speculation, err := h.service.CreateSpeculation(c.Request.Context(), creatorID, &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.CreatedResponse(c, "Speculation created", speculation)
}

func (h *Handler) CreatePosition(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}
	id, err := speculationID(c)
	if err != nil {
		api.BadRequestResponse(c, "invalid speculation id")
		return
	}

	var req CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	position, err := h.service.CreatePosition(c.Request.Context(), accountID, id, &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.CreatedResponse(c, "Position created", position)
}

func (h *Handler) LockSpeculation(c *gin.Context) {
	h.transition(c, h.service.LockSpeculation, "Speculation locked")
}

func (h *Handler) ScoreSpeculation(c *gin.Context) {
	h.transition(c, h.service.ScoreSpeculation, "Speculation scored")
}

func (h *Handler) ForfeitSpeculation(c *gin.Context) {
	h.transition(c, h.service.ForfeitSpeculation, "Speculation forfeited")
}

func (h *Handler) VoidSpeculation(c *gin.Context) {
	h.transition(c, h.service.VoidSpeculation, "Speculation voided")
}

func (h *Handler) Claim(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}
	id, err := speculationID(c)
	if err != nil {
		api.BadRequestResponse(c, "invalid speculation id")
		return
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	claim, err := h.service.Claim(c.Request.Context(), accountID, id, &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Winnings claimed", claim)
}

func (h *Handler) GetSpeculation(c *gin.Context) {
	id, err := speculationID(c)
	if err != nil {
		api.BadRequestResponse(c, "invalid speculation id")
		return
	}

	speculation, err := h.service.GetSpeculation(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Speculation retrieved", speculation)
}

func (h *Handler) GetSpeculationsByContest(c *gin.Context) {
	contestID, err := strconv.ParseInt(c.Query("contest_id"), 10, 64)
	if err != nil {
		api.BadRequestResponse(c, "contest_id is required")
		return
	}

	speculations, err := h.service.GetSpeculationsByContest(c.Request.Context(), contestID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.ListResponse(c, "Speculations retrieved", speculations, len(speculations))
}

func (h *Handler) GetMyPosition(c *gin.Context) {
	accountID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}
	id, err := speculationID(c)
	if err != nil {
		api.BadRequestResponse(c, "invalid speculation id")
		return
	}

	position, err := h.service.GetPosition(c.Request.Context(), id, accountID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Position retrieved", position)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, id int64) (*Response, error), message string) {
	id, err := speculationID(c)
	if err != nil {
		api.BadRequestResponse(c, "invalid speculation id")
		return
	}

	speculation, err := op(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, message, speculation)
}

func speculationID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Speculation")
	case errors.Is(err, models.ErrTimerHasNotExpired),
		errors.Is(err, models.ErrScoreNotFinalized),
		errors.Is(err, models.ErrZeroZeroScoreMustBeVerified):
		api.TooEarlyResponse(c, err.Error())
	case errors.Is(err, models.ErrSpeculationAmountNotAboveMinimum),
		errors.Is(err, models.ErrSpeculationAmountIsAboveMaximum),
		errors.Is(err, models.ErrContributionMayNotExceedTotalAmount),
		errors.Is(err, models.ErrInvalidPoolSide),
		errors.Is(err, models.ErrInvalidTransactionAmount),
		errors.Is(err, models.ErrUnknownScorerType):
		api.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrInsufficientBalance):
		api.ErrorResponse(c, http.StatusPaymentRequired, "INSUFFICIENT_BALANCE", err.Error(), nil)
	case errors.Is(err, models.ErrSpeculationHasStarted),
		errors.Is(err, models.ErrSpeculationStatusIsClosed),
		errors.Is(err, models.ErrSpeculationStatusIsNotClosed),
		errors.Is(err, models.ErrSpeculationMayNotBeForfeited),
		errors.Is(err, models.ErrSpeculationMayNotBeVoided),
		errors.Is(err, models.ErrSpeculationNotLockable),
		errors.Is(err, models.ErrNonMatchingScoreFromOracles),
		errors.Is(err, models.ErrWinningsAlreadyClaimed),
		errors.Is(err, models.ErrWinSideAlreadySet):
		api.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrIneligibleForWinnings):
		api.ForbiddenResponse(c, err.Error())
	default:
		h.logger.Error(err, logger.Fields{"op": "speculations"})
		api.InternalErrorResponse(c, "Speculation operation failed")
	}
}
