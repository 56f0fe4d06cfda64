package contests

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app/accounts"
	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/models"
)

// Handler handles HTTP requests for contest operations
type Handler struct {
	service Service
	logger  logger.Logger
	config  *Config
}

// NewHandler creates a new contest handler
func NewHandler(service Service, log logger.Logger, config *Config) *Handler {
	return &Handler{service: service, logger: log, config: config}
}

func (h *Handler) CreateContest(c *gin.Context) {
	creatorID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	var req CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	contest, err := h.service.CreateContest(c.Request.Context(), creatorID, &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.CreatedResponse(c, "Contest created", contest)
}

func (h *Handler) ScoreContest(c *gin.Context) {
	payerID, ok := accounts.AccountIDFromContext(c)
	if !ok {
		api.UnauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.BadRequestResponse(c, "invalid contest id")
		return
	}

	var req ScoreContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	contest, err := h.service.ScoreContest(c.Request.Context(), payerID, id, &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusAccepted, "Score request dispatched", contest)
}

// OracleCallback receives responses from the oracle collaborator. It is
// mounted outside the auth middleware and gated by a shared token instead.
func (h *Handler) OracleCallback(c *gin.Context) {
	token := c.GetHeader("X-Oracle-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.config.CallbackToken)) != 1 {
		api.UnauthorizedResponse(c)
		return
	}

	var req OracleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.HandleOracleResponse(c.Request.Context(), &req); err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Response processed", nil)
}

func (h *Handler) ScoreContestManually(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.BadRequestResponse(c, "invalid contest id")
		return
	}

	var req ManualScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	contest, err := h.service.ScoreContestManually(c.Request.Context(), id, &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Contest scored manually", contest)
}

func (h *Handler) GetContest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.BadRequestResponse(c, "invalid contest id")
		return
	}

	contest, err := h.service.GetContest(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Contest retrieved", ToResponse(contest))
}

func (h *Handler) UpdateSourceHash(c *gin.Context) {
	kind := models.OracleRequestKind(c.Param("kind"))
	if kind != models.OracleRequestKindVerify && kind != models.OracleRequestKindScore {
		api.BadRequestResponse(c, "invalid request kind")
		return
	}

	var req UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.UpdateSourceHash(c.Request.Context(), kind, req.Hash); err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Source hash updated", nil)
}

func (h *Handler) UpdateOracleFee(c *gin.Context) {
	var req UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.service.UpdateOracleFee(c.Request.Context(), &req); err != nil {
		h.mapError(c, err)
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Oracle fee updated", nil)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Contest")
	case errors.Is(err, models.ErrOracleRequestNotFound):
		api.NotFoundResponse(c, "Oracle request")
	case errors.Is(err, models.ErrTimerHasNotExpired):
		api.TooEarlyResponse(c, err.Error())
	case errors.Is(err, models.ErrIncorrectHash),
		errors.Is(err, models.ErrOracleSourceNotRegistered),
		errors.Is(err, models.ErrInvalidOracleFee):
		api.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrLinkAmountTooLow):
		api.ErrorResponse(c, http.StatusPaymentRequired, "FEE_TRANSFER_FAILED", err.Error(), nil)
	case errors.Is(err, models.ErrScoreContestNotInReadyStatus),
		errors.Is(err, models.ErrContestUnableToBeScoredManually),
		errors.Is(err, models.ErrOracleRequestConsumed),
		errors.Is(err, models.ErrContestStatusInvalid):
		api.ConflictResponse(c, err.Error())
	default:
		h.logger.Error(err, logger.Fields{"op": "contests"})
		api.InternalErrorResponse(c, "Contest operation failed")
	}
}
