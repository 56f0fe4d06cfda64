package speculations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ospex-org/ospex/models"
)

// CreateSpeculationRequest opens a new proposition against a contest.
type CreateSpeculationRequest struct {
	ContestID   int64             `json:"contest_id" binding:"required"`
	ScorerType  models.ScorerType `json:"scorer_type" binding:"required,oneof=moneyline spread total"`
	TheNumber   decimal.Decimal   `json:"the_number"`
	LockTime    time.Time         `json:"lock_time" binding:"required"`
	Description string            `json:"description" binding:"max=500"`
}

// CreatePositionRequest stakes funds on one side of a speculation.
// Contribution is an optional voluntary amount deducted from eventual
// winnings and routed to the treasury.
type CreatePositionRequest struct {
	Side         models.PoolSide `json:"side" binding:"required,oneof=upper lower"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Contribution decimal.Decimal `json:"contribution"`
}

// ClaimRequest settles a closed speculation for the caller. Contribution is
// deducted from the payout, clamped to it, and routed to the treasury.
type ClaimRequest struct {
	Contribution decimal.Decimal `json:"contribution"`
}

// Response represents the response for speculation data.
type Response struct {
	ID                 int64                    `json:"id"`
	ContestID          int64                    `json:"contest_id"`
	CreatorID          uuid.UUID                `json:"creator_id"`
	Description        string                   `json:"description,omitempty"`
	ScorerType         models.ScorerType        `json:"scorer_type"`
	TheNumber          decimal.Decimal          `json:"the_number"`
	UpperAmount        decimal.Decimal          `json:"upper_amount"`
	LowerAmount        decimal.Decimal          `json:"lower_amount"`
	LockTime           time.Time                `json:"lock_time"`
	Status             models.SpeculationStatus `json:"status"`
	WinSide            models.WinSide           `json:"win_side"`
	NextScoreAttemptAt time.Time                `json:"next_score_attempt_at"`
	CreatedAt          time.Time                `json:"created_at"`
}

// PositionResponse represents one account's aggregate position.
type PositionResponse struct {
	SpeculationID int64           `json:"speculation_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	UpperAmount   decimal.Decimal `json:"upper_amount"`
	LowerAmount   decimal.Decimal `json:"lower_amount"`
	Claimed       bool            `json:"claimed"`
}

// ClaimResponse reports the settled amounts for a claim.
type ClaimResponse struct {
	SpeculationID int64           `json:"speculation_id"`
	WinSide       models.WinSide  `json:"win_side"`
	Winnings      decimal.Decimal `json:"winnings"`
	Contribution  decimal.Decimal `json:"contribution"`
	NetPayout     decimal.Decimal `json:"net_payout"`
}

func ToResponse(s *models.Speculation) *Response {
	return &Response{
		ID:                 s.ID,
		ContestID:          s.ContestID,
		CreatorID:          s.CreatorID,
		Description:        s.Description,
		ScorerType:         s.ScorerType,
		TheNumber:          s.TheNumber,
		UpperAmount:        s.UpperAmount,
		LowerAmount:        s.LowerAmount,
		LockTime:           s.LockTime,
		Status:             s.Status,
		WinSide:            s.WinSide,
		NextScoreAttemptAt: s.NextScoreAttemptAt,
		CreatedAt:          s.CreatedAt,
	}
}

func ToPositionResponse(p *models.Position) *PositionResponse {
	return &PositionResponse{
		SpeculationID: p.SpeculationID,
		AccountID:     p.AccountID,
		UpperAmount:   p.UpperAmount,
		LowerAmount:   p.LowerAmount,
		Claimed:       p.Claimed,
	}
}
