package contests

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ospex-org/ospex/models"
)

// CreateContestRequest registers a contest from three provider identifiers.
// Source carries the oracle program payload whose hash must match the
// registered creation hash.
type CreateContestRequest struct {
	RundownID    string `json:"rundown_id" binding:"required,max=100"`
	SportspageID string `json:"sportspage_id" binding:"required,max=100"`
	JsonoddsID   string `json:"jsonodds_id" binding:"required,max=100"`
	Source       []byte `json:"source" binding:"required"`
}

// ScoreContestRequest triggers a score fetch for a verified contest.
type ScoreContestRequest struct {
	Source []byte `json:"source" binding:"required"`
}

// OracleCallbackRequest is the oracle network's answer posted back to the
// callback endpoint. Exactly one of Payload and Err is expected to be set.
type OracleCallbackRequest struct {
	RequestID uuid.UUID `json:"request_id" binding:"required"`
	Payload   []byte    `json:"payload"`
	Err       []byte    `json:"error"`
}

// ManualScoreRequest overrides a contest score from a score manager.
type ManualScoreRequest struct {
	AwayScore int32 `json:"away_score" binding:"min=0,max=999"`
	HomeScore int32 `json:"home_score" binding:"min=0,max=999"`
}

// UpdateSourceRequest rotates the registered program hash for a request kind.
type UpdateSourceRequest struct {
	Hash string `json:"hash" binding:"required,len=64,hexadecimal"`
}

// UpdateFeeRequest replaces the per-request oracle fee.
type UpdateFeeRequest struct {
	Fee decimal.Decimal `json:"fee" binding:"required"`
}

// Response represents the response for contest data.
type Response struct {
	ID            int64                `json:"id"`
	CreatorID     uuid.UUID            `json:"creator_id"`
	Status        models.ContestStatus `json:"status"`
	AwayScore     int32                `json:"away_score"`
	HomeScore     int32                `json:"home_score"`
	RundownID     string               `json:"rundown_id"`
	SportspageID  string               `json:"sportspage_id"`
	JsonoddsID    string               `json:"jsonodds_id"`
	LastRequestAt *time.Time           `json:"last_request_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func ToResponse(contest *models.Contest) *Response {
	return &Response{
		ID:            contest.ID,
		CreatorID:     contest.CreatorID,
		Status:        contest.Status,
		AwayScore:     contest.AwayScore,
		HomeScore:     contest.HomeScore,
		RundownID:     contest.RundownID,
		SportspageID:  contest.SportspageID,
		JsonoddsID:    contest.JsonoddsID,
		LastRequestAt: contest.LastRequestAt,
		CreatedAt:     contest.CreatedAt,
	}
}
