package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OracleRequestKind distinguishes the two request shapes sent to the oracle
// network: the first request against a contest verifies cross-source identity,
// subsequent requests fetch the final score.
type OracleRequestKind string

const (
	OracleRequestKindVerify OracleRequestKind = "verify"
	OracleRequestKindScore  OracleRequestKind = "score"
)

// OracleRequest is a durable correlation entry connecting an asynchronous
// oracle dispatch to its contest. Entries are append-only and marked consumed
// when a terminal response is applied or a newer request supersedes them.
type OracleRequest struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ContestID  int64             `gorm:"not null;index" json:"contest_id"`
	Kind       OracleRequestKind `gorm:"type:varchar(10);not null" json:"kind"`
	Consumed   bool              `gorm:"not null;default:false" json:"consumed"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	ConsumedAt *time.Time        `gorm:"type:timestamptz" json:"consumed_at"`

	Contest *Contest `gorm:"foreignKey:ContestID" json:"-"`
}

// TableName specifies the table name for OracleRequest model
func (*OracleRequest) TableName() string {
	return "oracle_requests"
}

// BeforeCreate sets up the model before creation
func (r *OracleRequest) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Consume marks the correlation entry as terminally handled.
func (r *OracleRequest) Consume(now time.Time) error {
	if r.Consumed {
		return ErrOracleRequestConsumed
	}
	r.Consumed = true
	r.ConsumedAt = &now
	return nil
}
