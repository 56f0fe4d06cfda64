package models

import (
	"time"

	"github.com/google/uuid"
)

// ContestStatus represents the oracle-resolution status of a contest
type ContestStatus string

const (
	ContestStatusUnverified           ContestStatus = "unverified"
	ContestStatusVerified             ContestStatus = "verified"
	ContestStatusScored               ContestStatus = "scored"
	ContestStatusRequiresConfirmation ContestStatus = "requires_confirmation"
	ContestStatusScoredManually       ContestStatus = "scored_manually"

	// ContestStatusNotMatching is retained for log compatibility with the
	// earlier dual-oracle comparison design. New code never produces it;
	// cross-source comparison is delegated to the oracle network.
	ContestStatusNotMatching ContestStatus = "not_matching"
)

// Contest represents one real-world sporting event. Records are append-only;
// scores are meaningful only once the status reaches Scored or ScoredManually.
type Contest struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatorID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"creator_id"`
	Status        ContestStatus `gorm:"type:varchar(30);not null;default:'unverified';index" json:"status"`
	AwayScore     int32         `gorm:"not null;default:0" json:"away_score"`
	HomeScore     int32         `gorm:"not null;default:0" json:"home_score"`
	RundownID     string        `gorm:"type:varchar(100);not null" json:"rundown_id"`
	SportspageID  string        `gorm:"type:varchar(100);not null" json:"sportspage_id"`
	JsonoddsID    string        `gorm:"type:varchar(100);not null" json:"jsonodds_id"`
	LastRequestAt *time.Time    `gorm:"type:timestamptz" json:"last_request_at"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Speculations []Speculation `gorm:"foreignKey:ContestID" json:"-"`
}

// TableName specifies the table name for Contest model
func (*Contest) TableName() string {
	return "contests"
}

// HasFinalScore reports whether the contest score is authoritative.
func (c *Contest) HasFinalScore() bool {
	return c.Status == ContestStatusScored || c.Status == ContestStatusScoredManually
}

// IsScoreable reports whether a score-fetch request may be dispatched.
func (c *Contest) IsScoreable() bool {
	return c.Status == ContestStatusVerified || c.Status == ContestStatusNotMatching
}

// RequestTimerExpired reports whether the per-contest rate limiter allows a
// new oracle request at the given instant.
func (c *Contest) RequestTimerExpired(now time.Time, interval time.Duration) bool {
	if c.LastRequestAt == nil {
		return true
	}
	return !now.Before(c.LastRequestAt.Add(interval))
}

// Verify advances the contest from Unverified to Verified. The oracle program
// performs cross-source identity comparison; a non-error response confirms it.
func (c *Contest) Verify() error {
	if c.Status != ContestStatusUnverified {
		return ErrContestStatusInvalid
	}
	c.Status = ContestStatusVerified
	return nil
}

// ApplyScore records an oracle-reported final score. A 0-0 result parks the
// contest in RequiresConfirmation: a genuine scoreless final is rare enough
// across the supported sports to be indistinguishable from an oracle outage
// without human confirmation.
func (c *Contest) ApplyScore(awayScore, homeScore int32) error {
	if c.Status != ContestStatusVerified && c.Status != ContestStatusNotMatching {
		return ErrContestStatusInvalid
	}
	c.AwayScore = awayScore
	c.HomeScore = homeScore
	if awayScore == 0 && homeScore == 0 {
		c.Status = ContestStatusRequiresConfirmation
	} else {
		c.Status = ContestStatusScored
	}
	return nil
}

// ScoreManually overrides the score from a manager. Reachable only from the
// confirmation and legacy non-matching states.
func (c *Contest) ScoreManually(awayScore, homeScore int32) error {
	if c.Status != ContestStatusRequiresConfirmation && c.Status != ContestStatusNotMatching {
		return ErrContestUnableToBeScoredManually
	}
	c.AwayScore = awayScore
	c.HomeScore = homeScore
	c.Status = ContestStatusScoredManually
	return nil
}

// DecodeOracleScore unpacks the low 32 bits of a scoring response,
// encoded as away*1000 + home with both scores assumed below 1000.
func DecodeOracleScore(packed uint32) (awayScore, homeScore int32) {
	return int32(packed / 1000), int32(packed % 1000)
}
