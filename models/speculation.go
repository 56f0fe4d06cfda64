package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SpeculationStatus represents the lifecycle status of a speculation
type SpeculationStatus string

const (
	SpeculationStatusOpen   SpeculationStatus = "open"
	SpeculationStatusLocked SpeculationStatus = "locked"
	SpeculationStatusClosed SpeculationStatus = "closed"
)

// ScorerType identifies the outcome resolver bound to a speculation
type ScorerType string

const (
	ScorerTypeMoneyline ScorerType = "moneyline"
	ScorerTypeSpread    ScorerType = "spread"
	ScorerTypeTotal     ScorerType = "total"
)

// WinSide represents the resolved outcome category of a speculation
type WinSide string

const (
	WinSideTBD     WinSide = "tbd"
	WinSideAway    WinSide = "away"
	WinSideHome    WinSide = "home"
	WinSideOver    WinSide = "over"
	WinSideUnder   WinSide = "under"
	WinSidePush    WinSide = "push"
	WinSideForfeit WinSide = "forfeit"
	WinSideInvalid WinSide = "invalid"
	WinSideVoid    WinSide = "void"
)

// IsDecisive reports whether the outcome redistributes the losing pool to
// winners. Non-decisive terminal outcomes refund each participant's own stake.
func (w WinSide) IsDecisive() bool {
	switch w {
	case WinSideAway, WinSideHome, WinSideOver, WinSideUnder:
		return true
	}
	return false
}

// PoolSide identifies one of the two opposing stake aggregates: upper is
// away-or-over, lower is home-or-under.
type PoolSide string

const (
	PoolSideUpper PoolSide = "upper"
	PoolSideLower PoolSide = "lower"
)

// WinningPoolSide maps a decisive win side to the pool that gets paid.
func (w WinSide) WinningPoolSide() (PoolSide, bool) {
	switch w {
	case WinSideAway, WinSideOver:
		return PoolSideUpper, true
	case WinSideHome, WinSideUnder:
		return PoolSideLower, true
	}
	return "", false
}

// Speculation represents a single wager proposition tied to one contest.
// Once Closed the win side is never TBD and neither field mutates again.
type Speculation struct {
	ID                 int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ContestID          int64             `gorm:"not null;index" json:"contest_id"`
	CreatorID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"creator_id"`
	Description        string            `gorm:"type:text" json:"description,omitempty"`
	ScorerType         ScorerType        `gorm:"type:varchar(20);not null" json:"scorer_type"`
	TheNumber          decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"the_number"`
	UpperAmount        decimal.Decimal   `gorm:"type:decimal(30,0);not null;default:0" json:"upper_amount"`
	LowerAmount        decimal.Decimal   `gorm:"type:decimal(30,0);not null;default:0" json:"lower_amount"`
	LockTime           time.Time         `gorm:"type:timestamptz;not null;index" json:"lock_time"`
	Status             SpeculationStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	WinSide            WinSide           `gorm:"type:varchar(20);not null;default:'tbd'" json:"win_side"`
	NextScoreAttemptAt time.Time         `gorm:"type:timestamptz;not null" json:"next_score_attempt_at"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	Contest   *Contest   `gorm:"foreignKey:ContestID" json:"contest,omitempty"`
	Positions []Position `gorm:"foreignKey:SpeculationID" json:"-"`
}

// TableName specifies the table name for Speculation model
func (*Speculation) TableName() string {
	return "speculations"
}

// IsOpen reports whether new positions may still be created at the given
// instant. Both the status and the lock time gate position creation; the
// double check covers relayer latency around lock time.
func (s *Speculation) IsOpen(now time.Time) bool {
	return s.Status == SpeculationStatusOpen && now.Before(s.LockTime)
}

// TotalPool returns the combined stake across both sides.
func (s *Speculation) TotalPool() decimal.Decimal {
	return s.UpperAmount.Add(s.LowerAmount)
}

// AddStake increments the pool for one side. Only valid while Open.
func (s *Speculation) AddStake(side PoolSide, amount decimal.Decimal) error {
	if s.Status != SpeculationStatusOpen {
		return ErrSpeculationHasStarted
	}
	switch side {
	case PoolSideUpper:
		s.UpperAmount = s.UpperAmount.Add(amount)
	case PoolSideLower:
		s.LowerAmount = s.LowerAmount.Add(amount)
	default:
		return ErrInvalidPoolSide
	}
	return nil
}

// Lock transitions Open to Locked, or short-circuits to Closed/Invalid when
// either pool is empty: a one-sided market has no counterparty to pay from
// and must never reach scoring.
func (s *Speculation) Lock() error {
	if s.Status != SpeculationStatusOpen {
		return ErrSpeculationNotLockable
	}
	if s.UpperAmount.IsZero() || s.LowerAmount.IsZero() {
		s.Status = SpeculationStatusClosed
		s.WinSide = WinSideInvalid
		return nil
	}
	s.Status = SpeculationStatusLocked
	return nil
}

// Close records the resolved win side and seals the speculation.
func (s *Speculation) Close(winSide WinSide) error {
	if s.Status == SpeculationStatusClosed {
		return ErrSpeculationStatusIsClosed
	}
	if winSide == WinSideTBD {
		return ErrWinSideAlreadySet
	}
	s.Status = SpeculationStatusClosed
	s.WinSide = winSide
	return nil
}

// Forfeit closes the speculation from Open, used when the underlying contest
// is postponed or canceled before lock.
func (s *Speculation) Forfeit() error {
	if s.Status != SpeculationStatusOpen {
		return ErrSpeculationMayNotBeForfeited
	}
	s.Status = SpeculationStatusClosed
	s.WinSide = WinSideForfeit
	return nil
}

// Void closes a Locked speculation whose contest never resolved. Allowed only
// once the grace period past lock time has elapsed.
func (s *Speculation) Void(now time.Time, gracePeriod time.Duration) error {
	if s.Status != SpeculationStatusLocked {
		return ErrSpeculationMayNotBeVoided
	}
	if now.Before(s.LockTime.Add(gracePeriod)) {
		return ErrSpeculationMayNotBeVoided
	}
	s.Status = SpeculationStatusClosed
	s.WinSide = WinSideVoid
	return nil
}

// CanAttemptScore reports whether a scoring attempt is allowed. The timer is
// seeded with the lock time, so the first attempt cannot precede it; each
// attempt pushes the next window out by the configured interval.
func (s *Speculation) CanAttemptScore(now time.Time) bool {
	return !now.Before(s.NextScoreAttemptAt)
}

// RecordScoreAttempt schedules the next permitted scoring attempt.
func (s *Speculation) RecordScoreAttempt(now time.Time, interval time.Duration) {
	s.NextScoreAttemptAt = now.Add(interval)
}
