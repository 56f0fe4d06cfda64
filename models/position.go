package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position represents one account's aggregate stake within one speculation.
// Keyed by (speculation, account): repeated contributions accumulate into the
// same record, and the claimed latch flips false to true exactly once.
type Position struct {
	SpeculationID int64           `gorm:"primaryKey;autoIncrement:false" json:"speculation_id"`
	AccountID     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"account_id"`
	UpperAmount   decimal.Decimal `gorm:"type:decimal(30,0);not null;default:0" json:"upper_amount"`
	LowerAmount   decimal.Decimal `gorm:"type:decimal(30,0);not null;default:0" json:"lower_amount"`
	Claimed       bool            `gorm:"not null;default:false" json:"claimed"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Speculation *Speculation `gorm:"foreignKey:SpeculationID" json:"-"`
	Account     *Account     `gorm:"foreignKey:AccountID" json:"-"`
}

// TableName specifies the table name for Position model
func (*Position) TableName() string {
	return "positions"
}

// AddStake accumulates stake on one side of the position.
func (p *Position) AddStake(side PoolSide, amount decimal.Decimal) error {
	switch side {
	case PoolSideUpper:
		p.UpperAmount = p.UpperAmount.Add(amount)
	case PoolSideLower:
		p.LowerAmount = p.LowerAmount.Add(amount)
	default:
		return ErrInvalidPoolSide
	}
	return nil
}

// TotalStake returns the combined stake across both sides.
func (p *Position) TotalStake() decimal.Decimal {
	return p.UpperAmount.Add(p.LowerAmount)
}

// StakeOn returns the stake held on the given pool side.
func (p *Position) StakeOn(side PoolSide) decimal.Decimal {
	if side == PoolSideUpper {
		return p.UpperAmount
	}
	return p.LowerAmount
}

// EligibleFor reports whether the position can claim for the given outcome:
// stake on the winning side for a decisive outcome, any stake at all for a
// non-decisive terminal outcome (push, forfeit, invalid, void).
func (p *Position) EligibleFor(winSide WinSide) bool {
	if side, ok := winSide.WinningPoolSide(); ok {
		return p.StakeOn(side).IsPositive()
	}
	switch winSide {
	case WinSidePush, WinSideForfeit, WinSideInvalid, WinSideVoid:
		return p.TotalStake().IsPositive()
	}
	return false
}

// Claim flips the one-shot claimed latch. The latch is set before any funds
// move, so a second claim for the same pair always fails.
func (p *Position) Claim() error {
	if p.Claimed {
		return ErrWinningsAlreadyClaimed
	}
	p.Claimed = true
	return nil
}
