package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OracleSettings is the singleton row of mutable oracle billing parameters.
// The subscription manager updates the fee without a redeploy; the source
// hashes live in OracleSource.
type OracleSettings struct {
	ID           int16           `gorm:"primaryKey;check:id = 1" json:"-"`
	Fee          decimal.Decimal `gorm:"type:decimal(30,0);not null" json:"fee"`
	Subscription uint64          `gorm:"not null" json:"subscription"`
	GasLimit     uint32          `gorm:"not null" json:"gas_limit"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for OracleSettings model
func (*OracleSettings) TableName() string {
	return "oracle_settings"
}

// SetFee replaces the per-request oracle fee.
func (s *OracleSettings) SetFee(fee decimal.Decimal) error {
	if fee.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidOracleFee
	}
	s.Fee = fee
	return nil
}
