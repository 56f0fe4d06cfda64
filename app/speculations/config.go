package speculations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ospex-org/ospex/models"
)

type Config struct {
	// MinStakeAmount and MaxStakeAmount bound a single position creation,
	// in token smallest units.
	MinStakeAmount decimal.Decimal `env:"SPECULATION_MIN_STAKE"`
	MaxStakeAmount decimal.Decimal `env:"SPECULATION_MAX_STAKE"`

	// CustodyAccountID holds pooled stakes between position creation and
	// claim settlement.
	CustodyAccountID uuid.UUID `env:"CUSTODY_ACCOUNT_ID"`
	// TreasuryAccountID receives voluntary contributions.
	TreasuryAccountID uuid.UUID `env:"TREASURY_ACCOUNT_ID"`

	// ScoreAttemptInterval is the per-speculation floor between scoring
	// attempts once the lock time has passed.
	ScoreAttemptInterval time.Duration `env:"SPECULATION_SCORE_INTERVAL" default:"1h"`
	// VoidGracePeriod is how long past lock time a speculation must wait
	// before anyone may void it.
	VoidGracePeriod time.Duration `env:"SPECULATION_VOID_GRACE" default:"720h"`
}

func (c *Config) Validate() error {
	if c.MinStakeAmount.LessThanOrEqual(decimal.Zero) ||
		c.MaxStakeAmount.LessThan(c.MinStakeAmount) {
		return models.ErrInvalidStakeLimits
	}
	if c.CustodyAccountID == uuid.Nil || c.TreasuryAccountID == uuid.Nil {
		return models.ErrInvalidAccountID
	}
	if c.ScoreAttemptInterval <= 0 {
		return models.ErrInvalidRequestInterval
	}
	if c.VoidGracePeriod < 0 {
		return models.ErrInvalidVoidGracePeriod
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		MinStakeAmount:       decimal.NewFromInt(1_000_000),
		MaxStakeAmount:       decimal.NewFromInt(1_000_000_000_000),
		ScoreAttemptInterval: time.Hour,
		VoidGracePeriod:      30 * 24 * time.Hour,
	}
}
