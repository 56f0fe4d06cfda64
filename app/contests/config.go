package contests

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ospex-org/ospex/models"
)

type Config struct {
	// DefaultFee seeds the oracle settings row on first use; afterwards the
	// subscription manager owns the value.
	DefaultFee          decimal.Decimal `env:"ORACLE_DEFAULT_FEE"`
	DefaultSubscription uint64          `env:"ORACLE_SUBSCRIPTION"`
	DefaultGasLimit     uint32          `env:"ORACLE_GAS_LIMIT" default:"300000"`

	// FeeSinkAccountID receives the oracle fee charged on every dispatch.
	FeeSinkAccountID uuid.UUID `env:"ORACLE_FEE_SINK_ACCOUNT_ID"`

	// RequestInterval is the per-contest floor between oracle dispatches.
	RequestInterval time.Duration `env:"ORACLE_REQUEST_INTERVAL" default:"1h"`

	// CallbackURL is where the oracle network posts responses.
	CallbackURL string `env:"ORACLE_CALLBACK_URL"`
	// CallbackToken gates the callback endpoint.
	CallbackToken string `env:"ORACLE_CALLBACK_TOKEN"`
}

func (c *Config) Validate() error {
	if c.DefaultFee.LessThanOrEqual(decimal.Zero) {
		return models.ErrInvalidOracleFee
	}
	if c.RequestInterval <= 0 {
		return models.ErrInvalidRequestInterval
	}
	if c.FeeSinkAccountID == uuid.Nil {
		return models.ErrInvalidAccountID
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		DefaultFee:      decimal.NewFromInt(1_000_000_000),
		DefaultGasLimit: 300_000,
		RequestInterval: time.Hour,
	}
}
