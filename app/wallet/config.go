package wallet

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ospex-org/ospex/models"
)

type Config struct {
	// BootstrapAmount is credited to every new wallet so accounts can
	// participate without an external funding flow.
	BootstrapAmount decimal.Decimal `env:"WALLET_BOOTSTRAP_AMOUNT"`
	// TreasuryAccountID receives oracle fees and voluntary contributions.
	TreasuryAccountID uuid.UUID `env:"TREASURY_ACCOUNT_ID"`
}

func (c *Config) Validate() error {
	if c.BootstrapAmount.IsNegative() {
		return models.ErrInvalidTransactionAmount
	}
	if c.TreasuryAccountID == uuid.Nil {
		return models.ErrInvalidAccountID
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		BootstrapAmount: decimal.NewFromInt(10_000_000_000),
	}
}
