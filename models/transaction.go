package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType represents the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// TransactionCategory classifies why funds moved
type TransactionCategory string

const (
	TransactionCategoryStake        TransactionCategory = "stake"
	TransactionCategoryContribution TransactionCategory = "contribution"
	TransactionCategoryPayout       TransactionCategory = "payout"
	TransactionCategoryOracleFee    TransactionCategory = "oracle_fee"
	TransactionCategoryBootstrap    TransactionCategory = "bootstrap"
)

// Transaction is an immutable ledger entry for one wallet movement. Every
// transfer writes a debit entry and a credit entry inside the same database
// transaction as the state change that triggered it.
type Transaction struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	WalletID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"wallet_id"`
	Type          TransactionType     `gorm:"type:varchar(10);not null" json:"type"`
	Category      TransactionCategory `gorm:"type:varchar(20);not null" json:"category"`
	Amount        decimal.Decimal     `gorm:"type:decimal(30,0);not null" json:"amount"`
	BalanceBefore decimal.Decimal     `gorm:"type:decimal(30,0);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal     `gorm:"type:decimal(30,0);not null" json:"balance_after"`
	SpeculationID *int64              `gorm:"index" json:"speculation_id,omitempty"`
	ContestID     *int64              `gorm:"index" json:"contest_id,omitempty"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`

	Wallet *Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

// TableName specifies the table name for Transaction model
func (*Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate sets up the model before creation
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Validate performs validation on the transaction model
func (t *Transaction) Validate() error {
	if t.WalletID == uuid.Nil {
		return ErrInvalidAccountID
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	if t.BalanceAfter.IsNegative() {
		return ErrNegativeBalance
	}
	return nil
}
