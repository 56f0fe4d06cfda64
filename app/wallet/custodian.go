package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/models"
)

// Movement describes one custody movement to apply against an account's
// wallet. SpeculationID and ContestID tie the ledger entry back to the
// state change that caused it.
type Movement struct {
	AccountID     uuid.UUID
	Amount        decimal.Decimal
	Category      models.TransactionCategory
	SpeculationID *int64
	ContestID     *int64
}

// Custodian moves funds between wallets with a full ledger trail. Callers
// that need atomicity with their own state changes rebind it into their
// transaction with WithTx.
type Custodian interface {
	Debit(ctx context.Context, m Movement) error
	Credit(ctx context.Context, m Movement) error
	// Transfer debits one account and credits another as a pair.
	Transfer(ctx context.Context, from, to Movement) error
	WithTx(tx *gorm.DB) Custodian
}

type custodian struct {
	repo Repository
}

func NewCustodian(repo Repository) Custodian {
	return &custodian{repo: repo}
}

func (c *custodian) WithTx(tx *gorm.DB) Custodian {
	return &custodian{repo: c.repo.WithTx(tx)}
}

func (c *custodian) Debit(ctx context.Context, m Movement) error {
	wallet, err := c.repo.GetWalletByAccountForUpdate(ctx, m.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return fmt.Errorf("failed to load wallet: %w", err)
	}

	balanceBefore := wallet.Balance
	if err := wallet.Debit(m.Amount); err != nil {
		return err
	}

	if err := c.repo.UpdateWallet(ctx, wallet); err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	return c.repo.CreateTransaction(ctx, &models.Transaction{
		WalletID:      wallet.ID,
		Type:          models.TransactionTypeDebit,
		Category:      m.Category,
		Amount:        m.Amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  wallet.Balance,
		SpeculationID: m.SpeculationID,
		ContestID:     m.ContestID,
	})
}

func (c *custodian) Credit(ctx context.Context, m Movement) error {
	wallet, err := c.repo.GetWalletByAccountForUpdate(ctx, m.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return fmt.Errorf("failed to load wallet: %w", err)
	}

	balanceBefore := wallet.Balance
	if err := wallet.Credit(m.Amount); err != nil {
		return err
	}

	if err := c.repo.UpdateWallet(ctx, wallet); err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	return c.repo.CreateTransaction(ctx, &models.Transaction{
		WalletID:      wallet.ID,
		Type:          models.TransactionTypeCredit,
		Category:      m.Category,
		Amount:        m.Amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  wallet.Balance,
		SpeculationID: m.SpeculationID,
		ContestID:     m.ContestID,
	})
}

func (c *custodian) Transfer(ctx context.Context, from, to Movement) error {
	if err := c.Debit(ctx, from); err != nil {
		return err
	}
	return c.Credit(ctx, to)
}
