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

type Service interface {
	// Provision creates the wallet for a new account, seeded with the
	// configured bootstrap amount.
	Provision(ctx context.Context, accountID uuid.UUID) error
	// Faucet credits an arbitrary amount into an account's wallet. Admin
	// surface for deployment bootstrap and test environments.
	Faucet(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*Response, error)
	GetWallet(ctx context.Context, accountID uuid.UUID) (*Response, error)
	GetTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]TransactionResponse, error)
}

type service struct {
	repo   Repository
	db     *gorm.DB
	config *Config
}

func NewService(repo Repository, db *gorm.DB, config *Config) Service {
	return &service{
		repo:   repo,
		db:     db,
		config: config,
	}
}

func (s *service) Provision(ctx context.Context, accountID uuid.UUID) error {
	existing, err := s.repo.GetWalletByAccount(ctx, accountID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing wallet: %w", err)
	}
	if existing != nil {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		wallet := &models.Wallet{
			AccountID: accountID,
			Balance:   decimal.Zero,
		}
		if err := txRepo.CreateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}

		if s.config.BootstrapAmount.LessThanOrEqual(decimal.Zero) {
			return nil
		}

		balanceBefore := wallet.Balance
		if err := wallet.Credit(s.config.BootstrapAmount); err != nil {
			return err
		}
		if err := txRepo.UpdateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("failed to seed wallet: %w", err)
		}

		return txRepo.CreateTransaction(ctx, &models.Transaction{
			WalletID:      wallet.ID,
			Type:          models.TransactionTypeCredit,
			Category:      models.TransactionCategoryBootstrap,
			Amount:        s.config.BootstrapAmount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  wallet.Balance,
		})
	})
}

func (s *service) Faucet(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*Response, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidTransactionAmount
	}

	var result *Response
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		wallet, err := txRepo.GetWalletByAccountForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrRecordNotFound
			}
			return fmt.Errorf("failed to load wallet: %w", err)
		}

		balanceBefore := wallet.Balance
		if err := wallet.Credit(amount); err != nil {
			return err
		}
		if err := txRepo.UpdateWallet(ctx, wallet); err != nil {
			return fmt.Errorf("failed to update wallet: %w", err)
		}

		if err := txRepo.CreateTransaction(ctx, &models.Transaction{
			WalletID:      wallet.ID,
			Type:          models.TransactionTypeCredit,
			Category:      models.TransactionCategoryBootstrap,
			Amount:        amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  wallet.Balance,
		}); err != nil {
			return err
		}

		result = ToWalletResponse(wallet)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) GetWallet(ctx context.Context, accountID uuid.UUID) (*Response, error) {
	wallet, err := s.repo.GetWalletByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return ToWalletResponse(wallet), nil
}

func (s *service) GetTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]TransactionResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	wallet, err := s.repo.GetWalletByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	transactions, err := s.repo.GetWalletTransactions(ctx, wallet.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet transactions: %w", err)
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = *ToTransactionResponse(&transactions[i])
	}
	return responses, nil
}
