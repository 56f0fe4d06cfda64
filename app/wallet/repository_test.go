package wallet

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/models"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewRepository(gormDB), mock
}

func TestGetWalletByAccountForUpdate(t *testing.T) {
	repo, mock := newMockRepository(t)
	accountID := uuid.New()
	walletID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE account_id = \$1 ORDER BY "wallets"\."id" LIMIT \$2 FOR UPDATE`).
		WithArgs(accountID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "balance"}).
			AddRow(walletID, accountID, "1000000"))

	wallet, err := repo.GetWalletByAccountForUpdate(context.Background(), accountID)

	assert.NoError(t, err)
	assert.Equal(t, walletID, wallet.ID)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(1_000_000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWalletByAccountNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	accountID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "wallets"`).
		WithArgs(accountID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "balance"}))

	_, err := repo.GetWalletByAccount(context.Background(), accountID)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionRejectsInvalid(t *testing.T) {
	repo, mock := newMockRepository(t)

	// An invalid entry never reaches the database.
	err := repo.CreateTransaction(context.Background(), &models.Transaction{
		WalletID: uuid.New(),
		Type:     models.TransactionTypeDebit,
		Category: models.TransactionCategoryStake,
		Amount:   decimal.Zero,
	})

	assert.ErrorIs(t, err, models.ErrInvalidTransactionAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWalletTransactionsQuery(t *testing.T) {
	repo, mock := newMockRepository(t)
	walletID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE wallet_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(walletID, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_id", "type", "category", "amount"}).
			AddRow(uuid.New(), walletID, "credit", "bootstrap", "1000").
			AddRow(uuid.New(), walletID, "debit", "stake", "400"))

	transactions, err := repo.GetWalletTransactions(context.Background(), walletID, 10, 0)

	assert.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, models.TransactionCategoryBootstrap, transactions[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}
