package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ospex-org/ospex/models"
	"github.com/ospex-org/ospex/tests/suites"
)

type ServiceTestSuite struct {
	suites.RepositoryTestSuite
	repo      Repository
	custodian Custodian
	svc       Service
	config    *Config
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) BeforeTest(suiteName, testName string) {
	s.RepositoryTestSuite.BeforeTest(suiteName, testName)

	s.config = GetDefaultConfig()
	s.repo = NewRepository(s.DB)
	s.custodian = NewCustodian(s.repo)
	s.svc = NewService(s.repo, s.DB, s.config)
}

func (s *ServiceTestSuite) createAccount(email string) uuid.UUID {
	account := &models.Account{Email: email}
	s.Require().NoError(account.SetPassword("password123"))
	s.Require().NoError(s.DB.Create(account).Error)
	return account.ID
}

func (s *ServiceTestSuite) TestProvisionSeedsBootstrapBalance() {
	accountID := s.createAccount("fresh@ospex.org")

	s.Require().NoError(s.svc.Provision(context.Background(), accountID))

	resp, err := s.svc.GetWallet(context.Background(), accountID)
	s.Require().NoError(err)
	s.True(resp.Balance.Equal(s.config.BootstrapAmount))

	transactions, err := s.svc.GetTransactions(context.Background(), accountID, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(transactions, 1)
	s.Equal(models.TransactionCategoryBootstrap, transactions[0].Category)
	s.True(transactions[0].Amount.Equal(s.config.BootstrapAmount))
}

func (s *ServiceTestSuite) TestProvisionIsIdempotent() {
	accountID := s.createAccount("twice@ospex.org")

	s.Require().NoError(s.svc.Provision(context.Background(), accountID))
	s.Require().NoError(s.svc.Provision(context.Background(), accountID))

	s.Equal(int64(1), s.CountRecords("wallets"))
	s.Equal(int64(1), s.CountRecords("transactions"))
}

func (s *ServiceTestSuite) TestFaucetCreditsExistingWallet() {
	accountID := s.createAccount("faucet@ospex.org")
	s.Require().NoError(s.svc.Provision(context.Background(), accountID))

	amount := decimal.NewFromInt(5_000_000)
	resp, err := s.svc.Faucet(context.Background(), accountID, amount)
	s.Require().NoError(err)
	s.True(resp.Balance.Equal(s.config.BootstrapAmount.Add(amount)))

	_, err = s.svc.Faucet(context.Background(), accountID, decimal.Zero)
	s.ErrorIs(err, models.ErrInvalidTransactionAmount)

	_, err = s.svc.Faucet(context.Background(), uuid.New(), amount)
	s.ErrorIs(err, models.ErrRecordNotFound)
}

func (s *ServiceTestSuite) TestGetWalletNotFound() {
	_, err := s.svc.GetWallet(context.Background(), uuid.New())
	s.ErrorIs(err, models.ErrRecordNotFound)
}

func (s *ServiceTestSuite) TestTransferMovesFundsWithDoubleEntry() {
	from := s.createAccount("payer@ospex.org")
	to := s.createAccount("payee@ospex.org")
	s.Require().NoError(s.svc.Provision(context.Background(), from))
	s.Require().NoError(s.svc.Provision(context.Background(), to))

	amount := decimal.NewFromInt(3_000_000)
	speculationID := int64(42)
	err := s.custodian.Transfer(context.Background(),
		Movement{AccountID: from, Amount: amount, Category: models.TransactionCategoryStake, SpeculationID: &speculationID},
		Movement{AccountID: to, Amount: amount, Category: models.TransactionCategoryStake, SpeculationID: &speculationID})
	s.Require().NoError(err)

	fromWallet, err := s.svc.GetWallet(context.Background(), from)
	s.Require().NoError(err)
	toWallet, err := s.svc.GetWallet(context.Background(), to)
	s.Require().NoError(err)
	s.True(fromWallet.Balance.Equal(s.config.BootstrapAmount.Sub(amount)))
	s.True(toWallet.Balance.Equal(s.config.BootstrapAmount.Add(amount)))

	// One debit and one credit entry, both tagged with the speculation.
	var entries []models.Transaction
	s.Require().NoError(s.DB.Where("speculation_id = ?", speculationID).
		Order("type").Find(&entries).Error)
	s.Require().Len(entries, 2)
	s.Equal(models.TransactionTypeCredit, entries[0].Type)
	s.Equal(models.TransactionTypeDebit, entries[1].Type)
	s.True(entries[1].BalanceBefore.Equal(s.config.BootstrapAmount))
	s.True(entries[1].BalanceAfter.Equal(fromWallet.Balance))
}

func (s *ServiceTestSuite) TestDebitInsufficientBalance() {
	accountID := s.createAccount("poor@ospex.org")
	s.Require().NoError(s.DB.Create(&models.Wallet{
		AccountID: accountID,
		Balance:   decimal.NewFromInt(100),
	}).Error)

	err := s.custodian.Debit(context.Background(), Movement{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(101),
		Category:  models.TransactionCategoryStake,
	})
	s.ErrorIs(err, models.ErrInsufficientBalance)

	resp, err := s.svc.GetWallet(context.Background(), accountID)
	s.Require().NoError(err)
	s.True(resp.Balance.Equal(decimal.NewFromInt(100)))
}

func (s *ServiceTestSuite) TestDebitUnknownWallet() {
	err := s.custodian.Debit(context.Background(), Movement{
		AccountID: uuid.New(),
		Amount:    decimal.NewFromInt(1),
		Category:  models.TransactionCategoryStake,
	})
	s.ErrorIs(err, models.ErrRecordNotFound)
}

func (s *ServiceTestSuite) TestGetTransactionsCapsLimit() {
	accountID := s.createAccount("pager@ospex.org")
	s.Require().NoError(s.svc.Provision(context.Background(), accountID))

	transactions, err := s.svc.GetTransactions(context.Background(), accountID, 500, 0)
	s.Require().NoError(err)
	s.Len(transactions, 1)
}
