package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ospex-org/ospex/models"
)

// FaucetRequest credits an account's wallet from the admin surface.
type FaucetRequest struct {
	AccountID uuid.UUID       `json:"account_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// Response represents the response for wallet data.
type Response struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionResponse represents one ledger entry.
type TransactionResponse struct {
	ID            uuid.UUID                  `json:"id"`
	Type          models.TransactionType     `json:"type"`
	Category      models.TransactionCategory `json:"category"`
	Amount        decimal.Decimal            `json:"amount"`
	BalanceAfter  decimal.Decimal            `json:"balance_after"`
	SpeculationID *int64                     `json:"speculation_id,omitempty"`
	ContestID     *int64                     `json:"contest_id,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
}

func ToWalletResponse(w *models.Wallet) *Response {
	return &Response{
		ID:        w.ID,
		AccountID: w.AccountID,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
	}
}

func ToTransactionResponse(t *models.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Category:      t.Category,
		Amount:        t.Amount,
		BalanceAfter:  t.BalanceAfter,
		SpeculationID: t.SpeculationID,
		ContestID:     t.ContestID,
		CreatedAt:     t.CreatedAt,
	}
}
