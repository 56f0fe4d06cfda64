package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/ospex-org/ospex/models"
)

// RegisterRequest represents the request to create an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request to log in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GrantCapabilityRequest names a capability to grant or revoke.
type GrantCapabilityRequest struct {
	Capability string `json:"capability" binding:"required,oneof=relayer scoremanager subscriptionmanager sourcemanager admin"`
}

// Response represents the response for account data.
type Response struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Capabilities []string  `json:"capabilities,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	Account     Response `json:"account"`
}

// ToResponse maps an account model to its API representation.
func ToResponse(account *models.Account) *Response {
	caps := make([]string, 0, len(account.Capabilities))
	for i := range account.Capabilities {
		caps = append(caps, account.Capabilities[i].Name)
	}
	return &Response{
		ID:           account.ID,
		Email:        account.Email,
		Capabilities: caps,
		CreatedAt:    account.CreatedAt,
	}
}
