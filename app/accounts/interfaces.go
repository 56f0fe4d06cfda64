package accounts

import (
	"context"

	"github.com/google/uuid"

	"github.com/ospex-org/ospex/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByIDWithCapabilities(ctx context.Context, id uuid.UUID) (*models.Account, error)

	GetCapabilityByName(ctx context.Context, name string) (*models.Capability, error)
	GrantCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error
	RevokeCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error
}

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*Response, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*Response, error)
}

// WalletProvisioner creates a funded wallet for a newly registered account.
type WalletProvisioner interface {
	Provision(ctx context.Context, accountID uuid.UUID) error
}

type AdminService interface {
	GrantCapability(ctx context.Context, accountID uuid.UUID, capability string) error
	RevokeCapability(ctx context.Context, accountID uuid.UUID, capability string) error
	GetAccount(ctx context.Context, accountID uuid.UUID) (*Response, error)
}
