package accounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new account repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	return &account, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	return &account, err
}

func (r *repository) GetByIDWithCapabilities(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Preload("Capabilities").First(&account, "id = ?", id).Error
	return &account, err
}

func (r *repository) GetCapabilityByName(ctx context.Context, name string) (*models.Capability, error) {
	var capability models.Capability
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&capability).Error
	return &capability, err
}

func (r *repository) GrantCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO account_capabilities (account_id, capability_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		accountID, capabilityID).Error
}

func (r *repository) RevokeCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`DELETE FROM account_capabilities WHERE account_id = ? AND capability_id = ?`,
		accountID, capabilityID).Error
}
