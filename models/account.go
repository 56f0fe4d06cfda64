package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Named capabilities checked by role-gated operations. An account holds zero
// or more; every gated operation fails closed when the capability is absent.
const (
	CapabilityRelayer             = "relayer"
	CapabilityScoreManager        = "scoremanager"
	CapabilitySubscriptionManager = "subscriptionmanager"
	CapabilitySourceManager       = "sourcemanager"
	CapabilityAdmin               = "admin"
)

// Account represents a participant identity
type Account struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Email        string       `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string       `gorm:"type:varchar(255);not null" json:"-"`
	Capabilities []Capability `gorm:"many2many:account_capabilities;" json:"capabilities,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Wallet    *Wallet    `gorm:"foreignKey:AccountID" json:"-"`
	Positions []Position `gorm:"foreignKey:AccountID" json:"-"`
}

// TableName specifies the table name for Account model
func (*Account) TableName() string {
	return "accounts"
}

// BeforeCreate sets up the model before creation
func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SetPassword hashes and stores the password.
func (a *Account) SetPassword(plain string) error {
	if len(plain) < 8 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (a *Account) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plain)) == nil
}

// HasCapability reports whether the account holds the named capability.
// Admin implies every capability.
func (a *Account) HasCapability(name string) bool {
	for i := range a.Capabilities {
		if a.Capabilities[i].Name == name || a.Capabilities[i].Name == CapabilityAdmin {
			return true
		}
	}
	return false
}

// Capability represents a named permission grantable to accounts
type Capability struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null;unique" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Capability model
func (*Capability) TableName() string {
	return "capabilities"
}

// BeforeCreate sets up the model before creation
func (c *Capability) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
