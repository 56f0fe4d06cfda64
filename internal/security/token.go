package security

import (
	"time"

	"github.com/google/uuid"
)

// Maker makes and verifies auth tokens
type Maker interface {

	// CreateToken creates a new token for a specific account and duration
	CreateToken(accountID uuid.UUID, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not
	VerifyToken(token string) (*Payload, error)
}
