package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// OracleSource records the sha256 hash of the audited off-chain program the
// oracle network is allowed to run for a given request kind. Callers supply
// the program source with each request; a hash mismatch rejects the call, so
// paying the fee never buys execution of an unaudited program.
type OracleSource struct {
	Kind      OracleRequestKind `gorm:"type:varchar(10);primaryKey" json:"kind"`
	Hash      string            `gorm:"type:char(64);not null" json:"hash"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for OracleSource model
func (*OracleSource) TableName() string {
	return "oracle_sources"
}

// HashSource returns the hex sha256 digest of a source payload.
func HashSource(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Matches reports whether the supplied source payload hashes to the
// registered value.
func (s *OracleSource) Matches(source []byte) bool {
	return s.Hash == HashSource(source)
}
