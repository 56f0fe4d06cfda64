package accounts

import (
	"errors"
	"time"
)

type Config struct {
	SymmetricKey  string        `env:"SYMMETRIC_KEY"`
	TokenDuration time.Duration `env:"TOKEN_DURATION" default:"24h"`
}

func (c *Config) Validate() error {
	if c.SymmetricKey == "" {
		return errors.New("symmetric key must be set")
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		SymmetricKey:  "12345678901234567890123456789012",
		TokenDuration: 24 * time.Hour,
	}
}
