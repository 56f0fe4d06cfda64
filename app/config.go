package app

import (
	"github.com/ospex-org/ospex/app/accounts"
	"github.com/ospex-org/ospex/app/contests"
	"github.com/ospex-org/ospex/app/database"
	"github.com/ospex-org/ospex/app/speculations"
	"github.com/ospex-org/ospex/app/wallet"
	"github.com/ospex-org/ospex/internal/nexus"
)

type Config struct {
	DB           database.Config
	Accounts     accounts.Config
	Wallet       wallet.Config
	Contests     contests.Config
	Speculations speculations.Config

	AppHost string `env:"APP_HOST" default:"localhost"`
	AppPort string `env:"APP_PORT" default:"8080"`
	Env     string `env:"APP_ENV" default:"development"`

	CacheBackend string `env:"CACHE_BACKEND" default:"memory"`
	RedisAddr    string `env:"REDIS_ADDR" default:"localhost:6379"`

	OracleGatewayURL string  `env:"ORACLE_GATEWAY_URL"`
	OracleRPS        float64 `env:"ORACLE_RPS" default:"1"`
	OracleBurst      int     `env:"ORACLE_BURST" default:"5"`
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	err := nexus.NewLoader().Load(c)
	return c, err
}
