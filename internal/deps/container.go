package deps

import (
	"github.com/ospex-org/ospex/internal/cache"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/internal/oracle"
	"github.com/ospex-org/ospex/internal/sanitizer"
	"github.com/ospex-org/ospex/internal/security"
	"gorm.io/gorm"
)

// Container holds all shared dependencies
type Container struct {
	DB         *gorm.DB
	TokenMaker security.Maker
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger
	Cache      cache.Cache[string]
	Oracle     oracle.Client
}

func NewContainer(db *gorm.DB, tokenMaker security.Maker, stripper sanitizer.HTMLStripperer,
	log logger.Logger, c cache.Cache[string], oracleClient oracle.Client) *Container {
	return &Container{
		DB:         db,
		TokenMaker: tokenMaker,
		Sanitizer:  stripper,
		Logger:     log,
		Cache:      c,
		Oracle:     oracleClient,
	}
}
