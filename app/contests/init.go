package contests

import (
	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/app/wallet"
	"github.com/ospex-org/ospex/internal/deps"
	"github.com/ospex-org/ospex/internal/router"
	"github.com/ospex-org/ospex/models"
)

// NewServiceFromContainer wires a contest service from shared dependencies.
// The speculation engine uses the same constructor to obtain its Reader.
func NewServiceFromContainer(container *deps.Container, cfg *Config) Service {
	repo := NewRepository(container.DB)
	custodian := wallet.NewCustodian(wallet.NewRepository(container.DB))
	return NewService(repo, container.DB, custodian, container.Oracle, container.Logger, cfg)
}

// MountPublic mounts the oracle callback endpoint. It sits outside the auth
// middleware; the handler gates it with the shared callback token.
func MountPublic(cfg *Config) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		handler := NewHandler(NewServiceFromContainer(container, cfg), container.Logger, cfg)

		r.POST("/oracle/callback", handler.OracleCallback)
	}
}

// MountAuthenticated mounts contest routes.
func MountAuthenticated(cfg *Config) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		handler := NewHandler(NewServiceFromContainer(container, cfg), container.Logger, cfg)

		group := r.Group("/contests")
		group.POST("", handler.CreateContest)
		group.GET("/:id", handler.GetContest)
		group.POST("/:id/score", handler.ScoreContest)
		group.POST("/:id/score-manual", api.Can(models.CapabilityScoreManager), handler.ScoreContestManually)

		oracleGroup := r.Group("/admin/oracle")
		oracleGroup.PUT("/sources/:kind", api.Can(models.CapabilitySourceManager), handler.UpdateSourceHash)
		oracleGroup.PUT("/fee", api.Can(models.CapabilitySubscriptionManager), handler.UpdateOracleFee)
	}
}
