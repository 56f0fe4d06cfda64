package speculations

import (
	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/app/contests"
	"github.com/ospex-org/ospex/app/wallet"
	"github.com/ospex-org/ospex/internal/deps"
	"github.com/ospex-org/ospex/internal/router"
	"github.com/ospex-org/ospex/models"
)

// MountAuthenticated mounts speculation routes.
func MountAuthenticated(cfg *Config, contestReader contests.Reader) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		repo := NewRepository(container.DB)
		custodian := wallet.NewCustodian(wallet.NewRepository(container.DB))
		service := NewService(repo, container.DB, custodian, contestReader,
			container.Sanitizer, container.Logger, cfg)
		handler := NewHandler(service, container.Logger)

		group := r.Group("/speculations")
		group.POST("", handler.CreateSpeculation)
		group.GET("", handler.GetSpeculationsByContest)
		group.GET("/:id", handler.GetSpeculation)
		group.POST("/:id/positions", handler.CreatePosition)
		group.GET("/:id/positions/me", handler.GetMyPosition)
		group.POST("/:id/lock", api.Can(models.CapabilityRelayer), handler.LockSpeculation)
		group.POST("/:id/score", handler.ScoreSpeculation)
		group.POST("/:id/forfeit", api.Can(models.CapabilityScoreManager), handler.ForfeitSpeculation)
		group.POST("/:id/void", handler.VoidSpeculation)
		group.POST("/:id/claim", handler.Claim)
	}
}
