package wallet

import (
	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/internal/deps"
	"github.com/ospex-org/ospex/internal/router"
	"github.com/ospex-org/ospex/models"
)

// MountAuthenticated mounts wallet inspection routes.
func MountAuthenticated(cfg *Config) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		service := NewService(NewRepository(container.DB), container.DB, cfg)
		handler := NewHandler(service)

		group := r.Group("/wallet")
		group.GET("", handler.GetWallet)
		group.GET("/transactions", handler.GetTransactions)
	}
}

// MountAdmin mounts the admin faucet route.
func MountAdmin(cfg *Config) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		service := NewService(NewRepository(container.DB), container.DB, cfg)
		handler := NewHandler(service)

		group := r.Group("/admin/wallet")
		group.POST("/credit", api.Can(models.CapabilityAdmin), handler.Faucet)
	}
}
