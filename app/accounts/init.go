package accounts

import (
	"github.com/gin-gonic/gin"

	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/internal/deps"
	"github.com/ospex-org/ospex/internal/router"
	"github.com/ospex-org/ospex/models"
)

// MountPublic mounts registration and login routes.
func MountPublic(cfg *Config, wallets WalletProvisioner) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		handler := createHandler(container, cfg, wallets)

		group := r.Group("/accounts")
		group.POST("/register", handler.Register)
		group.POST("/login", handler.Login)
	}
}

// MountAuthenticated mounts profile routes.
func MountAuthenticated(cfg *Config, wallets WalletProvisioner) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		handler := createHandler(container, cfg, wallets)

		group := r.Group("/accounts")
		group.GET("/profile", handler.GetProfile)
	}
}

// MountAdmin mounts capability administration routes. Every route requires
// the admin capability.
func MountAdmin() router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		handler := createAdminHandler(container)

		group := r.Group("/admin/accounts")
		group.GET("/:id", api.Can(models.CapabilityAdmin), handler.GetAccount)
		group.POST("/:id/capabilities", api.Can(models.CapabilityAdmin), handler.GrantCapability)
		group.DELETE("/:id/capabilities/:capability", api.Can(models.CapabilityAdmin), handler.RevokeCapability)
	}
}

func createHandler(container *deps.Container, cfg *Config, wallets WalletProvisioner) *Handler {
	repo := NewRepository(container.DB)
	service := NewService(repo, container.TokenMaker, wallets, cfg.TokenDuration)
	return NewHandler(service, container.Logger)
}

func createAdminHandler(container *deps.Container) *AdminHandler {
	repo := NewRepository(container.DB)
	service := NewAdminService(repo, container.Cache)
	return NewAdminHandler(service, container.Logger)
}
