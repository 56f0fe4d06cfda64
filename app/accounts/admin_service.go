package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/internal/cache"
	"github.com/ospex-org/ospex/models"
)

type adminService struct {
	repo  Repository
	cache cache.Cache[string]
}

func NewAdminService(repo Repository, cache cache.Cache[string]) AdminService {
	return &adminService{repo: repo, cache: cache}
}

func (s *adminService) GrantCapability(ctx context.Context, accountID uuid.UUID, capability string) error {
	record, err := s.repo.GetCapabilityByName(ctx, capability)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return fmt.Errorf("failed to look up capability: %w", err)
	}

	if err := s.repo.GrantCapability(ctx, accountID, record.ID); err != nil {
		return fmt.Errorf("failed to grant capability: %w", err)
	}

	s.invalidate(ctx, accountID)
	return nil
}

func (s *adminService) RevokeCapability(ctx context.Context, accountID uuid.UUID, capability string) error {
	record, err := s.repo.GetCapabilityByName(ctx, capability)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return fmt.Errorf("failed to look up capability: %w", err)
	}

	if err := s.repo.RevokeCapability(ctx, accountID, record.ID); err != nil {
		return fmt.Errorf("failed to revoke capability: %w", err)
	}

	s.invalidate(ctx, accountID)
	return nil
}

func (s *adminService) GetAccount(ctx context.Context, accountID uuid.UUID) (*Response, error) {
	account, err := s.repo.GetByIDWithCapabilities(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	return ToResponse(account), nil
}

// invalidate drops the cached capability list so grants take effect on the
// next request instead of after the cache TTL.
func (s *adminService) invalidate(ctx context.Context, accountID uuid.UUID) {
	_ = s.cache.Delete(ctx, fmt.Sprintf("account:%s:capabilities", accountID))
}
