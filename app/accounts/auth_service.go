package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ospex-org/ospex/internal/cache"
)

type AuthService interface {
	GetAccountCapabilities(ctx context.Context, accountID uuid.UUID) ([]string, error)
}

type authService struct {
	repo  Repository
	cache cache.Cache[string]
}

func NewAuthService(repo Repository, cache cache.Cache[string]) AuthService {
	return &authService{repo: repo, cache: cache}
}

func (s *authService) GetAccountCapabilities(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	cacheKey := fmt.Sprintf("account:%s:capabilities", accountID)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var caps []string
		if err := json.Unmarshal([]byte(cached), &caps); err == nil {
			return caps, nil
		}
	}

	account, err := s.repo.GetByIDWithCapabilities(ctx, accountID)
	if err != nil {
		return nil, err
	}

	caps := make([]string, 0, len(account.Capabilities))
	for i := range account.Capabilities {
		caps = append(caps, account.Capabilities[i].Name)
	}

	capsJSON, err := json.Marshal(caps)
	if err == nil {
		err = s.cache.Set(ctx, cacheKey, string(capsJSON), 30*time.Minute)
	}

	return caps, err
}
