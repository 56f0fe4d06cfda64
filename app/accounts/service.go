package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/internal/security"
	"github.com/ospex-org/ospex/models"
)

type service struct {
	repo          Repository
	tokenMaker    security.Maker
	wallets       WalletProvisioner
	tokenDuration time.Duration
}

// NewService creates a new account service.
func NewService(repo Repository, tokenMaker security.Maker, wallets WalletProvisioner, tokenDuration time.Duration) Service {
	return &service{
		repo:          repo,
		tokenMaker:    tokenMaker,
		wallets:       wallets,
		tokenDuration: tokenDuration,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*Response, error) {
	account := &models.Account{
		Email: strings.ToLower(req.Email),
	}
	if err := account.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	// Every account gets a wallet at registration so stake and claim
	// operations never have to create one lazily.
	if err := s.wallets.Provision(ctx, account.ID); err != nil {
		return nil, err
	}

	return ToResponse(account), nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	account, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	if !account.CheckPassword(req.Password) {
		return nil, models.ErrUnauthorized
	}

	accessToken, _, err := s.tokenMaker.CreateToken(account.ID, s.tokenDuration)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: accessToken,
		Account:     *ToResponse(account),
	}, nil
}

func (s *service) GetProfile(ctx context.Context, accountID uuid.UUID) (*Response, error) {
	account, err := s.repo.GetByIDWithCapabilities(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	return ToResponse(account), nil
}
