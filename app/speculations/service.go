package speculations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/app/contests"
	"github.com/ospex-org/ospex/app/wallet"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/internal/sanitizer"
	"github.com/ospex-org/ospex/models"
)

type service struct {
	repo      Repository
	db        *gorm.DB
	custodian wallet.Custodian
	contests  contests.Reader
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
	config    *Config
	now       func() time.Time
}

// NewService creates a new speculation service.
func NewService(repo Repository, db *gorm.DB, custodian wallet.Custodian,
	contestReader contests.Reader, stripper sanitizer.HTMLStripperer,
	log logger.Logger, config *Config) Service {
	return &service{
		repo:      repo,
		db:        db,
		custodian: custodian,
		contests:  contestReader,
		sanitizer: stripper,
		logger:    log,
		config:    config,
		now:       time.Now,
	}
}

func (s *service) CreateSpeculation(ctx context.Context, creatorID uuid.UUID, req *CreateSpeculationRequest) (*Response, error) {
	if _, err := s.contests.GetContest(ctx, req.ContestID); err != nil {
		return nil, err
	}
	if !s.now().Before(req.LockTime) {
		return nil, fmt.Errorf("lock time %s: %w", req.LockTime, models.ErrSpeculationHasStarted)
	}

	speculation := &models.Speculation{
		ContestID:   req.ContestID,
		CreatorID:   creatorID,
		Description: s.sanitizer.StripHTML(req.Description),
		ScorerType:  req.ScorerType,
		TheNumber:   req.TheNumber,
		LockTime:    req.LockTime,
		Status:      models.SpeculationStatusOpen,
		WinSide:     models.WinSideTBD,
		// The first scoring attempt is allowed at lock time.
		NextScoreAttemptAt: req.LockTime,
	}
	if _, err := ScorerFor(speculation.ScorerType); err != nil {
		return nil, err
	}

	if err := s.repo.CreateSpeculation(ctx, speculation); err != nil {
		return nil, fmt.Errorf("failed to create speculation: %w", err)
	}
	return ToResponse(speculation), nil
}

func (s *service) CreatePosition(ctx context.Context, accountID uuid.UUID, speculationID int64, req *CreatePositionRequest) (*PositionResponse, error) {
	if req.Amount.LessThan(s.config.MinStakeAmount) {
		return nil, fmt.Errorf("amount %s: %w", req.Amount, models.ErrSpeculationAmountNotAboveMinimum)
	}
	if req.Amount.GreaterThan(s.config.MaxStakeAmount) {
		return nil, fmt.Errorf("amount %s: %w", req.Amount, models.ErrSpeculationAmountIsAboveMaximum)
	}
	if req.Contribution.IsNegative() {
		return nil, models.ErrInvalidTransactionAmount
	}
	if req.Contribution.GreaterThan(req.Amount) {
		return nil, fmt.Errorf("contribution %s: %w", req.Contribution, models.ErrContributionMayNotExceedTotalAmount)
	}

	var result *PositionResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txCustodian := s.custodian.WithTx(tx)

		speculation, err := txRepo.GetSpeculationByIDForUpdate(ctx, speculationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("speculation %d: %w", speculationID, models.ErrRecordNotFound)
			}
			return fmt.Errorf("failed to load speculation %d: %w", speculationID, err)
		}

		if !speculation.IsOpen(s.now()) {
			return fmt.Errorf("speculation %d: %w", speculationID, models.ErrSpeculationHasStarted)
		}

		// The contribution is peeled off the total up front; only the
		// remainder enters the pool.
		stake := req.Amount.Sub(req.Contribution)

		if stake.IsPositive() {
			err = txCustodian.Transfer(ctx,
				wallet.Movement{
					AccountID:     accountID,
					Amount:        stake,
					Category:      models.TransactionCategoryStake,
					SpeculationID: &speculation.ID,
				},
				wallet.Movement{
					AccountID:     s.config.CustodyAccountID,
					Amount:        stake,
					Category:      models.TransactionCategoryStake,
					SpeculationID: &speculation.ID,
				})
			if err != nil {
				return fmt.Errorf("speculation %d: stake transfer: %w", speculationID, err)
			}
		}
		if req.Contribution.IsPositive() {
			err = txCustodian.Transfer(ctx,
				wallet.Movement{
					AccountID:     accountID,
					Amount:        req.Contribution,
					Category:      models.TransactionCategoryContribution,
					SpeculationID: &speculation.ID,
				},
				wallet.Movement{
					AccountID:     s.config.TreasuryAccountID,
					Amount:        req.Contribution,
					Category:      models.TransactionCategoryContribution,
					SpeculationID: &speculation.ID,
				})
			if err != nil {
				return fmt.Errorf("speculation %d: contribution transfer: %w", speculationID, err)
			}
		}

		if stake.IsPositive() {
			if err := speculation.AddStake(req.Side, stake); err != nil {
				return fmt.Errorf("speculation %d: %w", speculationID, err)
			}
			if err := txRepo.UpdateSpeculation(ctx, speculation); err != nil {
				return fmt.Errorf("failed to update speculation %d: %w", speculationID, err)
			}
		}

		position, err := txRepo.GetPositionForUpdate(ctx, speculationID, accountID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load position: %w", err)
			}
			position = &models.Position{
				SpeculationID: speculationID,
				AccountID:     accountID,
			}
		}
		if stake.IsPositive() {
			if err := position.AddStake(req.Side, stake); err != nil {
				return fmt.Errorf("speculation %d: %w", speculationID, err)
			}
		}
		if err := txRepo.SavePosition(ctx, position); err != nil {
			return fmt.Errorf("failed to save position: %w", err)
		}

		result = ToPositionResponse(position)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) LockSpeculation(ctx context.Context, id int64) (*Response, error) {
	return s.transition(ctx, id, func(speculation *models.Speculation) error {
		return speculation.Lock()
	})
}

func (s *service) ScoreSpeculation(ctx context.Context, id int64) (*Response, error) {
	// The attempt gate commits on its own so a failed scoring attempt still
	// consumes the window; without this a caller could spin on a contest
	// that never finalizes.
	var speculation *models.Speculation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		spec, err := txRepo.GetSpeculationByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("speculation %d: %w", id, models.ErrRecordNotFound)
			}
			return fmt.Errorf("failed to load speculation %d: %w", id, err)
		}
		if spec.Status == models.SpeculationStatusClosed {
			return fmt.Errorf("speculation %d: %w", id, models.ErrSpeculationStatusIsClosed)
		}
		now := s.now()
		if !spec.CanAttemptScore(now) {
			return fmt.Errorf("speculation %d: %w", id, models.ErrTimerHasNotExpired)
		}
		spec.RecordScoreAttempt(now, s.config.ScoreAttemptInterval)
		if err := txRepo.UpdateSpeculation(ctx, spec); err != nil {
			return fmt.Errorf("failed to update speculation %d: %w", id, err)
		}
		speculation = spec
		return nil
	})
	if err != nil {
		return nil, err
	}

	scorer, err := ScorerFor(speculation.ScorerType)
	if err != nil {
		return nil, err
	}
	contest, err := s.contests.GetContest(ctx, speculation.ContestID)
	if err != nil {
		return nil, err
	}
	winSide, err := scorer.Score(speculation, contest)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, id, func(spec *models.Speculation) error {
		return spec.Close(winSide)
	})
}

func (s *service) ForfeitSpeculation(ctx context.Context, id int64) (*Response, error) {
	return s.transition(ctx, id, func(speculation *models.Speculation) error {
		return speculation.Forfeit()
	})
}

func (s *service) VoidSpeculation(ctx context.Context, id int64) (*Response, error) {
	now := s.now()
	return s.transition(ctx, id, func(speculation *models.Speculation) error {
		return speculation.Void(now, s.config.VoidGracePeriod)
	})
}

func (s *service) Claim(ctx context.Context, accountID uuid.UUID, speculationID int64, req *ClaimRequest) (*ClaimResponse, error) {
	if req.Contribution.IsNegative() {
		return nil, models.ErrInvalidTransactionAmount
	}

	var result *ClaimResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txCustodian := s.custodian.WithTx(tx)

		speculation, err := txRepo.GetSpeculationByIDForUpdate(ctx, speculationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("speculation %d: %w", speculationID, models.ErrRecordNotFound)
			}
			return fmt.Errorf("failed to load speculation %d: %w", speculationID, err)
		}
		if speculation.Status != models.SpeculationStatusClosed {
			return fmt.Errorf("speculation %d: %w", speculationID, models.ErrSpeculationStatusIsNotClosed)
		}

		position, err := txRepo.GetPositionForUpdate(ctx, speculationID, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("speculation %d: %w", speculationID, models.ErrIneligibleForWinnings)
			}
			return fmt.Errorf("failed to load position: %w", err)
		}
		if !position.EligibleFor(speculation.WinSide) {
			return fmt.Errorf("speculation %d: %w", speculationID, models.ErrIneligibleForWinnings)
		}

		// Latch before any funds move.
		if err := position.Claim(); err != nil {
			return fmt.Errorf("speculation %d: %w", speculationID, err)
		}
		if err := txRepo.SavePosition(ctx, position); err != nil {
			return fmt.Errorf("failed to save position: %w", err)
		}

		winnings, err := winningsFor(speculation, position)
		if err != nil {
			return err
		}

		contribution := req.Contribution
		if contribution.GreaterThan(winnings) {
			contribution = winnings
		}
		netPayout := winnings.Sub(contribution)

		if netPayout.IsPositive() {
			err = txCustodian.Transfer(ctx,
				wallet.Movement{
					AccountID:     s.config.CustodyAccountID,
					Amount:        netPayout,
					Category:      models.TransactionCategoryPayout,
					SpeculationID: &speculation.ID,
				},
				wallet.Movement{
					AccountID:     accountID,
					Amount:        netPayout,
					Category:      models.TransactionCategoryPayout,
					SpeculationID: &speculation.ID,
				})
			if err != nil {
				return fmt.Errorf("speculation %d: payout transfer: %w", speculationID, err)
			}
		}
		if contribution.IsPositive() {
			err = txCustodian.Transfer(ctx,
				wallet.Movement{
					AccountID:     s.config.CustodyAccountID,
					Amount:        contribution,
					Category:      models.TransactionCategoryContribution,
					SpeculationID: &speculation.ID,
				},
				wallet.Movement{
					AccountID:     s.config.TreasuryAccountID,
					Amount:        contribution,
					Category:      models.TransactionCategoryContribution,
					SpeculationID: &speculation.ID,
				})
			if err != nil {
				return fmt.Errorf("speculation %d: contribution transfer: %w", speculationID, err)
			}
		}

		s.logger.Info("claim settled", logger.Fields{
			"speculation_id": speculation.ID,
			"account_id":     accountID,
			"win_side":       speculation.WinSide,
			"winnings":       winnings,
			"contribution":   contribution,
		})

		result = &ClaimResponse{
			SpeculationID: speculation.ID,
			WinSide:       speculation.WinSide,
			Winnings:      winnings,
			Contribution:  contribution,
			NetPayout:     netPayout,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) GetSpeculation(ctx context.Context, id int64) (*Response, error) {
	speculation, err := s.repo.GetSpeculationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("speculation %d: %w", id, models.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to load speculation %d: %w", id, err)
	}
	return ToResponse(speculation), nil
}

func (s *service) GetSpeculationsByContest(ctx context.Context, contestID int64) ([]Response, error) {
	speculations, err := s.repo.GetSpeculationsByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list speculations: %w", err)
	}
	responses := make([]Response, len(speculations))
	for i := range speculations {
		responses[i] = *ToResponse(&speculations[i])
	}
	return responses, nil
}

func (s *service) GetPosition(ctx context.Context, speculationID int64, accountID uuid.UUID) (*PositionResponse, error) {
	position, err := s.repo.GetPosition(ctx, speculationID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("speculation %d: %w", speculationID, models.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to load position: %w", err)
	}
	return ToPositionResponse(position), nil
}

// transition applies a state change to a row-locked speculation in one
// transaction.
func (s *service) transition(ctx context.Context, id int64, apply func(*models.Speculation) error) (*Response, error) {
	var result *Response
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		speculation, err := txRepo.GetSpeculationByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("speculation %d: %w", id, models.ErrRecordNotFound)
			}
			return fmt.Errorf("failed to load speculation %d: %w", id, err)
		}

		if err := apply(speculation); err != nil {
			return fmt.Errorf("speculation %d: %w", id, err)
		}

		if err := txRepo.UpdateSpeculation(ctx, speculation); err != nil {
			return fmt.Errorf("failed to update speculation %d: %w", id, err)
		}

		result = ToResponse(speculation)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// winningsFor computes the gross claimable amount. Decisive outcomes pay
// stake * totalPool / winningPool with the quotient truncated toward zero;
// multiplying before dividing keeps sub-unit remainders in custody instead
// of rounding them to claimants. Non-decisive outcomes refund the
// position's own stake across both sides.
func winningsFor(speculation *models.Speculation, position *models.Position) (decimal.Decimal, error) {
	side, decisive := speculation.WinSide.WinningPoolSide()
	if !decisive {
		return position.TotalStake(), nil
	}

	winningPool := speculation.UpperAmount
	if side == models.PoolSideLower {
		winningPool = speculation.LowerAmount
	}
	if !winningPool.IsPositive() {
		return decimal.Zero, fmt.Errorf("speculation %d: %w", speculation.ID, models.ErrInvalidPoolSide)
	}

	stake := position.StakeOn(side)
	quotient, _ := stake.Mul(speculation.TotalPool()).QuoRem(winningPool, 0)
	return quotient, nil
}
