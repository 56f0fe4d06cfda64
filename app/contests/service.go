package contests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/app/wallet"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/internal/oracle"
	"github.com/ospex-org/ospex/models"
)

type service struct {
	repo      Repository
	db        *gorm.DB
	custodian wallet.Custodian
	oracle    oracle.Client
	logger    logger.Logger
	config    *Config
	now       func() time.Time
}

// NewService creates a new contest service.
func NewService(repo Repository, db *gorm.DB, custodian wallet.Custodian,
	oracleClient oracle.Client, log logger.Logger, config *Config) Service {
	return &service{
		repo:      repo,
		db:        db,
		custodian: custodian,
		oracle:    oracleClient,
		logger:    log,
		config:    config,
		now:       time.Now,
	}
}

func (s *service) CreateContest(ctx context.Context, creatorID uuid.UUID, req *CreateContestRequest) (*Response, error) {
	var result *Response

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txCustodian := s.custodian.WithTx(tx)

		if err := s.checkSource(ctx, txRepo, models.OracleRequestKindVerify, req.Source); err != nil {
			return err
		}

		settings, err := s.settings(ctx, txRepo)
		if err != nil {
			return err
		}

		contest := &models.Contest{
			CreatorID:    creatorID,
			Status:       models.ContestStatusUnverified,
			RundownID:    req.RundownID,
			SportspageID: req.SportspageID,
			JsonoddsID:   req.JsonoddsID,
		}
		if err := txRepo.CreateContest(ctx, contest); err != nil {
			return fmt.Errorf("failed to create contest: %w", err)
		}

		if err := s.chargeFee(ctx, txCustodian, creatorID, settings, contest.ID); err != nil {
			return err
		}

		now := s.now()
		contest.LastRequestAt = &now
		if err := txRepo.UpdateContest(ctx, contest); err != nil {
			return fmt.Errorf("failed to update contest: %w", err)
		}

		if err := s.dispatch(ctx, txRepo, contest, models.OracleRequestKindVerify, req.Source, settings); err != nil {
			return err
		}

		result = ToResponse(contest)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ScoreContest dispatches a score request. The fee falls on whoever asks,
// not on the contest creator; anyone may pay to move a contest forward.
func (s *service) ScoreContest(ctx context.Context, payerID uuid.UUID, id int64, req *ScoreContestRequest) (*Response, error) {
	var result *Response

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txCustodian := s.custodian.WithTx(tx)

		contest, err := txRepo.GetContestByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("contest %d: %w", id, models.ErrRecordNotFound)
			}
			return fmt.Errorf("failed to load contest %d: %w", id, err)
		}

		now := s.now()
		if !contest.RequestTimerExpired(now, s.config.RequestInterval) {
			return fmt.Errorf("contest %d: %w", id, models.ErrTimerHasNotExpired)
		}
		if !contest.IsScoreable() {
			return fmt.Errorf("contest %d: %w", id, models.ErrScoreContestNotInReadyStatus)
		}

		if err := s.checkSource(ctx, txRepo, models.OracleRequestKindScore, req.Source); err != nil {
			return err
		}

		settings, err := s.settings(ctx, txRepo)
		if err != nil {
			return err
		}

		if err := s.chargeFee(ctx, txCustodian, payerID, settings, contest.ID); err != nil {
			return err
		}

		// A new dispatch supersedes anything still in flight so a stale
		// response cannot land after this one.
		if err := txRepo.SupersedePendingRequests(ctx, contest.ID); err != nil {
			return fmt.Errorf("failed to supersede pending requests: %w", err)
		}

		contest.LastRequestAt = &now
		if err := txRepo.UpdateContest(ctx, contest); err != nil {
			return fmt.Errorf("failed to update contest: %w", err)
		}

		if err := s.dispatch(ctx, txRepo, contest, models.OracleRequestKindScore, req.Source, settings); err != nil {
			return err
		}

		result = ToResponse(contest)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) HandleOracleResponse(ctx context.Context, req *OracleCallbackRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		request, err := txRepo.GetOracleRequestByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("oracle request %s: %w", req.RequestID, models.ErrOracleRequestNotFound)
			}
			return fmt.Errorf("failed to load oracle request: %w", err)
		}

		if err := request.Consume(s.now()); err != nil {
			return fmt.Errorf("oracle request %s: %w", req.RequestID, err)
		}
		if err := txRepo.UpdateOracleRequest(ctx, request); err != nil {
			return fmt.Errorf("failed to consume oracle request: %w", err)
		}

		// An error payload consumes the request without touching the
		// contest; the rate limiter governs the retry.
		if len(req.Err) > 0 {
			s.logger.Info("oracle returned error payload", logger.Fields{
				"request_id": req.RequestID,
				"contest_id": request.ContestID,
				"kind":       request.Kind,
				"error":      string(req.Err),
			})
			return nil
		}

		contest, err := txRepo.GetContestByIDForUpdate(ctx, request.ContestID)
		if err != nil {
			return fmt.Errorf("failed to load contest %d: %w", request.ContestID, err)
		}

		switch request.Kind {
		case models.OracleRequestKindVerify:
			if err := contest.Verify(); err != nil {
				s.dropResponse(request, err)
				return nil
			}
		case models.OracleRequestKindScore:
			packed, err := oracle.DecodeUint32(req.Payload)
			if err != nil {
				s.dropResponse(request, err)
				return nil
			}
			awayScore, homeScore := models.DecodeOracleScore(packed)
			if err := contest.ApplyScore(awayScore, homeScore); err != nil {
				s.dropResponse(request, err)
				return nil
			}
		default:
			s.dropResponse(request, models.ErrContestStatusInvalid)
			return nil
		}

		if err := txRepo.UpdateContest(ctx, contest); err != nil {
			return fmt.Errorf("failed to update contest %d: %w", contest.ID, err)
		}

		s.logger.Info("oracle response applied", logger.Fields{
			"request_id": req.RequestID,
			"contest_id": contest.ID,
			"kind":       request.Kind,
			"status":     contest.Status,
		})
		return nil
	})
}

func (s *service) ScoreContestManually(ctx context.Context, id int64, req *ManualScoreRequest) (*Response, error) {
	var result *Response

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		contest, err := txRepo.GetContestByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("contest %d: %w", id, models.ErrRecordNotFound)
			}
			return fmt.Errorf("failed to load contest %d: %w", id, err)
		}

		if err := contest.ScoreManually(req.AwayScore, req.HomeScore); err != nil {
			return fmt.Errorf("contest %d: %w", id, err)
		}

		// Any in-flight score response is moot once a manager has ruled.
		if err := txRepo.SupersedePendingRequests(ctx, contest.ID); err != nil {
			return fmt.Errorf("failed to supersede pending requests: %w", err)
		}

		if err := txRepo.UpdateContest(ctx, contest); err != nil {
			return fmt.Errorf("failed to update contest %d: %w", id, err)
		}

		result = ToResponse(contest)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) GetContest(ctx context.Context, id int64) (*models.Contest, error) {
	contest, err := s.repo.GetContestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contest %d: %w", id, models.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to load contest %d: %w", id, err)
	}
	return contest, nil
}

func (s *service) UpdateSourceHash(ctx context.Context, kind models.OracleRequestKind, hash string) error {
	return s.repo.UpsertSource(ctx, &models.OracleSource{Kind: kind, Hash: hash})
}

func (s *service) UpdateOracleFee(ctx context.Context, req *UpdateFeeRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		settings, err := s.settings(ctx, txRepo)
		if err != nil {
			return err
		}
		if err := settings.SetFee(req.Fee); err != nil {
			return err
		}
		return txRepo.SaveSettings(ctx, settings)
	})
}

// checkSource gates dispatch on the registered program hash for the kind.
func (s *service) checkSource(ctx context.Context, repo Repository, kind models.OracleRequestKind, source []byte) error {
	registered, err := repo.GetSource(ctx, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("kind %s: %w", kind, models.ErrOracleSourceNotRegistered)
		}
		return fmt.Errorf("failed to load oracle source: %w", err)
	}
	if !registered.Matches(source) {
		return fmt.Errorf("kind %s: %w", kind, models.ErrIncorrectHash)
	}
	return nil
}

// settings returns the mutable oracle parameters, seeding the singleton row
// from config defaults on first use.
func (s *service) settings(ctx context.Context, repo Repository) (*models.OracleSettings, error) {
	settings, err := repo.GetSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load oracle settings: %w", err)
	}

	settings = &models.OracleSettings{
		Fee:          s.config.DefaultFee,
		Subscription: s.config.DefaultSubscription,
		GasLimit:     s.config.DefaultGasLimit,
	}
	if err := repo.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to seed oracle settings: %w", err)
	}
	return settings, nil
}

func (s *service) chargeFee(ctx context.Context, custodian wallet.Custodian,
	payerID uuid.UUID, settings *models.OracleSettings, contestID int64) error {
	err := custodian.Transfer(ctx,
		wallet.Movement{
			AccountID: payerID,
			Amount:    settings.Fee,
			Category:  models.TransactionCategoryOracleFee,
			ContestID: &contestID,
		},
		wallet.Movement{
			AccountID: s.config.FeeSinkAccountID,
			Amount:    settings.Fee,
			Category:  models.TransactionCategoryOracleFee,
			ContestID: &contestID,
		})
	if err != nil {
		if errors.Is(err, models.ErrInsufficientBalance) {
			return fmt.Errorf("contest %d: %w", contestID, models.ErrLinkAmountTooLow)
		}
		return fmt.Errorf("contest %d: oracle fee transfer: %w", contestID, err)
	}
	return nil
}

// dispatch writes the correlation entry and hands the request to the oracle
// client. A dispatch failure aborts the enclosing transaction, so the fee
// debit and the correlation entry never commit without an accepted request.
func (s *service) dispatch(ctx context.Context, repo Repository, contest *models.Contest,
	kind models.OracleRequestKind, source []byte, settings *models.OracleSettings) error {
	request := &models.OracleRequest{
		ID:        uuid.New(),
		ContestID: contest.ID,
		Kind:      kind,
	}
	if err := repo.CreateOracleRequest(ctx, request); err != nil {
		return fmt.Errorf("failed to create oracle request: %w", err)
	}

	err := s.oracle.Dispatch(ctx, oracle.Request{
		ID:           request.ID,
		Source:       source,
		Args:         [3]string{contest.RundownID, contest.SportspageID, contest.JsonoddsID},
		Subscription: settings.Subscription,
		GasLimit:     settings.GasLimit,
		CallbackURL:  s.config.CallbackURL,
	})
	if err != nil {
		return fmt.Errorf("contest %d: %w", contest.ID, err)
	}

	s.logger.Info("oracle request dispatched", logger.Fields{
		"request_id": request.ID,
		"contest_id": contest.ID,
		"kind":       kind,
	})
	return nil
}

func (s *service) dropResponse(request *models.OracleRequest, cause error) {
	s.logger.Error(cause, logger.Fields{
		"request_id": request.ID,
		"contest_id": request.ContestID,
		"kind":       request.Kind,
		"dropped":    true,
	})
}
