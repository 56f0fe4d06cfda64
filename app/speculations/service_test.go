package speculations

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/app/wallet"
	"github.com/ospex-org/ospex/internal/logger"
	"github.com/ospex-org/ospex/internal/sanitizer"
	"github.com/ospex-org/ospex/models"
	"github.com/ospex-org/ospex/tests/suites"
)

// dbContestReader reads contests straight from the suite database, standing
// in for the contest service's read surface.
type dbContestReader struct {
	db *gorm.DB
}

func (r *dbContestReader) GetContest(ctx context.Context, id int64) (*models.Contest, error) {
	var contest models.Contest
	if err := r.db.WithContext(ctx).First(&contest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contest %d: %w", id, models.ErrRecordNotFound)
		}
		return nil, err
	}
	return &contest, nil
}

type ServiceTestSuite struct {
	suites.RepositoryTestSuite
	repo   Repository
	svc    *service
	config *Config
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) BeforeTest(suiteName, testName string) {
	s.RepositoryTestSuite.BeforeTest(suiteName, testName)

	s.config = GetDefaultConfig()
	s.config.CustodyAccountID = s.createAccount("custody@ospex.org", decimal.Zero)
	s.config.TreasuryAccountID = s.createAccount("treasury@ospex.org", decimal.Zero)

	s.repo = NewRepository(s.DB)
	custodian := wallet.NewCustodian(wallet.NewRepository(s.DB))
	svc := NewService(s.repo, s.DB, custodian, &dbContestReader{db: s.DB},
		sanitizer.NewHTMLStripper(), logger.NewNullLogger(), s.config)
	s.svc = svc.(*service)
}

func (s *ServiceTestSuite) createAccount(email string, balance decimal.Decimal) uuid.UUID {
	account := &models.Account{Email: email}
	s.Require().NoError(account.SetPassword("password123"))
	s.Require().NoError(s.DB.Create(account).Error)
	s.Require().NoError(s.DB.Create(&models.Wallet{
		AccountID: account.ID,
		Balance:   balance,
	}).Error)
	return account.ID
}

func (s *ServiceTestSuite) createContest(status models.ContestStatus, awayScore, homeScore int32) *models.Contest {
	contest := &models.Contest{
		CreatorID:    s.config.TreasuryAccountID,
		Status:       status,
		AwayScore:    awayScore,
		HomeScore:    homeScore,
		RundownID:    "rd-1",
		SportspageID: "sp-1",
		JsonoddsID:   "jo-1",
	}
	s.Require().NoError(s.DB.Create(contest).Error)
	return contest
}

func (s *ServiceTestSuite) createSpeculation(contestID int64, scorerType models.ScorerType, theNumber string, lockTime time.Time) *models.Speculation {
	speculation := &models.Speculation{
		ContestID:          contestID,
		CreatorID:          s.config.TreasuryAccountID,
		ScorerType:         scorerType,
		TheNumber:          decimal.RequireFromString(theNumber),
		LockTime:           lockTime,
		Status:             models.SpeculationStatusOpen,
		WinSide:            models.WinSideTBD,
		NextScoreAttemptAt: lockTime,
	}
	s.Require().NoError(s.DB.Create(speculation).Error)
	return speculation
}

func (s *ServiceTestSuite) balanceOf(accountID uuid.UUID) decimal.Decimal {
	var w models.Wallet
	s.Require().NoError(s.DB.Where("account_id = ?", accountID).First(&w).Error)
	return w.Balance
}

func (s *ServiceTestSuite) stake(accountID uuid.UUID, speculationID int64, side models.PoolSide, amount int64) {
	_, err := s.svc.CreatePosition(context.Background(), accountID, speculationID, &CreatePositionRequest{
		Side:   side,
		Amount: decimal.NewFromInt(amount),
	})
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestCreateSpeculation() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	lockTime := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)

	resp, err := s.svc.CreateSpeculation(context.Background(), s.config.TreasuryAccountID, &CreateSpeculationRequest{
		ContestID:   contest.ID,
		ScorerType:  models.ScorerTypeSpread,
		TheNumber:   decimal.RequireFromString("-3.5"),
		LockTime:    lockTime,
		Description: "<b>home</b> favored",
	})

	s.Require().NoError(err)
	s.Equal(models.SpeculationStatusOpen, resp.Status)
	s.Equal(models.WinSideTBD, resp.WinSide)
	s.Equal("home favored", resp.Description)
	s.True(resp.NextScoreAttemptAt.Equal(lockTime))
}

func (s *ServiceTestSuite) TestCreateSpeculationPastLockTime() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)

	_, err := s.svc.CreateSpeculation(context.Background(), s.config.TreasuryAccountID, &CreateSpeculationRequest{
		ContestID:  contest.ID,
		ScorerType: models.ScorerTypeMoneyline,
		LockTime:   time.Now().Add(-time.Minute),
	})

	s.ErrorIs(err, models.ErrSpeculationHasStarted)
}

func (s *ServiceTestSuite) TestCreateSpeculationUnknownContest() {
	_, err := s.svc.CreateSpeculation(context.Background(), s.config.TreasuryAccountID, &CreateSpeculationRequest{
		ContestID:  9999,
		ScorerType: models.ScorerTypeMoneyline,
		LockTime:   time.Now().Add(time.Hour),
	})

	s.ErrorIs(err, models.ErrRecordNotFound)
}

func (s *ServiceTestSuite) TestCreatePositionMovesStakeIntoCustody() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	bettor := s.createAccount("bettor@ospex.org", decimal.NewFromInt(50_000_000))

	resp, err := s.svc.CreatePosition(context.Background(), bettor, speculation.ID, &CreatePositionRequest{
		Side:         models.PoolSideUpper,
		Amount:       decimal.NewFromInt(10_000_000),
		Contribution: decimal.NewFromInt(1_000_000),
	})
	s.Require().NoError(err)

	// The contribution is peeled off before the stake enters the pool.
	s.True(resp.UpperAmount.Equal(decimal.NewFromInt(9_000_000)), resp.UpperAmount.String())
	s.True(s.balanceOf(bettor).Equal(decimal.NewFromInt(40_000_000)))
	s.True(s.balanceOf(s.config.CustodyAccountID).Equal(decimal.NewFromInt(9_000_000)))
	s.True(s.balanceOf(s.config.TreasuryAccountID).Equal(decimal.NewFromInt(1_000_000)))

	var updated models.Speculation
	s.Require().NoError(s.DB.First(&updated, speculation.ID).Error)
	s.True(updated.UpperAmount.Equal(decimal.NewFromInt(9_000_000)))
	s.True(updated.LowerAmount.IsZero())

	s.Equal(int64(4), s.CountRecords("transactions"))
}

func (s *ServiceTestSuite) TestCreatePositionAccumulates() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	bettor := s.createAccount("bettor@ospex.org", decimal.NewFromInt(50_000_000))

	s.stake(bettor, speculation.ID, models.PoolSideUpper, 2_000_000)
	s.stake(bettor, speculation.ID, models.PoolSideLower, 3_000_000)

	position, err := s.svc.GetPosition(context.Background(), speculation.ID, bettor)
	s.Require().NoError(err)
	s.True(position.UpperAmount.Equal(decimal.NewFromInt(2_000_000)))
	s.True(position.LowerAmount.Equal(decimal.NewFromInt(3_000_000)))
	s.Equal(int64(1), s.CountRecords("positions"))
}

func (s *ServiceTestSuite) TestCreatePositionBounds() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	bettor := s.createAccount("bettor@ospex.org", decimal.NewFromInt(50_000_000))

	_, err := s.svc.CreatePosition(context.Background(), bettor, speculation.ID, &CreatePositionRequest{
		Side:   models.PoolSideUpper,
		Amount: s.config.MinStakeAmount.Sub(decimal.NewFromInt(1)),
	})
	s.ErrorIs(err, models.ErrSpeculationAmountNotAboveMinimum)

	_, err = s.svc.CreatePosition(context.Background(), bettor, speculation.ID, &CreatePositionRequest{
		Side:   models.PoolSideUpper,
		Amount: s.config.MaxStakeAmount.Add(decimal.NewFromInt(1)),
	})
	s.ErrorIs(err, models.ErrSpeculationAmountIsAboveMaximum)

	_, err = s.svc.CreatePosition(context.Background(), bettor, speculation.ID, &CreatePositionRequest{
		Side:         models.PoolSideUpper,
		Amount:       decimal.NewFromInt(2_000_000),
		Contribution: decimal.NewFromInt(3_000_000),
	})
	s.ErrorIs(err, models.ErrContributionMayNotExceedTotalAmount)
}

func (s *ServiceTestSuite) TestCreatePositionInsufficientBalance() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	bettor := s.createAccount("broke@ospex.org", decimal.NewFromInt(1_000_000))

	_, err := s.svc.CreatePosition(context.Background(), bettor, speculation.ID, &CreatePositionRequest{
		Side:   models.PoolSideUpper,
		Amount: decimal.NewFromInt(2_000_000),
	})
	s.ErrorIs(err, models.ErrInsufficientBalance)

	// The failed transfer rolls the whole attempt back.
	s.True(s.balanceOf(bettor).Equal(decimal.NewFromInt(1_000_000)))
	s.Equal(int64(0), s.CountRecords("positions"))
	s.Equal(int64(0), s.CountRecords("transactions"))
}

func (s *ServiceTestSuite) TestCreatePositionAfterLockTime() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	bettor := s.createAccount("late@ospex.org", decimal.NewFromInt(50_000_000))

	s.svc.now = func() time.Time { return speculation.LockTime.Add(time.Second) }

	_, err := s.svc.CreatePosition(context.Background(), bettor, speculation.ID, &CreatePositionRequest{
		Side:   models.PoolSideUpper,
		Amount: decimal.NewFromInt(2_000_000),
	})
	s.ErrorIs(err, models.ErrSpeculationHasStarted)
}

func (s *ServiceTestSuite) TestLockSpeculation() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	upper := s.createAccount("upper@ospex.org", decimal.NewFromInt(50_000_000))
	lower := s.createAccount("lower@ospex.org", decimal.NewFromInt(50_000_000))
	s.stake(upper, speculation.ID, models.PoolSideUpper, 2_000_000)
	s.stake(lower, speculation.ID, models.PoolSideLower, 2_000_000)

	resp, err := s.svc.LockSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)
	s.Equal(models.SpeculationStatusLocked, resp.Status)

	_, err = s.svc.LockSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrSpeculationNotLockable)
}

func (s *ServiceTestSuite) TestLockOneSidedPoolClosesInvalid() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	bettor := s.createAccount("solo@ospex.org", decimal.NewFromInt(50_000_000))
	s.stake(bettor, speculation.ID, models.PoolSideUpper, 2_000_000)

	resp, err := s.svc.LockSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)
	s.Equal(models.SpeculationStatusClosed, resp.Status)
	s.Equal(models.WinSideInvalid, resp.WinSide)

	// The lone participant gets their stake back as a refund claim.
	claim, err := s.svc.Claim(context.Background(), bettor, speculation.ID, &ClaimRequest{})
	s.Require().NoError(err)
	s.True(claim.Winnings.Equal(decimal.NewFromInt(2_000_000)))
	s.True(s.balanceOf(bettor).Equal(decimal.NewFromInt(50_000_000)))
}

func (s *ServiceTestSuite) TestScoreSpeculationBeforeTimer() {
	contest := s.createContest(models.ContestStatusScored, 24, 17)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))

	_, err := s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrTimerHasNotExpired)
}

func (s *ServiceTestSuite) TestScoreSpeculationClosesDecisively() {
	contest := s.createContest(models.ContestStatusScored, 24, 17)
	lockTime := time.Now().Add(-2 * time.Hour)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", lockTime)
	s.Require().NoError(s.DB.Model(speculation).Update("status", models.SpeculationStatusLocked).Error)

	resp, err := s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)
	s.Equal(models.SpeculationStatusClosed, resp.Status)
	s.Equal(models.WinSideAway, resp.WinSide)

	_, err = s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrSpeculationStatusIsClosed)
}

func (s *ServiceTestSuite) TestFailedScoringAttemptConsumesWindow() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	lockTime := time.Now().Add(-2 * time.Hour)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", lockTime)
	s.Require().NoError(s.DB.Model(speculation).Update("status", models.SpeculationStatusLocked).Error)

	_, err := s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrScoreNotFinalized)

	// The attempt gate committed even though scoring failed.
	_, err = s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrTimerHasNotExpired)

	var updated models.Speculation
	s.Require().NoError(s.DB.First(&updated, speculation.ID).Error)
	s.Equal(models.SpeculationStatusLocked, updated.Status)
	s.True(updated.NextScoreAttemptAt.After(time.Now()))
}

func (s *ServiceTestSuite) TestScoreSpeculationScorelessFinalNeedsConfirmation() {
	contest := s.createContest(models.ContestStatusRequiresConfirmation, 0, 0)
	lockTime := time.Now().Add(-2 * time.Hour)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeTotal, "44.5", lockTime)
	s.Require().NoError(s.DB.Model(speculation).Update("status", models.SpeculationStatusLocked).Error)

	_, err := s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrZeroZeroScoreMustBeVerified)
}

func (s *ServiceTestSuite) TestScorelessFinalSettlesAsPushAfterManualConfirmation() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	lockTime := time.Now().Add(-2 * time.Hour)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", lockTime)
	s.Require().NoError(s.DB.Model(speculation).Updates(map[string]interface{}{
		"status":                models.SpeculationStatusOpen,
		"lock_time":             time.Now().Add(time.Hour),
		"next_score_attempt_at": lockTime,
	}).Error)

	upper := s.createAccount("upper@ospex.org", decimal.NewFromInt(1_000_000_000))
	lower := s.createAccount("lower@ospex.org", decimal.NewFromInt(1_000_000_000))
	s.stake(upper, speculation.ID, models.PoolSideUpper, 6_000_000)
	s.stake(lower, speculation.ID, models.PoolSideLower, 4_000_000)

	_, err := s.svc.LockSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)

	// The oracle reported a scoreless final; settlement stays blocked until
	// a manager confirms the 0-0 result.
	s.Require().NoError(s.DB.Model(&models.Contest{}).Where("id = ?", contest.ID).
		Update("status", models.ContestStatusRequiresConfirmation).Error)

	_, err = s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrZeroZeroScoreMustBeVerified)

	s.Require().NoError(s.DB.Model(&models.Contest{}).Where("id = ?", contest.ID).
		Update("status", models.ContestStatusScoredManually).Error)
	// The failed attempt consumed the rate window; re-arm it.
	s.Require().NoError(s.DB.Model(speculation).Update("next_score_attempt_at", lockTime).Error)

	resp, err := s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)
	s.Equal(models.SpeculationStatusClosed, resp.Status)
	s.Equal(models.WinSidePush, resp.WinSide)

	claimUpper, err := s.svc.Claim(context.Background(), upper, speculation.ID, &ClaimRequest{})
	s.Require().NoError(err)
	s.True(claimUpper.Winnings.Equal(decimal.NewFromInt(6_000_000)))

	claimLower, err := s.svc.Claim(context.Background(), lower, speculation.ID, &ClaimRequest{})
	s.Require().NoError(err)
	s.True(claimLower.Winnings.Equal(decimal.NewFromInt(4_000_000)))
	s.True(s.balanceOf(s.config.CustodyAccountID).IsZero())
}

func (s *ServiceTestSuite) TestForfeitSpeculation() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))

	resp, err := s.svc.ForfeitSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)
	s.Equal(models.SpeculationStatusClosed, resp.Status)
	s.Equal(models.WinSideForfeit, resp.WinSide)

	_, err = s.svc.ForfeitSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrSpeculationMayNotBeForfeited)
}

func (s *ServiceTestSuite) TestVoidSpeculationRespectsGracePeriod() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	lockTime := time.Now().Add(-time.Hour)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", lockTime)
	s.Require().NoError(s.DB.Model(speculation).Update("status", models.SpeculationStatusLocked).Error)

	_, err := s.svc.VoidSpeculation(context.Background(), speculation.ID)
	s.ErrorIs(err, models.ErrSpeculationMayNotBeVoided)

	s.svc.now = func() time.Time { return lockTime.Add(s.config.VoidGracePeriod + time.Second) }

	resp, err := s.svc.VoidSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)
	s.Equal(models.WinSideVoid, resp.WinSide)
}

// settleMoneyline stakes both sides, locks, scores via a prewired contest,
// and returns the participants.
func (s *ServiceTestSuite) settleMoneyline(awayScore, homeScore int32, upperStake, lowerStake int64) (upper, lower uuid.UUID, speculationID int64) {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	lockTime := time.Now().Add(-2 * time.Hour)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", lockTime)
	s.Require().NoError(s.DB.Model(speculation).Updates(map[string]interface{}{
		"status":                models.SpeculationStatusOpen,
		"lock_time":             time.Now().Add(time.Hour),
		"next_score_attempt_at": lockTime,
	}).Error)

	upper = s.createAccount("upper@ospex.org", decimal.NewFromInt(1_000_000_000))
	lower = s.createAccount("lower@ospex.org", decimal.NewFromInt(1_000_000_000))
	s.stake(upper, speculation.ID, models.PoolSideUpper, upperStake)
	s.stake(lower, speculation.ID, models.PoolSideLower, lowerStake)

	_, err := s.svc.LockSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.DB.Model(&models.Contest{}).Where("id = ?", contest.ID).
		Updates(map[string]interface{}{
			"status":     models.ContestStatusScored,
			"away_score": awayScore,
			"home_score": homeScore,
		}).Error)

	_, err = s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)
	return upper, lower, speculation.ID
}

func (s *ServiceTestSuite) TestClaimPaysWinnerFromBothPools() {
	upper, lower, speculationID := s.settleMoneyline(24, 17, 6_000_000, 4_000_000)

	claim, err := s.svc.Claim(context.Background(), upper, speculationID, &ClaimRequest{})
	s.Require().NoError(err)
	s.Equal(models.WinSideAway, claim.WinSide)
	// 6_000_000 * 10_000_000 / 6_000_000: the winner takes the whole pool.
	s.True(claim.Winnings.Equal(decimal.NewFromInt(10_000_000)), claim.Winnings.String())
	s.True(s.balanceOf(upper).Equal(decimal.NewFromInt(1_004_000_000)))
	s.True(s.balanceOf(s.config.CustodyAccountID).IsZero())

	_, err = s.svc.Claim(context.Background(), lower, speculationID, &ClaimRequest{})
	s.ErrorIs(err, models.ErrIneligibleForWinnings)
}

func (s *ServiceTestSuite) TestClaimTruncatesTowardZero() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))

	winnerA := s.createAccount("winner-a@ospex.org", decimal.NewFromInt(1_000_000_000))
	winnerB := s.createAccount("winner-b@ospex.org", decimal.NewFromInt(1_000_000_000))
	loser := s.createAccount("loser@ospex.org", decimal.NewFromInt(1_000_000_000))
	s.stake(winnerA, speculation.ID, models.PoolSideUpper, 1_000_000)
	s.stake(winnerB, speculation.ID, models.PoolSideUpper, 2_000_000)
	s.stake(loser, speculation.ID, models.PoolSideLower, 1_000_001)

	_, err := s.svc.LockSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.DB.Model(&models.Contest{}).Where("id = ?", contest.ID).
		Updates(map[string]interface{}{"status": models.ContestStatusScored, "away_score": 3, "home_score": 0}).Error)
	s.Require().NoError(s.DB.Model(&models.Speculation{}).Where("id = ?", speculation.ID).
		Update("next_score_attempt_at", time.Now().Add(-time.Minute)).Error)
	_, err = s.svc.ScoreSpeculation(context.Background(), speculation.ID)
	s.Require().NoError(err)

	// Total pool 4_000_001 split over a 3_000_000 winning pool. Each share
	// truncates; the dust remainder stays in custody.
	claimA, err := s.svc.Claim(context.Background(), winnerA, speculation.ID, &ClaimRequest{})
	s.Require().NoError(err)
	s.True(claimA.Winnings.Equal(decimal.NewFromInt(1_333_333)), claimA.Winnings.String())

	claimB, err := s.svc.Claim(context.Background(), winnerB, speculation.ID, &ClaimRequest{})
	s.Require().NoError(err)
	s.True(claimB.Winnings.Equal(decimal.NewFromInt(2_666_667)), claimB.Winnings.String())

	s.True(s.balanceOf(s.config.CustodyAccountID).Equal(decimal.NewFromInt(1)))
}

func (s *ServiceTestSuite) TestClaimPushRefundsBothSides() {
	upper, lower, speculationID := s.settleMoneyline(21, 21, 6_000_000, 4_000_000)

	claimUpper, err := s.svc.Claim(context.Background(), upper, speculationID, &ClaimRequest{})
	s.Require().NoError(err)
	s.Equal(models.WinSidePush, claimUpper.WinSide)
	s.True(claimUpper.Winnings.Equal(decimal.NewFromInt(6_000_000)))

	claimLower, err := s.svc.Claim(context.Background(), lower, speculationID, &ClaimRequest{})
	s.Require().NoError(err)
	s.True(claimLower.Winnings.Equal(decimal.NewFromInt(4_000_000)))

	s.True(s.balanceOf(upper).Equal(decimal.NewFromInt(1_000_000_000)))
	s.True(s.balanceOf(lower).Equal(decimal.NewFromInt(1_000_000_000)))
	s.True(s.balanceOf(s.config.CustodyAccountID).IsZero())
}

func (s *ServiceTestSuite) TestClaimIsOneShot() {
	upper, _, speculationID := s.settleMoneyline(24, 17, 6_000_000, 4_000_000)

	_, err := s.svc.Claim(context.Background(), upper, speculationID, &ClaimRequest{})
	s.Require().NoError(err)

	_, err = s.svc.Claim(context.Background(), upper, speculationID, &ClaimRequest{})
	s.ErrorIs(err, models.ErrWinningsAlreadyClaimed)
}

func (s *ServiceTestSuite) TestClaimContributionClampedToWinnings() {
	upper, _, speculationID := s.settleMoneyline(24, 17, 6_000_000, 4_000_000)

	claim, err := s.svc.Claim(context.Background(), upper, speculationID, &ClaimRequest{
		Contribution: decimal.NewFromInt(99_000_000),
	})
	s.Require().NoError(err)
	s.True(claim.Contribution.Equal(decimal.NewFromInt(10_000_000)))
	s.True(claim.NetPayout.IsZero())
	s.True(s.balanceOf(s.config.TreasuryAccountID).Equal(decimal.NewFromInt(10_000_000)))
	s.True(s.balanceOf(upper).Equal(decimal.NewFromInt(994_000_000)))
}

func (s *ServiceTestSuite) TestClaimRequiresClosedSpeculation() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	speculation := s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	bettor := s.createAccount("early@ospex.org", decimal.NewFromInt(50_000_000))
	s.stake(bettor, speculation.ID, models.PoolSideUpper, 2_000_000)

	_, err := s.svc.Claim(context.Background(), bettor, speculation.ID, &ClaimRequest{})
	s.ErrorIs(err, models.ErrSpeculationStatusIsNotClosed)
}

func (s *ServiceTestSuite) TestClaimWithoutPosition() {
	_, _, speculationID := s.settleMoneyline(24, 17, 6_000_000, 4_000_000)
	stranger := s.createAccount("stranger@ospex.org", decimal.NewFromInt(50_000_000))

	_, err := s.svc.Claim(context.Background(), stranger, speculationID, &ClaimRequest{})
	s.ErrorIs(err, models.ErrIneligibleForWinnings)
}

func (s *ServiceTestSuite) TestGetSpeculationsByContest() {
	contest := s.createContest(models.ContestStatusVerified, 0, 0)
	s.createSpeculation(contest.ID, models.ScorerTypeMoneyline, "0", time.Now().Add(time.Hour))
	s.createSpeculation(contest.ID, models.ScorerTypeTotal, "44.5", time.Now().Add(time.Hour))

	responses, err := s.svc.GetSpeculationsByContest(context.Background(), contest.ID)
	s.Require().NoError(err)
	s.Len(responses, 2)
}
