package speculations

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ospex-org/ospex/models"
)

// Scorer resolves a speculation's win side from its contest's final score.
// Implementations are pure; the service owns persistence and custody.
type Scorer interface {
	Score(speculation *models.Speculation, contest *models.Contest) (models.WinSide, error)
}

// ScorerFor returns the resolver bound to a scorer type.
func ScorerFor(scorerType models.ScorerType) (Scorer, error) {
	switch scorerType {
	case models.ScorerTypeMoneyline:
		return moneylineScorer{}, nil
	case models.ScorerTypeSpread:
		return spreadScorer{}, nil
	case models.ScorerTypeTotal:
		return totalScorer{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", scorerType, models.ErrUnknownScorerType)
	}
}

// scoreGuard rejects resolution until the contest score is authoritative.
// An oracle-reported 0-0 parks the contest in RequiresConfirmation, so the
// zero-zero check must come before the finality check or callers would see
// the generic not-finalized error instead. Only a manual (0,0) confirmation
// makes a scoreless final trustworthy. The legacy NotMatching status
// surfaces its own error for operator visibility.
func scoreGuard(contest *models.Contest) error {
	if contest.Status == models.ContestStatusNotMatching {
		return fmt.Errorf("contest %d: %w", contest.ID, models.ErrNonMatchingScoreFromOracles)
	}
	if contest.AwayScore == 0 && contest.HomeScore == 0 &&
		(contest.Status == models.ContestStatusScored || contest.Status == models.ContestStatusRequiresConfirmation) {
		return fmt.Errorf("contest %d: %w", contest.ID, models.ErrZeroZeroScoreMustBeVerified)
	}
	if !contest.HasFinalScore() {
		return fmt.Errorf("contest %d: %w", contest.ID, models.ErrScoreNotFinalized)
	}
	return nil
}

type moneylineScorer struct{}

// Score resolves a winner straight from the final score. Equal scores push.
func (moneylineScorer) Score(_ *models.Speculation, contest *models.Contest) (models.WinSide, error) {
	if err := scoreGuard(contest); err != nil {
		return models.WinSideTBD, err
	}
	switch {
	case contest.AwayScore > contest.HomeScore:
		return models.WinSideAway, nil
	case contest.HomeScore > contest.AwayScore:
		return models.WinSideHome, nil
	default:
		return models.WinSidePush, nil
	}
}

type spreadScorer struct{}

// Score applies the line to the away score. The away side also wins exact
// ties against the handicap; with half-point lines ties cannot occur, and
// whole-number lines keep this convention.
func (spreadScorer) Score(speculation *models.Speculation, contest *models.Contest) (models.WinSide, error) {
	if err := scoreGuard(contest); err != nil {
		return models.WinSideTBD, err
	}
	adjustedAway := decimal.NewFromInt32(contest.AwayScore).Add(speculation.TheNumber)
	if adjustedAway.GreaterThanOrEqual(decimal.NewFromInt32(contest.HomeScore)) {
		return models.WinSideAway, nil
	}
	return models.WinSideHome, nil
}

type totalScorer struct{}

// Score compares the combined score to the line. The over side also wins an
// exact landing on the total.
func (totalScorer) Score(speculation *models.Speculation, contest *models.Contest) (models.WinSide, error) {
	if err := scoreGuard(contest); err != nil {
		return models.WinSideTBD, err
	}
	combined := decimal.NewFromInt32(contest.AwayScore).Add(decimal.NewFromInt32(contest.HomeScore))
	if combined.GreaterThanOrEqual(speculation.TheNumber) {
		return models.WinSideOver, nil
	}
	return models.WinSideUnder, nil
}
