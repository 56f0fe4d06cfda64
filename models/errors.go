package models

import "errors"

var (
	// Contest / oracle resolution errors.
	ErrIncorrectHash                   = errors.New("source payload hash does not match registered hash")
	ErrLinkAmountTooLow                = errors.New("oracle fee transfer failed")
	ErrTimerHasNotExpired              = errors.New("request timer has not expired")
	ErrScoreContestNotInReadyStatus    = errors.New("contest is not in a scoreable status")
	ErrContestUnableToBeScoredManually = errors.New("contest cannot be scored manually from its current status")
	ErrContestStatusInvalid            = errors.New("invalid contest status transition")
	ErrOracleRequestNotFound           = errors.New("no pending oracle request for this id")
	ErrOracleRequestConsumed           = errors.New("oracle request already consumed")
	ErrOracleSourceNotRegistered       = errors.New("no source hash registered for this request kind")

	// Outcome resolution errors. The first three are expected, retryable
	// "not yet" conditions rather than faults.
	ErrScoreNotFinalized           = errors.New("contest score is not finalized")
	ErrZeroZeroScoreMustBeVerified = errors.New("0-0 score must be manually verified before settlement")
	ErrNonMatchingScoreFromOracles = errors.New("oracle sources reported non-matching scores")
	ErrUnknownScorerType           = errors.New("unknown speculation scorer type")

	// Speculation lifecycle errors.
	ErrSpeculationHasStarted               = errors.New("speculation is no longer accepting positions")
	ErrSpeculationAmountNotAboveMinimum    = errors.New("stake amount below minimum")
	ErrSpeculationAmountIsAboveMaximum     = errors.New("stake amount above maximum")
	ErrContributionMayNotExceedTotalAmount = errors.New("contribution may not exceed stake amount")
	ErrSpeculationStatusIsClosed           = errors.New("speculation is already closed")
	ErrSpeculationStatusIsNotClosed        = errors.New("speculation is not closed")
	ErrSpeculationMayNotBeForfeited        = errors.New("speculation may not be forfeited from its current status")
	ErrSpeculationMayNotBeVoided           = errors.New("speculation may not be voided yet")
	ErrSpeculationNotLockable              = errors.New("speculation is not in an open status")
	ErrWinSideAlreadySet                   = errors.New("win side has already been set")
	ErrInvalidPoolSide                     = errors.New("invalid pool side")

	// Claim errors. Both are permanent for the (speculation, account) pair.
	ErrWinningsAlreadyClaimed = errors.New("winnings already claimed")
	ErrIneligibleForWinnings  = errors.New("account is not eligible for winnings")

	// Custody errors.
	ErrInsufficientBalance      = errors.New("insufficient wallet balance")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")
	ErrNegativeBalance          = errors.New("balance cannot be negative")

	// Identity errors.
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidAccountID = errors.New("invalid account ID")

	// Configuration errors.
	ErrInvalidStakeLimits              = errors.New("invalid stake amount limits")
	ErrInvalidOracleFee                = errors.New("invalid oracle fee")
	ErrInvalidRequestInterval          = errors.New("invalid request interval")
	ErrInvalidVoidGracePeriod          = errors.New("void grace period cannot be negative")
	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")

	ErrRecordNotFound = errors.New("record not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)
