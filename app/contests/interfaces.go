package contests

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/models"
)

type Repository interface {
	CreateContest(ctx context.Context, contest *models.Contest) error
	GetContestByID(ctx context.Context, id int64) (*models.Contest, error)
	GetContestByIDForUpdate(ctx context.Context, id int64) (*models.Contest, error)
	UpdateContest(ctx context.Context, contest *models.Contest) error

	CreateOracleRequest(ctx context.Context, request *models.OracleRequest) error
	GetOracleRequestByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.OracleRequest, error)
	UpdateOracleRequest(ctx context.Context, request *models.OracleRequest) error
	// SupersedePendingRequests consumes every unconsumed request for the
	// contest so a late response to an old request cannot apply.
	SupersedePendingRequests(ctx context.Context, contestID int64) error

	GetSource(ctx context.Context, kind models.OracleRequestKind) (*models.OracleSource, error)
	UpsertSource(ctx context.Context, source *models.OracleSource) error

	GetSettings(ctx context.Context) (*models.OracleSettings, error)
	SaveSettings(ctx context.Context, settings *models.OracleSettings) error

	WithTx(tx *gorm.DB) Repository
}

type Service interface {
	CreateContest(ctx context.Context, creatorID uuid.UUID, req *CreateContestRequest) (*Response, error)
	ScoreContest(ctx context.Context, payerID uuid.UUID, id int64, req *ScoreContestRequest) (*Response, error)
	HandleOracleResponse(ctx context.Context, req *OracleCallbackRequest) error
	ScoreContestManually(ctx context.Context, id int64, req *ManualScoreRequest) (*Response, error)
	GetContest(ctx context.Context, id int64) (*models.Contest, error)

	UpdateSourceHash(ctx context.Context, kind models.OracleRequestKind, hash string) error
	UpdateOracleFee(ctx context.Context, req *UpdateFeeRequest) error
}

// Reader is the narrow read surface the speculation engine consumes.
type Reader interface {
	GetContest(ctx context.Context, id int64) (*models.Contest, error)
}
