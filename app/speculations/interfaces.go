package speculations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ospex-org/ospex/models"
)

type Repository interface {
	CreateSpeculation(ctx context.Context, speculation *models.Speculation) error
	GetSpeculationByID(ctx context.Context, id int64) (*models.Speculation, error)
	GetSpeculationByIDForUpdate(ctx context.Context, id int64) (*models.Speculation, error)
	UpdateSpeculation(ctx context.Context, speculation *models.Speculation) error
	GetSpeculationsByContest(ctx context.Context, contestID int64) ([]models.Speculation, error)

	GetPosition(ctx context.Context, speculationID int64, accountID uuid.UUID) (*models.Position, error)
	GetPositionForUpdate(ctx context.Context, speculationID int64, accountID uuid.UUID) (*models.Position, error)
	SavePosition(ctx context.Context, position *models.Position) error

	WithTx(tx *gorm.DB) Repository
}

type Service interface {
	CreateSpeculation(ctx context.Context, creatorID uuid.UUID, req *CreateSpeculationRequest) (*Response, error)
	CreatePosition(ctx context.Context, accountID uuid.UUID, speculationID int64, req *CreatePositionRequest) (*PositionResponse, error)
	LockSpeculation(ctx context.Context, id int64) (*Response, error)
	ScoreSpeculation(ctx context.Context, id int64) (*Response, error)
	ForfeitSpeculation(ctx context.Context, id int64) (*Response, error)
	VoidSpeculation(ctx context.Context, id int64) (*Response, error)
	Claim(ctx context.Context, accountID uuid.UUID, speculationID int64, req *ClaimRequest) (*ClaimResponse, error)

	GetSpeculation(ctx context.Context, id int64) (*Response, error)
	GetSpeculationsByContest(ctx context.Context, contestID int64) ([]Response, error)
	GetPosition(ctx context.Context, speculationID int64, accountID uuid.UUID) (*PositionResponse, error)
}
