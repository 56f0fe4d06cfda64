package speculations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ospex-org/ospex/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new speculation repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateSpeculation(ctx context.Context, speculation *models.Speculation) error {
	return r.db.WithContext(ctx).Create(speculation).Error
}

func (r *repository) GetSpeculationByID(ctx context.Context, id int64) (*models.Speculation, error) {
	var speculation models.Speculation
	err := r.db.WithContext(ctx).First(&speculation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &speculation, nil
}

func (r *repository) GetSpeculationByIDForUpdate(ctx context.Context, id int64) (*models.Speculation, error) {
	var speculation models.Speculation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&speculation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &speculation, nil
}

func (r *repository) UpdateSpeculation(ctx context.Context, speculation *models.Speculation) error {
	return r.db.WithContext(ctx).Save(speculation).Error
}

func (r *repository) GetSpeculationsByContest(ctx context.Context, contestID int64) ([]models.Speculation, error) {
	var speculations []models.Speculation
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("created_at ASC").
		Find(&speculations).Error
	return speculations, err
}

func (r *repository) GetPosition(ctx context.Context, speculationID int64, accountID uuid.UUID) (*models.Position, error) {
	var position models.Position
	err := r.db.WithContext(ctx).
		Where("speculation_id = ? AND account_id = ?", speculationID, accountID).
		First(&position).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *repository) GetPositionForUpdate(ctx context.Context, speculationID int64, accountID uuid.UUID) (*models.Position, error) {
	var position models.Position
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("speculation_id = ? AND account_id = ?", speculationID, accountID).
		First(&position).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *repository) SavePosition(ctx context.Context, position *models.Position) error {
	return r.db.WithContext(ctx).Save(position).Error
}
