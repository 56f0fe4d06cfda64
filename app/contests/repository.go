package contests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ospex-org/ospex/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new contest repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateContest(ctx context.Context, contest *models.Contest) error {
	return r.db.WithContext(ctx).Create(contest).Error
}

func (r *repository) GetContestByID(ctx context.Context, id int64) (*models.Contest, error) {
	var contest models.Contest
	err := r.db.WithContext(ctx).First(&contest, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (r *repository) GetContestByIDForUpdate(ctx context.Context, id int64) (*models.Contest, error) {
	var contest models.Contest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&contest, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (r *repository) UpdateContest(ctx context.Context, contest *models.Contest) error {
	return r.db.WithContext(ctx).Save(contest).Error
}

func (r *repository) CreateOracleRequest(ctx context.Context, request *models.OracleRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) GetOracleRequestByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.OracleRequest, error) {
	var request models.OracleRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) UpdateOracleRequest(ctx context.Context, request *models.OracleRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *repository) SupersedePendingRequests(ctx context.Context, contestID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.OracleRequest{}).
		Where("contest_id = ? AND consumed = false", contestID).
		Updates(map[string]interface{}{"consumed": true, "consumed_at": now}).Error
}

func (r *repository) GetSource(ctx context.Context, kind models.OracleRequestKind) (*models.OracleSource, error) {
	var source models.OracleSource
	err := r.db.WithContext(ctx).First(&source, "kind = ?", kind).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *repository) UpsertSource(ctx context.Context, source *models.OracleSource) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"hash", "updated_at"}),
		}).
		Create(source).Error
}

func (r *repository) GetSettings(ctx context.Context) (*models.OracleSettings, error) {
	var settings models.OracleSettings
	err := r.db.WithContext(ctx).First(&settings, "id = 1").Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repository) SaveSettings(ctx context.Context, settings *models.OracleSettings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}
