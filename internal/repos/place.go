package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/types"
)

type PlaceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, places []*types.Place) ([]*types.Place, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, placeIDs []uuid.UUID) ([]*types.Place, error)
	GetByCreatorIDs(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID) ([]*types.Place, error)
	Save(ctx context.Context, tx *gorm.DB, place *types.Place) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, placeIDs []uuid.UUID) error
}

type placeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	repoLog := baseLog.With("repo", "PlaceRepo")
	return &placeRepo{db: db, log: repoLog}
}

func (pr *placeRepo) Create(ctx context.Context, tx *gorm.DB, places []*types.Place) ([]*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(places) == 0 {
		return []*types.Place{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (pr *placeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, placeIDs []uuid.UUID) ([]*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Place
	if len(placeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", placeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *placeRepo) GetByCreatorIDs(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID) ([]*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Place
	if len(creatorIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("creator_id IN ?", creatorIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *placeRepo) Save(ctx context.Context, tx *gorm.DB, place *types.Place) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(place).Error
}

func (pr *placeRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, placeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(placeIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", placeIDs).
		Delete(&types.Place{}).Error
}
