package services

import (
	"context"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/places-backend/internal/data/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/types"
)

type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
}

// PlaceService sequences the consistency engine with its collaborators:
// geocoding before any write on create, asset cleanup after commit on
// delete.
type PlaceService interface {
	GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error)
	GetPlacesByUser(ctx context.Context, userID uuid.UUID) ([]*types.Place, error)
	CreatePlace(ctx context.Context, creatorID uuid.UUID, input CreatePlaceInput, asset *StoredAsset) (*types.Place, error)
	UpdatePlace(ctx context.Context, principalID, placeID uuid.UUID, title, description string) (*types.Place, error)
	DeletePlace(ctx context.Context, principalID, placeID uuid.UUID) error
}

type placeService struct {
	log           *logger.Logger
	placeUser     *dataagg.PlaceUser
	geocoder      GeocodingService
	uploadService UploadService
}

func NewPlaceService(
	baseLog *logger.Logger,
	placeUser *dataagg.PlaceUser,
	geocoder GeocodingService,
	uploadService UploadService,
) PlaceService {
	serviceLog := baseLog.With("service", "PlaceService")
	return &placeService{
		log:           serviceLog,
		placeUser:     placeUser,
		geocoder:      geocoder,
		uploadService: uploadService,
	}
}

func (ps *placeService) GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error) {
	return ps.placeUser.GetPlace(ctx, placeID)
}

func (ps *placeService) GetPlacesByUser(ctx context.Context, userID uuid.UUID) ([]*types.Place, error) {
	return ps.placeUser.GetPlacesByCreator(ctx, userID)
}

// CreatePlace resolves the address first so a geocoding failure aborts
// before any write exists to roll back.
func (ps *placeService) CreatePlace(ctx context.Context, creatorID uuid.UUID, input CreatePlaceInput, asset *StoredAsset) (*types.Place, error) {
	coords, err := ps.geocoder.Resolve(ctx, input.Address)
	if err != nil {
		return nil, err
	}
	place := &types.Place{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Lat:         coords.Lat,
		Lng:         coords.Lng,
		CreatorID:   creatorID,
	}
	if asset != nil {
		place.ImageKey = asset.Key
		place.ImageURL = asset.URL
	}
	return ps.placeUser.CreatePlace(ctx, place)
}

func (ps *placeService) UpdatePlace(ctx context.Context, principalID, placeID uuid.UUID, title, description string) (*types.Place, error) {
	return ps.placeUser.UpdatePlace(ctx, principalID, placeID, title, description)
}

// DeletePlace removes the stored image only after the transaction has
// committed; the documents are the primary consistency guarantee, the
// filesystem artifact is best-effort cleanup.
func (ps *placeService) DeletePlace(ctx context.Context, principalID, placeID uuid.UUID) error {
	deleted, err := ps.placeUser.DeletePlace(ctx, principalID, placeID)
	if err != nil {
		return err
	}
	ps.uploadService.Remove(ctx, deleted.ImageKey)
	return nil
}
