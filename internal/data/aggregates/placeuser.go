package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/dbctx"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/repos"
	"github.com/yungbote/places-backend/internal/types"
)

// PlaceUser is the consistency engine for the place/user pair. Every
// create and delete writes the Place document and the owning User's
// places array inside one transaction; the bidirectional link
// (place.creator_id == user.id iff place.id in user.places) holds after
// every committed write.
type PlaceUser struct {
	runner    TxRunner
	log       *logger.Logger
	userRepo  repos.UserRepo
	placeRepo repos.PlaceRepo
}

func NewPlaceUser(runner TxRunner, baseLog *logger.Logger, userRepo repos.UserRepo, placeRepo repos.PlaceRepo) *PlaceUser {
	aggLog := baseLog.With("aggregate", "PlaceUser")
	return &PlaceUser{
		runner:    runner,
		log:       aggLog,
		userRepo:  userRepo,
		placeRepo: placeRepo,
	}
}

// GetPlace returns a single place by id. Plain read, no transaction.
func (pu *PlaceUser) GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error) {
	const op = "placeuser.get"
	found, err := pu.placeRepo.GetByIDs(ctx, nil, []uuid.UUID{placeID})
	if err != nil {
		return nil, MapError(op, err)
	}
	if len(found) == 0 {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "could not find place for the provided id", nil)
	}
	return found[0], nil
}

// GetPlacesByCreator returns all places owned by a user. An empty result
// is reported as not found, matching the external API contract.
func (pu *PlaceUser) GetPlacesByCreator(ctx context.Context, creatorID uuid.UUID) ([]*types.Place, error) {
	const op = "placeuser.list"
	found, err := pu.placeRepo.GetByCreatorIDs(ctx, nil, []uuid.UUID{creatorID})
	if err != nil {
		return nil, MapError(op, err)
	}
	if len(found) == 0 {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "could not find places for the provided user id", nil)
	}
	return found, nil
}

// CreatePlace persists place and appends its id to the creator's places
// array as one atomic unit. The creator row is read with a write lock so
// concurrent creates for the same user serialize on the places array
// instead of losing links. The creator must exist; a vanished creator is
// an integrity fault, not a client error, since the principal was already
// verified upstream.
func (pu *PlaceUser) CreatePlace(ctx context.Context, place *types.Place) (*types.Place, error) {
	const op = "placeuser.create"
	if place == nil || place.CreatorID == uuid.Nil {
		return nil, MapError(op, ValidationError("place must carry a creator"))
	}
	if place.ID == uuid.Nil {
		place.ID = uuid.New()
	}
	err := pu.runner.InTx(ctx, func(dbc dbctx.Context) error {
		users, uErr := pu.userRepo.GetByIDsForUpdate(dbc.Ctx, dbc.Tx, []uuid.UUID{place.CreatorID})
		if uErr != nil {
			return uErr
		}
		if len(users) == 0 {
			return IntegrityError(fmt.Sprintf("creator %s does not exist", place.CreatorID))
		}
		user := users[0]
		if _, cErr := pu.placeRepo.Create(dbc.Ctx, dbc.Tx, []*types.Place{place}); cErr != nil {
			return cErr
		}
		user.AppendPlaceID(place.ID)
		return pu.userRepo.Save(dbc.Ctx, dbc.Tx, user)
	})
	if err != nil {
		return nil, MapError(op, err)
	}
	return place, nil
}

// UpdatePlace edits title and description only. Existence is checked
// before ownership; a single-document write needs no cross-entity
// transaction because the user-side link is untouched.
func (pu *PlaceUser) UpdatePlace(ctx context.Context, principalID, placeID uuid.UUID, title, description string) (*types.Place, error) {
	const op = "placeuser.update"
	found, err := pu.placeRepo.GetByIDs(ctx, nil, []uuid.UUID{placeID})
	if err != nil {
		return nil, MapError(op, err)
	}
	if len(found) == 0 {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "could not find place for the provided id", nil)
	}
	place := found[0]
	if place.CreatorID != principalID {
		return nil, MapError(op, ForbiddenError("you are not allowed to edit this place"))
	}
	place.Title = title
	place.Description = description
	if err := pu.placeRepo.Save(ctx, nil, place); err != nil {
		return nil, MapError(op, err)
	}
	return place, nil
}

// DeletePlace removes place and its id from the owner's places array as
// one atomic unit, and returns the deleted place so the caller can clean
// up the stored asset after commit.
func (pu *PlaceUser) DeletePlace(ctx context.Context, principalID, placeID uuid.UUID) (*types.Place, error) {
	const op = "placeuser.delete"
	var deleted *types.Place
	err := pu.runner.InTx(ctx, func(dbc dbctx.Context) error {
		found, pErr := pu.placeRepo.GetByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{placeID})
		if pErr != nil {
			return pErr
		}
		if len(found) == 0 {
			return domainagg.NewError(domainagg.CodeNotFound, op, "could not find place for the provided id", nil)
		}
		place := found[0]
		users, uErr := pu.userRepo.GetByIDsForUpdate(dbc.Ctx, dbc.Tx, []uuid.UUID{place.CreatorID})
		if uErr != nil {
			return uErr
		}
		if len(users) == 0 {
			return IntegrityError(fmt.Sprintf("owner %s of place %s does not exist", place.CreatorID, place.ID))
		}
		user := users[0]
		if user.ID != principalID {
			return ForbiddenError("you are not allowed to delete this place")
		}
		if dErr := pu.placeRepo.DeleteByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{place.ID}); dErr != nil {
			return dErr
		}
		if !user.RemovePlaceID(place.ID) {
			pu.log.Warn("place id missing from owner places array, repairing on delete",
				"place_id", place.ID,
				"user_id", user.ID,
			)
		}
		if sErr := pu.userRepo.Save(dbc.Ctx, dbc.Tx, user); sErr != nil {
			return sErr
		}
		deleted = place
		return nil
	})
	if err != nil {
		return nil, MapError(op, err)
	}
	return deleted, nil
}
