package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dataagg "github.com/yungbote/places-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/repos"
	"github.com/yungbote/places-backend/internal/types"
)

const minPasswordLength = 6

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// UserService covers the users surface: listing, signup and login. The
// password credential is stored opaque; credential hashing is out of
// scope for this service.
type UserService interface {
	GetUsers(ctx context.Context) ([]*types.User, error)
	Signup(ctx context.Context, input SignupInput, asset *StoredAsset) (*types.User, string, error)
	Login(ctx context.Context, email, password string) (*types.User, string, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	authService   AuthService
	avatarService AvatarService
	uploadService UploadService
}

func NewUserService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	authService AuthService,
	avatarService AvatarService,
	uploadService UploadService,
) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		authService:   authService,
		avatarService: avatarService,
		uploadService: uploadService,
	}
}

func (us *userService) GetUsers(ctx context.Context) ([]*types.User, error) {
	users, err := us.userRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, dataagg.MapError("user.list", err)
	}
	return users, nil
}

func (us *userService) Signup(ctx context.Context, input SignupInput, asset *StoredAsset) (*types.User, string, error) {
	const op = "user.signup"
	if err := validateSignup(input); err != nil {
		return nil, "", err
	}
	email := strings.TrimSpace(input.Email)
	exists, err := us.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, "", dataagg.MapError(op, err)
	}
	if exists {
		return nil, "", domainagg.NewError(domainagg.CodeValidation, op, "user exists already, please login instead", nil)
	}

	user := &types.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: input.Password,
	}
	user.SetPlaceIDs(nil)

	generatedAvatar := false
	if asset == nil {
		buf, rErr := us.avatarService.Render(user.Name)
		if rErr != nil {
			return nil, "", rErr
		}
		key := user.ID.String() + ".png"
		asset, err = us.uploadService.Store(ctx, key, &buf)
		if err != nil {
			return nil, "", err
		}
		generatedAvatar = true
	}
	user.ImageKey = asset.Key
	user.ImageURL = asset.URL

	if _, err := us.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		if generatedAvatar {
			us.uploadService.Remove(ctx, asset.Key)
		}
		return nil, "", dataagg.MapError(op, err)
	}

	token, err := us.authService.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (us *userService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	const op = "user.login"
	users, err := us.userRepo.GetByEmails(ctx, nil, []string{strings.TrimSpace(email)})
	if err != nil {
		return nil, "", dataagg.MapError(op, err)
	}
	if len(users) == 0 {
		return nil, "", us.loginError()
	}
	user := users[0]
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, "", us.loginError()
	}
	token, err := us.authService.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// loginError is identical for unknown email and wrong credential.
func (us *userService) loginError() error {
	return domainagg.NewError(domainagg.CodeUnauthorized, "user.login", "invalid credentials, could not log you in", nil)
}

func validateSignup(input SignupInput) error {
	const op = "user.signup"
	if strings.TrimSpace(input.Name) == "" {
		return domainagg.NewError(domainagg.CodeValidation, op, "a name is required to sign up", nil)
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domainagg.NewError(domainagg.CodeValidation, op, "a valid email is required to sign up", nil)
	}
	if len(input.Password) < minPasswordLength {
		return domainagg.NewError(domainagg.CodeValidation, op,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength), nil)
	}
	return nil
}
