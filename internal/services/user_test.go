package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/repos"
	"github.com/yungbote/places-backend/internal/types"
)

func newUserServiceFixture(t *testing.T) (UserService, *memStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.Place{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	log := logger.NewNop()
	store := newMemStore()
	userRepo := repos.NewUserRepo(db, log)
	authService := NewAuthService(log, "test-secret", time.Hour)
	avatarService, err := NewAvatarService(log)
	if err != nil {
		t.Fatalf("new avatar service: %v", err)
	}
	uploadService := NewUploadService(log, store)
	return NewUserService(db, log, userRepo, authService, avatarService, uploadService), store
}

func TestSignupGeneratesAvatarWhenNoImageProvided(t *testing.T) {
	svc, store := newUserServiceFixture(t)
	user, token, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Max Schwarz",
		Email:    "max@example.com",
		Password: "secret123",
	}, nil)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if token == "" {
		t.Fatalf("signup must issue a token")
	}
	if user.ImageKey == "" || !strings.HasSuffix(user.ImageKey, ".png") {
		t.Fatalf("generated avatar key: got=%q", user.ImageKey)
	}
	if _, ok := store.objects[user.ImageKey]; !ok {
		t.Fatalf("generated avatar was not stored")
	}
}

func TestSignupKeepsProvidedImage(t *testing.T) {
	svc, _ := newUserServiceFixture(t)
	asset := &StoredAsset{Key: "abc.png", URL: "http://localhost:5000/uploads/images/abc.png"}
	user, _, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Max Schwarz",
		Email:    "max@example.com",
		Password: "secret123",
	}, asset)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ImageKey != asset.Key || user.ImageURL != asset.URL {
		t.Fatalf("provided asset not kept: %+v", user)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserServiceFixture(t)
	ctx := context.Background()
	input := SignupInput{Name: "Max Schwarz", Email: "max@example.com", Password: "secret123"}
	if _, _, err := svc.Signup(ctx, input, nil); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, _, err := svc.Signup(ctx, input, nil); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code for duplicate email, got=%v", err)
	}
}

func TestSignupValidatesInput(t *testing.T) {
	svc, _ := newUserServiceFixture(t)
	ctx := context.Background()
	cases := []SignupInput{
		{Name: "", Email: "max@example.com", Password: "secret123"},
		{Name: "Max", Email: "not-an-email", Password: "secret123"},
		{Name: "Max", Email: "max@example.com", Password: "short"},
	}
	for _, input := range cases {
		if _, _, err := svc.Signup(ctx, input, nil); !domainagg.IsCode(err, domainagg.CodeValidation) {
			t.Fatalf("input %+v: expected validation code, got=%v", input, err)
		}
	}
}

func TestLoginCollapsesFailureModes(t *testing.T) {
	svc, _ := newUserServiceFixture(t)
	ctx := context.Background()
	if _, _, err := svc.Signup(ctx, SignupInput{Name: "Max", Email: "max@example.com", Password: "secret123"}, nil); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "secret123")
	_, _, wrongErr := svc.Login(ctx, "max@example.com", "wrong-password")
	for _, err := range []error{unknownErr, wrongErr} {
		if !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
			t.Fatalf("expected unauthorized code, got=%v", err)
		}
	}
	// Unknown email and wrong password must be indistinguishable.
	if domainagg.MessageOf(unknownErr) != domainagg.MessageOf(wrongErr) {
		t.Fatalf("login failures diverge: %q vs %q", domainagg.MessageOf(unknownErr), domainagg.MessageOf(wrongErr))
	}
}

func TestLoginSucceedsWithStoredCredential(t *testing.T) {
	svc, _ := newUserServiceFixture(t)
	ctx := context.Background()
	created, _, err := svc.Signup(ctx, SignupInput{Name: "Max", Email: "max@example.com", Password: "secret123"}, nil)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	user, token, err := svc.Login(ctx, "max@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("principal: want=%s got=%s", created.ID, user.ID)
	}
	if token == "" {
		t.Fatalf("login must issue a token")
	}
}
