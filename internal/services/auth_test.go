package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/requestdata"
	"github.com/yungbote/places-backend/internal/types"
)

func newTestAuthService(secret string) AuthService {
	return NewAuthService(logger.NewNop(), secret, time.Hour)
}

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	svc := newTestAuthService("test-secret")
	user := &types.User{ID: uuid.New()}

	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	ctx, err := svc.SetContextFromHeader(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("request data missing from context")
	}
	if rd.UserID != user.ID {
		t.Fatalf("principal: want=%s got=%s", user.ID, rd.UserID)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer := newTestAuthService("secret-a")
	verifier := newTestAuthService("secret-b")
	token, err := issuer.IssueToken(&types.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.SetContextFromHeader(context.Background(), "Bearer "+token); !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
		t.Fatalf("expected unauthorized code, got=%v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewAuthService(logger.NewNop(), "test-secret", -time.Minute)
	verifier := newTestAuthService("test-secret")
	token, err := issuer.IssueToken(&types.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.SetContextFromHeader(context.Background(), "Bearer "+token); !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
		t.Fatalf("expected unauthorized code, got=%v", err)
	}
}

func TestVerifyCollapsesHeaderFailures(t *testing.T) {
	svc := newTestAuthService("test-secret")
	headers := []string{
		"",
		"Bearer",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		"Bearer not.a.token",
	}
	var messages []string
	for _, header := range headers {
		_, err := svc.SetContextFromHeader(context.Background(), header)
		if !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
			t.Fatalf("header %q: expected unauthorized code, got=%v", header, err)
		}
		messages = append(messages, domainagg.MessageOf(err))
	}
	// Every failure mode must look identical to the caller.
	for i := 1; i < len(messages); i++ {
		if messages[i] != messages[0] {
			t.Fatalf("failure messages diverge: %q vs %q", messages[0], messages[i])
		}
	}
}
