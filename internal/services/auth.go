package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/requestdata"
	"github.com/yungbote/places-backend/internal/types"
)

// AuthService issues and verifies bearer credentials. Every verification
// failure collapses into the same unauthorized error so the caller never
// learns which part of the credential was wrong.
type AuthService interface {
	IssueToken(user *types.User) (string, error)
	SetContextFromHeader(ctx context.Context, rawHeader string) (context.Context, error)
}

type JWTClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type authService struct {
	log          *logger.Logger
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(log *logger.Logger, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:          serviceLog,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) IssueToken(user *types.User) (string, error) {
	claims := JWTClaims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", domainagg.Wrap(domainagg.CodeInternal, "auth.issue", err)
	}
	return signed, nil
}

// SetContextFromHeader verifies a raw Authorization header value of the
// form "Bearer <token>" and attaches the principal to the context.
func (as *authService) SetContextFromHeader(ctx context.Context, rawHeader string) (context.Context, error) {
	tokenString, err := extractBearerToken(rawHeader)
	if err != nil {
		return ctx, as.authError(err)
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, as.authError(err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, as.authError(fmt.Errorf("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return ctx, as.authError(fmt.Errorf("token carries no user id"))
	}
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

// authError is the single unauthorized classification for every
// verification failure; the underlying cause stays server-side.
func (as *authService) authError(cause error) error {
	as.log.Debug("credential verification failed", "error", cause)
	return domainagg.NewError(domainagg.CodeUnauthorized, "auth.verify", "could not verify authentication", cause)
}

func extractBearerToken(rawHeader string) (string, error) {
	header := strings.TrimSpace(rawHeader)
	if header == "" {
		return "", fmt.Errorf("missing authorization header")
	}
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", fmt.Errorf("malformed authorization header")
	}
	token := strings.TrimSpace(header[7:])
	if token == "" {
		return "", fmt.Errorf("missing token segment")
	}
	return token, nil
}
