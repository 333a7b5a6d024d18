package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/requestdata"
	"github.com/yungbote/places-backend/internal/services"
	"github.com/yungbote/places-backend/internal/types"
)

func newAuthFixture(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	authService := services.NewAuthService(log, "test-secret", time.Hour)
	mw := NewAuthMiddleware(log, authService)

	router := gin.New()
	router.Use(mw.RequireAuth())
	handle := func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.JSON(http.StatusOK, gin.H{"principal": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"principal": rd.UserID.String()})
	}
	router.GET("/protected", handle)
	router.OPTIONS("/protected", handle)
	return router, authService
}

func TestRequireAuthAttachesPrincipal(t *testing.T) {
	router, authService := newAuthFixture(t)
	user := &types.User{ID: uuid.New()}
	token, err := authService.IssueToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRequireAuthRejectsMissingCredential(t *testing.T) {
	router, _ := newAuthFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: want=401 got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRequireAuthRejectsTamperedToken(t *testing.T) {
	router, authService := newAuthFixture(t)
	token, err := authService.IssueToken(&types.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: want=401 got=%d", rec.Code)
	}
}

func TestRequireAuthBypassesPreflight(t *testing.T) {
	router, _ := newAuthFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Preflight reaches the handler with no credential attached.
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
}
