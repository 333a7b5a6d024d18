package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
)

func geocodePayload(lat, lng float64) string {
	return fmt.Sprintf(`{"status":"OK","results":[{"geometry":{"location":{"lat":%v,"lng":%v}}}]}`, lat, lng)
}

func TestResolveReturnsFirstResult(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("address")
		fmt.Fprint(w, geocodePayload(40.7484405, -73.9878584))
	}))
	defer server.Close()

	svc := NewGeocodingService(logger.NewNop(), server.URL, "test-key")
	coords, err := svc.Resolve(context.Background(), "20 W 34th St, New York")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if coords.Lat != 40.7484405 || coords.Lng != -73.9878584 {
		t.Fatalf("coords: got=%+v", coords)
	}
	if gotPath != "/maps/api/geocode/json" {
		t.Fatalf("path: got=%s", gotPath)
	}
	if gotQuery != "20 W 34th St, New York" {
		t.Fatalf("address query: got=%q", gotQuery)
	}
}

func TestResolveZeroResultsIsGeocodeFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer server.Close()

	svc := NewGeocodingService(logger.NewNop(), server.URL, "test-key")
	if _, err := svc.Resolve(context.Background(), "nowhere at all"); !domainagg.IsCode(err, domainagg.CodeGeocode) {
		t.Fatalf("expected geocode code, got=%v", err)
	}
}

func TestResolveRetriesTransientUpstreamFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, geocodePayload(1, 2))
	}))
	defer server.Close()

	svc := NewGeocodingService(logger.NewNop(), server.URL, "test-key")
	coords, err := svc.Resolve(context.Background(), "somewhere")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if coords.Lat != 1 || coords.Lng != 2 {
		t.Fatalf("coords: got=%+v", coords)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestResolveHonorsRetryAfterHint(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, geocodePayload(1, 2))
	}))
	defer server.Close()

	svc := NewGeocodingService(logger.NewNop(), server.URL, "test-key")
	start := time.Now()
	if _, err := svc.Resolve(context.Background(), "somewhere"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
	// The hinted second lasts longer than the default first-attempt backoff.
	if elapsed := time.Since(start); elapsed < 900*time.Millisecond {
		t.Fatalf("retry ignored the Retry-After hint, waited only %v", elapsed)
	}
}

func TestResolveDoesNotRetryClientFault(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	svc := NewGeocodingService(logger.NewNop(), server.URL, "test-key")
	if _, err := svc.Resolve(context.Background(), "somewhere"); !domainagg.IsCode(err, domainagg.CodeGeocode) {
		t.Fatalf("expected geocode code, got=%v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}
