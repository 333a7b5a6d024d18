package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/httpx"
	"github.com/yungbote/places-backend/internal/platform/logger"
)

// Coordinates is a resolved lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeocodingService resolves a free-text address to coordinates, or fails
// with a geocode error. Resolution happens once at place creation; the
// result is immutable afterwards.
type GeocodingService interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}

type geocodingService struct {
	log        *logger.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewGeocodingService(log *logger.Logger, baseURL, apiKey string) GeocodingService {
	serviceLog := log.With("service", "GeocodingService")
	return &geocodingService{
		log:        serviceLog,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (gs *geocodingService) Resolve(ctx context.Context, address string) (Coordinates, error) {
	const op = "geocode.resolve"
	const maxAttempts = 3

	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?address=%s&key=%s",
		gs.baseURL, url.QueryEscape(address), url.QueryEscape(gs.apiKey))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		coords, retryAfter, retryable, err := gs.resolveOnce(ctx, endpoint)
		if err == nil {
			return coords, nil
		}
		lastErr = err
		if !retryable || attempt == maxAttempts {
			break
		}
		// An upstream Retry-After hint overrides the jittered backoff.
		delay := httpx.JitterSleep(time.Duration(attempt) * 500 * time.Millisecond)
		if retryAfter > 0 {
			delay = retryAfter
		}
		gs.log.Warn("geocode attempt failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return Coordinates{}, domainagg.Wrap(domainagg.CodeRetryable, op, ctx.Err())
		case <-time.After(delay):
		}
	}
	if _, ok := domainagg.CodeOf(lastErr); ok {
		return Coordinates{}, lastErr
	}
	return Coordinates{}, domainagg.Wrap(domainagg.CodeGeocode, op, lastErr)
}

func (gs *geocodingService) resolveOnce(ctx context.Context, endpoint string) (Coordinates, time.Duration, bool, error) {
	const op = "geocode.resolve"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, 0, false, err
	}
	resp, err := gs.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, 0, httpx.IsRetryableError(err), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, httpx.RetryAfterDuration(resp, 0, 30*time.Second),
			httpx.IsRetryableHTTPStatus(resp.StatusCode),
			fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}
	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Coordinates{}, 0, false, err
	}
	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		return Coordinates{}, 0, false, domainagg.NewError(domainagg.CodeGeocode, op,
			"could not find location for the specified address", nil)
	}
	if payload.Status != "OK" {
		return Coordinates{}, 0, false, fmt.Errorf("geocoder status %q", payload.Status)
	}
	return payload.Results[0].Geometry.Location, 0, false, nil
}
