package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"attendance-be/internal/cache"
	"attendance-be/internal/errutil"
	"attendance-be/internal/geocode"

	json "github.com/goccy/go-json"
)

// LocationService resolves coordinates to a location description.
type LocationService interface {
	ReverseGeocode(ctx context.Context, latitude, longitude string) ([]byte, error)
}

type locationService struct {
	client geocode.Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewLocationService creates a location service. cacheClient may be nil, in
// which case every lookup goes to the provider.
func NewLocationService(client geocode.Client, cacheClient cache.Cache, ttl time.Duration) LocationService {
	svc := &locationService{
		client: client,
		ttl:    ttl,
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// ReverseGeocode returns the provider's raw JSON for the coordinates, served
// from cache when possible.
func (s *locationService) ReverseGeocode(ctx context.Context, latitude, longitude string) ([]byte, error) {
	latitude, longitude = strings.TrimSpace(latitude), strings.TrimSpace(longitude)
	if latitude == "" || longitude == "" {
		return nil, errutil.InvalidArgument("Latitude and longitude are required")
	}

	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, errutil.InvalidArgument("Latitude must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(longitude, 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nil, errutil.InvalidArgument("Longitude must be a number between -180 and 180")
	}

	key := cacheKey(lat, lon)
	if body, ok := s.cached(ctx, key); ok {
		return body, nil
	}

	body, err := s.client.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return nil, errutil.Internal(err, "reverse geocode")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body, s.ttl); err != nil {
			slog.WarnContext(ctx, "failed to cache location", "key", key, "error", err)
		}
	}

	return body, nil
}

// cached reads a previous answer. Cache failures and corrupt values count as misses.
func (s *locationService) cached(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}

	body, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			slog.WarnContext(ctx, "location cache unavailable", "key", key, "error", err)
		}
		return nil, false
	}

	if !json.Valid(body) {
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return body, true
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("geocode:%s:%s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)
}
