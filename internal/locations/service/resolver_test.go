package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anshif14/petzify-sub001/internal/locations/cache"
	"github.com/anshif14/petzify-sub001/internal/locations/geolocate"
	usererrors "github.com/anshif14/petzify-sub001/internal/users/errors"
	"github.com/anshif14/petzify-sub001/pkg/config"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type mockProfiles struct {
	findCalls           int
	updateLocationCalls int
	findFunc            func(ctx context.Context, email string) (*model.UserProfile, error)
	updateLocationFunc  func(ctx context.Context, email string, record *model.LocationRecord) error
}

func (m *mockProfiles) FindByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	m.findCalls++
	if m.findFunc != nil {
		return m.findFunc(ctx, email)
	}
	return nil, usererrors.ErrNotFound
}

func (m *mockProfiles) Upsert(ctx context.Context, profile *model.UserProfile) error {
	return nil
}

func (m *mockProfiles) UpdateLocation(ctx context.Context, email string, record *model.LocationRecord) error {
	m.updateLocationCalls++
	if m.updateLocationFunc != nil {
		return m.updateLocationFunc(ctx, email, record)
	}
	return nil
}

type mockGeolocator struct {
	calls int
	fix   geolocate.Fix
	err   error
}

func (m *mockGeolocator) CurrentPosition(ctx context.Context) (geolocate.Fix, error) {
	m.calls++
	return m.fix, m.err
}

type mockGeocoder struct {
	calls int
	name  string
	err   error
}

func (m *mockGeocoder) PlaceName(ctx context.Context, lat, lng float64) (string, error) {
	m.calls++
	return m.name, m.err
}

func testConfig() *config.Config {
	return &config.Config{
		LocationMaxAge: 30 * time.Minute,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newTestResolver(store cache.Store, profiles *mockProfiles, geolocator *mockGeolocator, geocoder *mockGeocoder) LocationResolver {
	return NewLocationResolver(store, profiles, geolocator, geocoder, testConfig())
}

func TestResolve_FreshCacheHitShortCircuits(t *testing.T) {
	store := cache.NewMemoryStore()
	store.Put("pat@example.com", &model.LocationRecord{
		Latitude:    12.9352,
		Longitude:   77.6245,
		PlaceName:   "Koramangala, Bengaluru",
		LastUpdated: time.Now().Add(-29 * time.Minute),
	})

	profiles := &mockProfiles{}
	geolocator := &mockGeolocator{}
	geocoder := &mockGeocoder{}
	resolver := newTestResolver(store, profiles, geolocator, geocoder)

	var stages []Stage
	opts := DefaultResolveOptions("pat@example.com")
	opts.OnStage = func(s Stage) { stages = append(stages, s) }

	record, err := resolver.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.PlaceName != "Koramangala, Bengaluru" {
		t.Errorf("place name = %q, want cached value", record.PlaceName)
	}

	if profiles.findCalls != 0 {
		t.Errorf("profile store queried %d times, want 0", profiles.findCalls)
	}
	if geolocator.calls != 0 {
		t.Errorf("geolocator queried %d times, want 0", geolocator.calls)
	}
	if geocoder.calls != 0 {
		t.Errorf("geocoder queried %d times, want 0", geocoder.calls)
	}

	if len(stages) == 0 || stages[len(stages)-1] != StageSuccess {
		t.Errorf("stages = %v, want to end in success", stages)
	}
}

func TestResolve_StaleCacheFallsThrough(t *testing.T) {
	store := cache.NewMemoryStore()
	store.Put("pat@example.com", &model.LocationRecord{
		Latitude:    12.9352,
		Longitude:   77.6245,
		LastUpdated: time.Now().Add(-31 * time.Minute),
	})

	profiles := &mockProfiles{
		findFunc: func(ctx context.Context, email string) (*model.UserProfile, error) {
			return &model.UserProfile{
				Email: email,
				Location: &model.LocationRecord{
					Latitude:    13.0827,
					Longitude:   80.2707,
					LastUpdated: time.Now().Add(-5 * time.Minute),
				},
			}, nil
		},
	}
	geolocator := &mockGeolocator{}
	geocoder := &mockGeocoder{name: "Chennai"}
	resolver := newTestResolver(store, profiles, geolocator, geocoder)

	record, err := resolver.Resolve(context.Background(), DefaultResolveOptions("pat@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profiles.findCalls != 1 {
		t.Errorf("profile store queried %d times, want 1", profiles.findCalls)
	}
	if geolocator.calls != 0 {
		t.Errorf("geolocator queried %d times, want 0", geolocator.calls)
	}
	if record.PlaceName != "Chennai" {
		t.Errorf("place name = %q, want refreshed from geocoder", record.PlaceName)
	}

	// The remote copy must have been mirrored into the local cache.
	cached, ok := store.Get("pat@example.com")
	if !ok || cached.Latitude != 13.0827 {
		t.Errorf("local cache not refreshed from profile, got %+v", cached)
	}
}

func TestResolve_StaleProfileFallsToGeolocation(t *testing.T) {
	store := cache.NewMemoryStore()
	profiles := &mockProfiles{
		findFunc: func(ctx context.Context, email string) (*model.UserProfile, error) {
			return &model.UserProfile{
				Email: email,
				Location: &model.LocationRecord{
					Latitude:    13.0827,
					Longitude:   80.2707,
					LastUpdated: time.Now().Add(-31 * time.Minute),
				},
			}, nil
		},
	}
	geolocator := &mockGeolocator{fix: geolocate.Fix{Latitude: 12.9716, Longitude: 77.5946, Accuracy: 20}}
	geocoder := &mockGeocoder{name: "Bengaluru"}
	resolver := newTestResolver(store, profiles, geolocator, geocoder)

	record, err := resolver.Resolve(context.Background(), DefaultResolveOptions("pat@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if geolocator.calls != 1 {
		t.Errorf("geolocator queried %d times, want 1", geolocator.calls)
	}
	if record.Latitude != 12.9716 || record.PlaceName != "Bengaluru" {
		t.Errorf("unexpected record: %+v", record)
	}
	if record.LastUpdated.IsZero() {
		t.Error("LastUpdated not stamped on fresh fix")
	}
	if profiles.updateLocationCalls != 1 {
		t.Errorf("profile location updated %d times, want 1", profiles.updateLocationCalls)
	}
}

func TestResolve_RemoteWriteFailureIsNotFatal(t *testing.T) {
	store := cache.NewMemoryStore()
	profiles := &mockProfiles{
		updateLocationFunc: func(ctx context.Context, email string, record *model.LocationRecord) error {
			return errors.New("write concern failure")
		},
	}
	geolocator := &mockGeolocator{fix: geolocate.Fix{Latitude: 9.9312, Longitude: 76.2673}}
	geocoder := &mockGeocoder{name: "Kochi"}
	resolver := newTestResolver(store, profiles, geolocator, geocoder)

	record, err := resolver.Resolve(context.Background(), DefaultResolveOptions("pat@example.com"))
	if err != nil {
		t.Fatalf("remote write failure must not fail the resolve: %v", err)
	}
	if record == nil || record.PlaceName != "Kochi" {
		t.Fatalf("expected in-hand record despite remote failure, got %+v", record)
	}

	if _, ok := store.Get("pat@example.com"); !ok {
		t.Error("local cache not written despite remote failure")
	}
}

func TestResolve_UnauthenticatedSkipsProfileTier(t *testing.T) {
	store := cache.NewMemoryStore()
	profiles := &mockProfiles{}
	geolocator := &mockGeolocator{fix: geolocate.Fix{Latitude: 1, Longitude: 2}}
	geocoder := &mockGeocoder{err: errors.New("no results")}
	resolver := newTestResolver(store, profiles, geolocator, geocoder)

	record, err := resolver.Resolve(context.Background(), DefaultResolveOptions(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profiles.findCalls != 0 {
		t.Errorf("profile store queried for anonymous caller %d times, want 0", profiles.findCalls)
	}
	if profiles.updateLocationCalls != 0 {
		t.Errorf("profile location written for anonymous caller %d times, want 0", profiles.updateLocationCalls)
	}
	// Geocoding failure leaves the name absent, not an error.
	if record.PlaceName != "" {
		t.Errorf("place name = %q, want empty on geocode failure", record.PlaceName)
	}
}

func TestResolve_GeolocationFailureReturnsError(t *testing.T) {
	store := cache.NewMemoryStore()
	profiles := &mockProfiles{}
	geolocator := &mockGeolocator{err: errors.New("permission denied")}
	geocoder := &mockGeocoder{}
	resolver := newTestResolver(store, profiles, geolocator, geocoder)

	var stages []Stage
	opts := DefaultResolveOptions("pat@example.com")
	opts.OnStage = func(s Stage) { stages = append(stages, s) }

	record, err := resolver.Resolve(context.Background(), opts)
	if record != nil {
		t.Errorf("expected nil record, got %+v", record)
	}
	if err == nil {
		t.Fatal("expected error when every tier fails")
	}
	if !apperrors.IsAppError(err) {
		t.Errorf("expected AppError, got %T", err)
	}
	if stages[len(stages)-1] != StageError {
		t.Errorf("stages = %v, want to end in error", stages)
	}
}

func TestResolve_AllTiersDisabled(t *testing.T) {
	resolver := newTestResolver(cache.NewMemoryStore(), &mockProfiles{}, &mockGeolocator{}, &mockGeocoder{})

	record, err := resolver.Resolve(context.Background(), ResolveOptions{Identity: "pat@example.com"})
	if record != nil || err == nil {
		t.Fatalf("expected (nil, error) with all tiers disabled, got (%+v, %v)", record, err)
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestSaveLocalStampsLastUpdated(t *testing.T) {
	store := cache.NewMemoryStore()
	resolver := newTestResolver(store, &mockProfiles{}, &mockGeolocator{}, &mockGeocoder{})

	resolver.SaveLocal("pat@example.com", &model.LocationRecord{Latitude: 1, Longitude: 2})

	record, ok := store.Get("pat@example.com")
	if !ok {
		t.Fatal("record not saved")
	}
	if record.LastUpdated.IsZero() {
		t.Error("LastUpdated not stamped")
	}
}

func TestClearLocalRemovesOnlyLocalCopy(t *testing.T) {
	store := cache.NewMemoryStore()
	profiles := &mockProfiles{}
	resolver := newTestResolver(store, profiles, &mockGeolocator{}, &mockGeocoder{})

	resolver.SaveLocal("pat@example.com", &model.LocationRecord{Latitude: 1, Longitude: 2})
	resolver.ClearLocal("pat@example.com")

	if _, ok := store.Get("pat@example.com"); ok {
		t.Error("local cache entry not cleared")
	}
	if profiles.updateLocationCalls != 0 {
		t.Errorf("remote profile touched %d times on clear, want 0", profiles.updateLocationCalls)
	}
}
