package service

import (
	"context"
	"errors"
	"time"

	"github.com/anshif14/petzify-sub001/internal/locations/cache"
	"github.com/anshif14/petzify-sub001/internal/locations/geocode"
	"github.com/anshif14/petzify-sub001/internal/locations/geolocate"
	usererrors "github.com/anshif14/petzify-sub001/internal/users/errors"
	usersrepo "github.com/anshif14/petzify-sub001/internal/users/repository"
	"github.com/anshif14/petzify-sub001/pkg/config"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

// Stage identifies a step of the resolve sequence for progress reporting.
// The sequence is linear: checking → [checking-database] → [getting-location
// → getting-location-name → saving-to-database] → success | error.
type Stage string

const (
	StageChecking            Stage = "checking"
	StageCheckingDatabase    Stage = "checking-database"
	StageGettingLocation     Stage = "getting-location"
	StageGettingLocationName Stage = "getting-location-name"
	StageSavingToDatabase    Stage = "saving-to-database"
	StageSuccess             Stage = "success"
	StageError               Stage = "error"
)

// ResolveOptions selects the tiers to consult. Identity is the caller's
// email, empty for unauthenticated callers; the remote profile tier is
// skipped without it.
type ResolveOptions struct {
	Identity         string
	UseLocalCache    bool
	UseRemoteProfile bool
	UseGeolocation   bool
	OnStage          func(Stage)
}

// DefaultResolveOptions enables all three tiers.
func DefaultResolveOptions(identity string) ResolveOptions {
	return ResolveOptions{
		Identity:         identity,
		UseLocalCache:    true,
		UseRemoteProfile: true,
		UseGeolocation:   true,
	}
}

// LocationResolver produces the best-available location record for a caller
// with minimal redundant API use, keeping the cache tiers eventually
// consistent. Tiers are consulted in priority order and the first fresh hit
// short-circuits the rest.
type LocationResolver interface {
	Resolve(ctx context.Context, opts ResolveOptions) (*model.LocationRecord, error)
	SaveLocal(identity string, record *model.LocationRecord)
	ClearLocal(identity string)
}

type locationResolver struct {
	cache      cache.Store
	profiles   usersrepo.UserProfileRepository
	geolocator geolocate.Geolocator
	geocoder   geocode.Geocoder
	cfg        *config.Config
}

func NewLocationResolver(
	store cache.Store,
	profiles usersrepo.UserProfileRepository,
	geolocator geolocate.Geolocator,
	geocoder geocode.Geocoder,
	cfg *config.Config,
) LocationResolver {
	return &locationResolver{
		cache:      store,
		profiles:   profiles,
		geolocator: geolocator,
		geocoder:   geocoder,
		cfg:        cfg,
	}
}

func (s *locationResolver) Resolve(ctx context.Context, opts ResolveOptions) (*model.LocationRecord, error) {
	emit := func(stage Stage) {
		if opts.OnStage != nil {
			opts.OnStage(stage)
		}
	}

	emit(StageChecking)
	now := time.Now()

	// Tier 1: local cache.
	if opts.UseLocalCache {
		if record, ok := s.cache.Get(opts.Identity); ok && record.Fresh(now, s.cfg.LocationMaxAge) {
			s.cfg.Log.Debug("Location resolved from local cache", "identity", opts.Identity)
			emit(StageSuccess)
			return record, nil
		}
	}

	// Tier 2: remote profile, authenticated callers only.
	if opts.UseRemoteProfile && opts.Identity != "" {
		emit(StageCheckingDatabase)
		if record := s.resolveFromProfile(ctx, opts.Identity, now, emit); record != nil {
			emit(StageSuccess)
			return record, nil
		}
	}

	// Tier 3: a fresh device fix.
	if opts.UseGeolocation {
		record, err := s.resolveFromGeolocation(ctx, opts.Identity, now, emit)
		if err == nil {
			emit(StageSuccess)
			return record, nil
		}

		s.cfg.Log.Warn("Geolocation tier failed", "identity", opts.Identity, "error", err)
		emit(StageError)
		appErr := apperrors.Unavailable("Location resolution")
		appErr.Err = err
		return nil, appErr
	}

	emit(StageError)
	s.cfg.Log.Info("No location tier produced a result", "identity", opts.Identity)
	return nil, apperrors.NotFound("Location")
}

func (s *locationResolver) resolveFromProfile(ctx context.Context, identity string, now time.Time, emit func(Stage)) *model.LocationRecord {
	profile, err := s.profiles.FindByEmail(ctx, identity)
	if err != nil {
		if !errors.Is(err, usererrors.ErrNotFound) {
			s.cfg.Log.Warn("Failed to read user profile, falling through", "identity", identity, "error", err)
		}
		return nil
	}

	if !profile.Location.Fresh(now, s.cfg.LocationMaxAge) {
		return nil
	}

	// Stored records may carry coordinates without a name; refresh it.
	record := *profile.Location
	emit(StageGettingLocationName)
	if name, err := s.geocoder.PlaceName(ctx, record.Latitude, record.Longitude); err == nil {
		record.PlaceName = name
	} else {
		s.cfg.Log.Debug("Reverse geocode unavailable, keeping stored name",
			"identity", identity, "error", err)
	}

	s.cache.Put(identity, &record)
	s.cfg.Log.Debug("Location resolved from user profile", "identity", identity)
	return &record
}

func (s *locationResolver) resolveFromGeolocation(ctx context.Context, identity string, now time.Time, emit func(Stage)) (*model.LocationRecord, error) {
	emit(StageGettingLocation)
	fix, err := s.geolocator.CurrentPosition(ctx)
	if err != nil {
		return nil, err
	}

	record := &model.LocationRecord{
		Latitude:    fix.Latitude,
		Longitude:   fix.Longitude,
		LastUpdated: now,
	}

	emit(StageGettingLocationName)
	if name, err := s.geocoder.PlaceName(ctx, record.Latitude, record.Longitude); err == nil {
		record.PlaceName = name
	} else {
		s.cfg.Log.Debug("No place name for fresh fix", "identity", identity, "error", err)
	}

	s.cache.Put(identity, record)

	// The remote write is best-effort: the in-hand result is returned and
	// cached locally even when the durable copy cannot be updated.
	if identity != "" {
		emit(StageSavingToDatabase)
		if err := s.profiles.UpdateLocation(ctx, identity, record); err != nil {
			s.cfg.Log.Warn("Failed to persist location to user profile",
				"identity", identity, "error", err)
		}
	}

	s.cfg.Log.Info("Location resolved from device fix",
		"identity", identity,
		"place_name", record.PlaceName,
		"accuracy_m", fix.Accuracy,
	)
	return record, nil
}

// SaveLocal overwrites the identity's cache slot. Idempotent; LastUpdated is
// stamped when absent. The remote profile copy is not touched.
func (s *locationResolver) SaveLocal(identity string, record *model.LocationRecord) {
	s.cache.Put(identity, record)
}

// ClearLocal removes the identity's cache slot unconditionally (logout).
// The remote profile copy is not touched.
func (s *locationResolver) ClearLocal(identity string) {
	s.cache.Delete(identity)
}
