package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/anshif14/petzify-sub001/internal/providers/repository"
	"github.com/anshif14/petzify-sub001/pkg/config"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/geo"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

// Fetch enough candidates that ranking by distance stays meaningful even
// when callers ask for a short list.
const candidatePoolSize = 200

type ProviderService interface {
	Create(ctx context.Context, provider *model.Provider) error
	// Nearby returns providers offering serviceType ranked by great-circle
	// distance from the given point, closest first.
	Nearby(ctx context.Context, lat, lng float64, serviceType string, limit int) ([]*model.RankedProvider, error)
}

type providerService struct {
	repo     repository.ProviderRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewProviderService(repo repository.ProviderRepository, cfg *config.Config) ProviderService {
	return &providerService{repo: repo, validate: validator.New(), cfg: cfg}
}

func (s *providerService) Create(ctx context.Context, provider *model.Provider) error {
	if err := s.validate.Struct(provider); err != nil {
		s.cfg.Log.Warn("Provider validation failed", "error", err)
		return apperrors.Validation("Provider validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, provider); err != nil {
		s.cfg.Log.Error("Failed to create provider", "error", err)
		return apperrors.Internal("Failed to create provider", err)
	}

	s.cfg.Log.Info("Provider created", "id", provider.ID, "name", provider.Name)
	return nil
}

func (s *providerService) Nearby(ctx context.Context, lat, lng float64, serviceType string, limit int) ([]*model.RankedProvider, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, apperrors.InvalidInput("Coordinates out of range")
	}
	limit = config.NormalizePaginationLimit(limit)

	providers, err := s.repo.FindByService(ctx, serviceType, candidatePoolSize)
	if err != nil {
		s.cfg.Log.Error("Failed to list providers", "service_type", serviceType, "error", err)
		return nil, apperrors.Internal("Failed to retrieve providers", err)
	}

	ranked := make([]*model.RankedProvider, 0, len(providers))
	for _, p := range providers {
		ranked = append(ranked, &model.RankedProvider{
			Provider:   *p,
			DistanceKm: geo.DistanceKm(lat, lng, p.Latitude, p.Longitude),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.cfg.Log.Debug("Providers ranked by proximity",
		"service_type", serviceType,
		"count", len(ranked),
	)
	return ranked, nil
}
