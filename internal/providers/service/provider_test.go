package service

import (
	"context"
	"testing"
	"time"

	"github.com/anshif14/petzify-sub001/pkg/config"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type mockProviderRepository struct {
	findByServiceFunc func(ctx context.Context, serviceType string, limit int) ([]*model.Provider, error)
}

func (m *mockProviderRepository) Create(ctx context.Context, provider *model.Provider) error {
	return nil
}

func (m *mockProviderRepository) FindByID(ctx context.Context, id string) (*model.Provider, error) {
	return nil, nil
}

func (m *mockProviderRepository) FindByService(ctx context.Context, serviceType string, limit int) ([]*model.Provider, error) {
	if m.findByServiceFunc != nil {
		return m.findByServiceFunc(ctx, serviceType, limit)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ReadTimeout: 5 * time.Second,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func TestNearby_RanksByDistance(t *testing.T) {
	repo := &mockProviderRepository{
		findByServiceFunc: func(ctx context.Context, serviceType string, limit int) ([]*model.Provider, error) {
			return []*model.Provider{
				{Name: "Chennai Groomers", Latitude: 13.0827, Longitude: 80.2707},
				{Name: "Koramangala Pets", Latitude: 12.9352, Longitude: 77.6245},
				{Name: "Mysuru Boarding", Latitude: 12.2958, Longitude: 76.6394},
			}, nil
		},
	}
	svc := NewProviderService(repo, testConfig())

	// Rank from central Bengaluru.
	ranked, err := svc.Nearby(context.Background(), 12.9716, 77.5946, "grooming", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranked) != 3 {
		t.Fatalf("got %d providers, want 3", len(ranked))
	}
	if ranked[0].Name != "Koramangala Pets" {
		t.Errorf("closest = %s, want Koramangala Pets", ranked[0].Name)
	}
	if ranked[2].Name != "Chennai Groomers" {
		t.Errorf("farthest = %s, want Chennai Groomers", ranked[2].Name)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].DistanceKm < ranked[i-1].DistanceKm {
			t.Errorf("ranking not sorted at %d: %v < %v", i, ranked[i].DistanceKm, ranked[i-1].DistanceKm)
		}
	}
}

func TestNearby_AppliesLimit(t *testing.T) {
	repo := &mockProviderRepository{
		findByServiceFunc: func(ctx context.Context, serviceType string, limit int) ([]*model.Provider, error) {
			return []*model.Provider{
				{Name: "A", Latitude: 1, Longitude: 1},
				{Name: "B", Latitude: 2, Longitude: 2},
				{Name: "C", Latitude: 3, Longitude: 3},
			}, nil
		},
	}
	svc := NewProviderService(repo, testConfig())

	ranked, err := svc.Nearby(context.Background(), 0, 0, "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 2 {
		t.Errorf("got %d providers, want 2", len(ranked))
	}
}

func TestNearby_RejectsOutOfRangeCoordinates(t *testing.T) {
	svc := NewProviderService(&mockProviderRepository{}, testConfig())

	_, err := svc.Nearby(context.Background(), 91, 0, "grooming", 10)
	if err == nil {
		t.Fatal("expected error for out-of-range latitude")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("error code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeInvalidInput)
	}
}
