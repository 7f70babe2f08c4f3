package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	usererrors "github.com/anshif14/petzify-sub001/internal/users/errors"
	"github.com/anshif14/petzify-sub001/internal/users/repository"
	"github.com/anshif14/petzify-sub001/pkg/config"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type UserProfileService interface {
	GetByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	Upsert(ctx context.Context, profile *model.UserProfile) error
	// UpdateLocation overwrites the profile's stored location wholesale. The
	// last writer wins; there is no merging of location fields.
	UpdateLocation(ctx context.Context, email string, record *model.LocationRecord) error
}

type userProfileService struct {
	repo     repository.UserProfileRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewUserProfileService(repo repository.UserProfileRepository, cfg *config.Config) UserProfileService {
	return &userProfileService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *userProfileService) GetByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	profile, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User profile", email)
		}
		return nil, apperrors.Internal("Failed to retrieve user profile", err)
	}

	return profile, nil
}

func (s *userProfileService) Upsert(ctx context.Context, profile *model.UserProfile) error {
	if err := s.validate.Struct(profile); err != nil {
		s.cfg.Log.Warn("User profile validation failed", "error", err)
		return apperrors.Validation("User profile validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		s.cfg.Log.Error("Failed to upsert user profile", "email", profile.Email, "error", err)
		return apperrors.Internal("Failed to save user profile", err)
	}

	s.cfg.Log.Info("User profile saved", "email", profile.Email)
	return nil
}

func (s *userProfileService) UpdateLocation(ctx context.Context, email string, record *model.LocationRecord) error {
	if email == "" {
		return apperrors.InvalidInput("Email cannot be empty")
	}
	if record == nil {
		return apperrors.InvalidInput("Location record cannot be empty")
	}

	if err := s.repo.UpdateLocation(ctx, email, record); err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User profile", email)
		}
		s.cfg.Log.Error("Failed to update user location", "email", email, "error", err)
		return apperrors.Internal("Failed to update user location", err)
	}

	s.cfg.Log.Info("User location updated",
		"email", email,
		"place_name", record.PlaceName,
	)
	return nil
}
