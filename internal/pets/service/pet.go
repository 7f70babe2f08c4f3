package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	peterrors "github.com/anshif14/petzify-sub001/internal/pets/errors"
	"github.com/anshif14/petzify-sub001/internal/pets/repository"
	"github.com/anshif14/petzify-sub001/pkg/config"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type PetService interface {
	Create(ctx context.Context, pet *model.Pet) error
	GetByID(ctx context.Context, id string) (*model.Pet, error)
	GetByOwner(ctx context.Context, ownerEmail string) ([]*model.Pet, error)
	Update(ctx context.Context, id string, updates *model.PetUpdate) error
	Delete(ctx context.Context, id string) error
}

type petService struct {
	repo     repository.PetRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewPetService(repo repository.PetRepository, cfg *config.Config) PetService {
	return &petService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *petService) Create(ctx context.Context, pet *model.Pet) error {
	if err := s.validate.Struct(pet); err != nil {
		s.cfg.Log.Warn("Pet validation failed", "error", err)
		return apperrors.Validation("Pet validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, pet); err != nil {
		s.cfg.Log.Error("Failed to create pet", "error", err)
		return apperrors.Internal("Failed to create pet", err)
	}

	s.cfg.Log.Info("Pet created successfully",
		"id", pet.ID,
		"owner_email", pet.OwnerEmail,
		"species", pet.Species,
	)
	return nil
}

func (s *petService) GetByID(ctx context.Context, id string) (*model.Pet, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Pet ID cannot be empty")
	}

	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, peterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Pet", id)
		}
		if errors.Is(err, peterrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid pet ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve pet", err)
	}

	return pet, nil
}

func (s *petService) GetByOwner(ctx context.Context, ownerEmail string) ([]*model.Pet, error) {
	if ownerEmail == "" {
		return nil, apperrors.InvalidInput("Owner email cannot be empty")
	}

	pets, err := s.repo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		s.cfg.Log.Error("Failed to list pets", "owner_email", ownerEmail, "error", err)
		return nil, apperrors.Internal("Failed to retrieve pets", err)
	}

	return pets, nil
}

func (s *petService) Update(ctx context.Context, id string, updates *model.PetUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Pet ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, peterrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Pet", id)
		}
		if errors.Is(err, peterrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid pet ID format")
		}
		return apperrors.Internal("Failed to check pet existence", err)
	}

	if err := s.validate.Struct(updates); err != nil {
		s.cfg.Log.Warn("Pet update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := mergePetUpdates(existing, updates)
	if err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update pet", "id", id, "error", err)
		return apperrors.Internal("Failed to update pet", err)
	}

	s.cfg.Log.Info("Pet updated successfully", "id", id)
	return nil
}

func (s *petService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Pet ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, peterrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Pet", id)
		}
		if errors.Is(err, peterrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid pet ID format")
		}
		return apperrors.Internal("Failed to delete pet", err)
	}

	s.cfg.Log.Info("Pet deleted successfully", "id", id)
	return nil
}

func mergePetUpdates(existing *model.Pet, updates *model.PetUpdate) *model.Pet {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Species != "" {
		merged.Species = updates.Species
	}
	if updates.Breed != "" {
		merged.Breed = updates.Breed
	}
	if updates.AgeMonths != nil {
		merged.AgeMonths = *updates.AgeMonths
	}
	if updates.Notes != "" {
		merged.Notes = updates.Notes
	}

	return &merged
}
