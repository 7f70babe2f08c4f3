package model

import (
	"time"
)

// Pet is a pet record owned by a user, keyed by the owner's email.
type Pet struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerEmail string    `json:"owner_email" bson:"owner_email" validate:"required,email"`
	Name       string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Species    string    `json:"species" bson:"species" validate:"required,oneof=dog cat bird rabbit other"`
	Breed      string    `json:"breed,omitempty" bson:"breed,omitempty" validate:"omitempty,max=100"`
	AgeMonths  int       `json:"age_months,omitempty" bson:"age_months,omitempty" validate:"omitempty,min=0,max=600"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type PetUpdate struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Species   string `json:"species,omitempty" validate:"omitempty,oneof=dog cat bird rabbit other"`
	Breed     string `json:"breed,omitempty" validate:"omitempty,max=100"`
	AgeMonths *int   `json:"age_months,omitempty" validate:"omitempty,min=0,max=600"`
	Notes     string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
