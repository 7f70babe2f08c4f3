package model

import (
	"time"
)

// Provider is a pet-service business (groomer, boarder, transporter) with a
// fixed position used for proximity ranking.
type Provider struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Services  []string  `json:"services" bson:"services" validate:"required,min=1,dive,oneof=grooming boarding transport"`
	Latitude  float64   `json:"latitude" bson:"latitude" validate:"required,latitude"`
	Longitude float64   `json:"longitude" bson:"longitude" validate:"required,longitude"`
	City      string    `json:"city,omitempty" bson:"city,omitempty" validate:"omitempty,max=100"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// RankedProvider is a provider annotated with its distance from a resolved
// location, in kilometers.
type RankedProvider struct {
	Provider   `bson:",inline"`
	DistanceKm float64 `json:"distance_km" bson:"-"`
}
