package model

import (
	"time"
)

// LocationRecord is the resolved position of a user. Copies live in two tiers:
// an in-memory cache slot and the `location` sub-document of the user profile.
// Both tiers are always overwritten wholesale (last writer wins), never merged
// field by field.
type LocationRecord struct {
	Latitude    float64   `json:"latitude" bson:"latitude" validate:"required,latitude"`
	Longitude   float64   `json:"longitude" bson:"longitude" validate:"required,longitude"`
	PlaceName   string    `json:"place_name,omitempty" bson:"place_name,omitempty"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
}

// Fresh reports whether the record was acquired less than maxAge ago.
// A stale record triggers re-acquisition, never an error.
func (r *LocationRecord) Fresh(now time.Time, maxAge time.Duration) bool {
	if r == nil || r.LastUpdated.IsZero() {
		return false
	}
	return now.Sub(r.LastUpdated) < maxAge
}
