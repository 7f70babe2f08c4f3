package model

import (
	"time"
)

// UserProfile is one document per user identity, keyed by email. The Location
// sub-document is the durable tier of the location resolver; when both the
// local cache and this copy exist, this copy is the source of truth.
type UserProfile struct {
	ID        string          `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string          `json:"email" bson:"email" validate:"required,email"`
	Name      string          `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone     string          `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Location  *LocationRecord `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}
