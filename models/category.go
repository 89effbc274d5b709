package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID  `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Slug      string     `json:"slug" bson:"slug"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Image     string     `json:"image,omitempty" bson:"image,omitempty"`
	IsActive  bool       `json:"is_active" bson:"is_active"`
	SortOrder int        `json:"sort_order" bson:"sort_order"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}
