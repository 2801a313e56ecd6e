package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Realization is a portfolio entry: photos and details of a past event
// furnished with products from the catalog.
type Realization struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `json:"description,omitempty"`
	EventType   string `gorm:"index" json:"eventType,omitempty"`
	EventDate   *time.Time `json:"eventDate,omitempty"`
	Location    string `json:"location,omitempty"`

	CoverImage string                      `json:"coverImage,omitempty"`
	Gallery    datatypes.JSONSlice[string] `json:"gallery,omitempty"`
	ProductIDs datatypes.JSONSlice[string] `json:"productIds,omitempty"`

	Published bool `gorm:"default:false" json:"published"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Realization) TableName() string { return "realizations" }
