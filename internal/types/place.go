package types

import (
	"time"

	"github.com/google/uuid"
)

// Place is a user-created location record. Address, Lat/Lng, ImageKey and
// CreatorID are immutable after creation; only Title and Description can
// be edited, and only by the creator.
type Place struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"not null;column:description" json:"description"`
	Address     string    `gorm:"not null;column:address" json:"address"`
	Lat         float64   `gorm:"not null;column:lat" json:"lat"`
	Lng         float64   `gorm:"not null;column:lng" json:"lng"`
	ImageKey    string    `gorm:"column:image_key" json:"-"`
	ImageURL    string    `gorm:"column:image_url" json:"image"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index;column:creator_id" json:"creator"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Place) TableName() string {
	return "place"
}
