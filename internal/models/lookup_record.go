package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LookupRecord is one entry in a user's lookup history. Records are
// immutable after creation; deletion always goes through the owner-scoped
// bulk delete, and removing a user cascades to their records.
type LookupRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IP        string         `gorm:"size:45;not null" json:"ip"`
	GeoData   datatypes.JSON `gorm:"type:jsonb;not null" json:"geo_data"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
