package models

import (
	"time"

	"github.com/lib/pq"
)

// Video is a cached entry of the owner's external video catalog. Rows are
// refreshed wholesale by the periodic catalog job and only read elsewhere.
type Video struct {
	ID          string         `gorm:"primaryKey" json:"id"` // catalog-assigned id
	Title       string         `gorm:"not null" json:"title"`
	URL         string         `gorm:"not null" json:"url"`
	Description string         `gorm:"type:text" json:"description"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	ViewCount   int64          `json:"view_count"`
	PublishedAt time.Time      `json:"published_at"`
	RefreshedAt time.Time      `json:"refreshed_at"`
}
