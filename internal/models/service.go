package models

import (
	"time"

	"gorm.io/gorm"
)

// Service statuses. Only completed services feed usage analytics.
const (
	ServiceDraft     = "draft"
	ServiceCompleted = "completed"
)

// Service represents a planned or completed worship service
type Service struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ChurchID uint `gorm:"index;not null" json:"church_id"`

	ServiceDate time.Time `gorm:"index;not null" json:"service_date"`
	ServiceType string    `gorm:"index" json:"service_type"`
	Status      string    `gorm:"default:'draft'" json:"status"`

	DurationSeconds int `json:"duration_seconds"`

	Songs []Song `json:"songs" gorm:"many2many:service_songs;"`
}

// ServiceSong is the join table that stores the order of songs in a
// service plus any per-service key/tempo overrides.
type ServiceSong struct {
	ServiceID uint `gorm:"primaryKey" json:"service_id"`
	SongID    uint `gorm:"primaryKey" json:"song_id"`
	SortOrder int  `json:"sort_order"`

	KeyOverride   string `gorm:"size:10" json:"key_override"`
	TempoOverride int    `json:"tempo_override"`
}

// IsCompleted reports whether this service should count toward
// usage-derived analytics.
func (s Service) IsCompleted() bool {
	return s.Status == ServiceCompleted
}
