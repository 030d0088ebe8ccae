package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Song represents one entry in a church's song library
type Song struct {
	gorm.Model

	ChurchID uint `gorm:"index;not null" json:"church_id"`

	// Core Metadata
	Title  string `gorm:"index;not null" json:"title"`
	Artist string `gorm:"index" json:"artist"`

	// Musical
	KeySignature string `gorm:"size:10" json:"key_signature"` // e.g. "C", "F#m", "Bb"
	TempoBPM     int    `gorm:"index" json:"tempo_bpm"`       // 60-200; 0 = unknown

	// Themes
	Tags string `gorm:"index" json:"tags"` // Comma-separated: "grace,communion,easter"

	// Library Logic
	IsActive bool `gorm:"default:true" json:"is_active"`
}

// TagList splits the comma-separated Tags column into a slice.
func (s Song) TagList() []string {
	if s.Tags == "" {
		return nil
	}
	parts := strings.Split(s.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// HasTempo reports whether the song carries a usable BPM value.
// Songs without one are excluded from tempo analytics rather than
// defaulted, so they never skew balance ratios.
func (s Song) HasTempo() bool {
	return s.TempoBPM > 0
}

// UsageRecord records every time a song was used in a service.
// Append-only: records survive song deletion so history stays intact.
type UsageRecord struct {
	gorm.Model

	ChurchID  uint `gorm:"index;not null" json:"church_id"`
	SongID    uint `gorm:"index" json:"song_id"`
	ServiceID uint `gorm:"index" json:"service_id"`

	UsedDate time.Time `gorm:"index" json:"used_date"`
	UsedKey  string    `gorm:"size:10" json:"used_key"` // Optional override of the song's default key
	Position int       `json:"position"`                // 1-based slot in the service

	WorshipLeader string `gorm:"index" json:"worship_leader"`
	ServiceType   string `gorm:"index" json:"service_type"` // e.g. "Sunday Morning", "Wednesday Night"
}
