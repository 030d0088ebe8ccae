package snapshot

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

// DateRange bounds a usage window. From is inclusive, To exclusive.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// LastDays builds a window covering the N days up to now.
func LastDays(now time.Time, days int) DateRange {
	return DateRange{From: now.AddDate(0, 0, -days), To: now}
}

// Shift returns the window immediately preceding this one, with the
// same length. Used for comparative-period analysis.
func (r DateRange) Shift() DateRange {
	length := r.To.Sub(r.From)
	return DateRange{From: r.From.Add(-length), To: r.From}
}

// Snapshot is an immutable, church-scoped view of the data every
// analyzer runs against. Version doubles as a cache key: identical
// inputs under the same version are idempotent to recompute.
type Snapshot struct {
	Version  string               `json:"version"`
	TakenAt  time.Time            `json:"taken_at"`
	ChurchID uint                 `json:"church_id"`
	Window   DateRange            `json:"window"`
	Songs    []models.Song        `json:"songs"`
	Usage    []models.UsageRecord `json:"usage"`
	Services []models.Service     `json:"services"`
}

// Provider supplies read-only, already-scoped snapshots. The engine
// never fetches data itself; everything flows through here.
type Provider interface {
	Songs(churchID uint) ([]models.Song, error)
	Usage(churchID uint, window DateRange) ([]models.UsageRecord, error)
	Services(churchID uint, window DateRange) ([]models.Service, error)
	Take(churchID uint, window DateRange) (*Snapshot, error)
}

// Store is the gorm-backed Provider.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Songs returns the church's active library.
func (s *Store) Songs(churchID uint) ([]models.Song, error) {
	var songs []models.Song
	err := s.db.
		Where("church_id = ?", churchID).
		Order("title ASC").
		Find(&songs).Error
	if err != nil {
		return nil, fmt.Errorf("loading songs for church %d: %w", churchID, err)
	}
	return songs, nil
}

// Usage returns the window's usage records. Only completed services
// count toward analytics, so drafts are filtered out at the join.
func (s *Store) Usage(churchID uint, window DateRange) ([]models.UsageRecord, error) {
	var usage []models.UsageRecord
	err := s.db.
		Joins("JOIN services ON services.id = usage_records.service_id AND services.status = ?", models.ServiceCompleted).
		Where("usage_records.church_id = ?", churchID).
		Where("usage_records.used_date >= ? AND usage_records.used_date < ?", window.From, window.To).
		Order("usage_records.used_date ASC").
		Find(&usage).Error
	if err != nil {
		return nil, fmt.Errorf("loading usage for church %d: %w", churchID, err)
	}
	return usage, nil
}

// Services returns the window's services, drafts included. A caller
// deciding what counts filters on status itself.
func (s *Store) Services(churchID uint, window DateRange) ([]models.Service, error) {
	var services []models.Service
	err := s.db.
		Where("church_id = ?", churchID).
		Where("service_date >= ? AND service_date < ?", window.From, window.To).
		Order("service_date ASC").
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("loading services for church %d: %w", churchID, err)
	}
	return services, nil
}

// Take materializes one consistent snapshot for an analysis call.
func (s *Store) Take(churchID uint, window DateRange) (*Snapshot, error) {
	songs, err := s.Songs(churchID)
	if err != nil {
		return nil, err
	}
	usage, err := s.Usage(churchID, window)
	if err != nil {
		return nil, err
	}
	services, err := s.Services(churchID, window)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Version:  uuid.NewString(),
		TakenAt:  time.Now(),
		ChurchID: churchID,
		Window:   window,
		Songs:    songs,
		Usage:    usage,
		Services: services,
	}, nil
}
