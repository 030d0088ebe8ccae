package snapshot

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

// setupInMemoryDB creates a throwaway DB for testing
func setupInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Song{}, &models.Service{}, &models.ServiceSong{}, &models.UsageRecord{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func TestStoreScopesByChurch(t *testing.T) {
	db := setupInMemoryDB(t)

	ours := models.Song{ChurchID: 1, Title: "Ours", IsActive: true}
	theirs := models.Song{ChurchID: 2, Title: "Theirs", IsActive: true}
	db.Create(&ours)
	db.Create(&theirs)

	store := NewStore(db)
	songs, err := store.Songs(1)
	if err != nil {
		t.Fatalf("Songs failed: %v", err)
	}
	if len(songs) != 1 || songs[0].Title != "Ours" {
		t.Errorf("got %+v; want only church 1's song", songs)
	}
}

func TestStoreUsageExcludesDraftServices(t *testing.T) {
	db := setupInMemoryDB(t)
	now := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)

	completed := models.Service{ChurchID: 1, ServiceDate: now.AddDate(0, 0, -7), Status: models.ServiceCompleted}
	draft := models.Service{ChurchID: 1, ServiceDate: now.AddDate(0, 0, -3), Status: models.ServiceDraft}
	db.Create(&completed)
	db.Create(&draft)

	db.Create(&models.UsageRecord{ChurchID: 1, SongID: 1, ServiceID: completed.ID, UsedDate: completed.ServiceDate})
	db.Create(&models.UsageRecord{ChurchID: 1, SongID: 2, ServiceID: draft.ID, UsedDate: draft.ServiceDate})

	store := NewStore(db)
	usage, err := store.Usage(1, LastDays(now, 30))
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if len(usage) != 1 || usage[0].SongID != 1 {
		t.Errorf("only usage from completed services should count, got %+v", usage)
	}
}

func TestStoreWindowBounds(t *testing.T) {
	db := setupInMemoryDB(t)
	now := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)

	svc := models.Service{ChurchID: 1, ServiceDate: now.AddDate(0, 0, -60), Status: models.ServiceCompleted}
	db.Create(&svc)
	db.Create(&models.UsageRecord{ChurchID: 1, SongID: 1, ServiceID: svc.ID, UsedDate: now.AddDate(0, 0, -60)})

	store := NewStore(db)
	inWindow, err := store.Usage(1, LastDays(now, 90))
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if len(inWindow) != 1 {
		t.Errorf("record 60 days old should be inside a 90-day window")
	}

	outOfWindow, err := store.Usage(1, LastDays(now, 30))
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if len(outOfWindow) != 0 {
		t.Errorf("record 60 days old should be outside a 30-day window")
	}
}

func TestTakeProducesVersionedSnapshot(t *testing.T) {
	db := setupInMemoryDB(t)
	store := NewStore(db)

	a, err := store.Take(1, LastDays(time.Now(), 90))
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	b, _ := store.Take(1, LastDays(time.Now(), 90))
	if a.Version == "" || a.Version == b.Version {
		t.Error("each snapshot should carry a distinct version token")
	}
}

func TestShiftWindow(t *testing.T) {
	now := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)
	cur := LastDays(now, 30)
	prev := cur.Shift()

	if !prev.To.Equal(cur.From) {
		t.Errorf("previous window should end where current begins")
	}
	if prev.To.Sub(prev.From) != cur.To.Sub(cur.From) {
		t.Errorf("shifted window should keep its length")
	}
}
