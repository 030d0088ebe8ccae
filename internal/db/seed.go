package database

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

// SeedDemoLibrary populates an empty install with a small worship
// library so the analytics endpoints have something to chew on.
// Titles upsert by name, so reseeding on restart is harmless.
func SeedDemoLibrary(db *gorm.DB, churchID uint) {
	songs := []models.Song{
		// --- UPBEAT OPENERS ---
		{ChurchID: churchID, Title: "Great Is the Welcome", Artist: "Northside Collective", KeySignature: "G", TempoBPM: 128, Tags: "praise,joy,celebration", IsActive: true},
		{ChurchID: churchID, Title: "Lift the Roof", Artist: "Harbour Music", KeySignature: "A", TempoBPM: 134, Tags: "praise,freedom", IsActive: true},
		{ChurchID: churchID, Title: "Morning Mercies", Artist: "Eastgate Worship", KeySignature: "D", TempoBPM: 122, Tags: "hope,new life", IsActive: true},

		// --- MID-TEMPO ---
		{ChurchID: churchID, Title: "Anchor of Grace", Artist: "Harbour Music", KeySignature: "C", TempoBPM: 100, Tags: "grace,faithfulness", IsActive: true},
		{ChurchID: churchID, Title: "Fields of Harvest", Artist: "Kate Soren", KeySignature: "F", TempoBPM: 96, Tags: "harvest,thanksgiving", IsActive: true},
		{ChurchID: churchID, Title: "Emmanuel With Us", Artist: "Northside Collective", KeySignature: "Bb", TempoBPM: 88, Tags: "incarnation,emmanuel,hope", IsActive: true},

		// --- REFLECTIVE ---
		{ChurchID: churchID, Title: "Quiet Waters", Artist: "Kate Soren", KeySignature: "Em", TempoBPM: 68, Tags: "comfort,refuge", IsActive: true},
		{ChurchID: churchID, Title: "At the Cross I Bow", Artist: "Eastgate Worship", KeySignature: "Am", TempoBPM: 72, Tags: "the cross,surrender,mercy", IsActive: true},
		{ChurchID: churchID, Title: "Risen Light", Artist: "Harbour Music", KeySignature: "E", TempoBPM: 76, Tags: "resurrection,victory,new life", IsActive: true},
	}

	log.Printf("🌱 Seeding %d songs...", len(songs))
	for i := range songs {
		// UPSERT based on 'Title' to prevent duplicates on restart
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoNothing: true,
		}).Create(&songs[i])
	}

	seedHistory(db, churchID, songs)
}

// seedHistory backfills a few months of completed services so the
// rotation and seasonal analyzers produce non-degenerate output.
func seedHistory(db *gorm.DB, churchID uint, songs []models.Song) {
	var existing int64
	db.Model(&models.Service{}).Where("church_id = ?", churchID).Count(&existing)
	if existing > 0 {
		return
	}

	now := time.Now().UTC()
	log.Println("🌱 Seeding demo service history...")

	// One Sunday service a week for the past 16 weeks, rotating
	// through the library four songs at a time
	for week := 16; week >= 1; week-- {
		serviceDate := now.AddDate(0, 0, -7*week)
		svc := models.Service{
			ChurchID:        churchID,
			ServiceDate:     serviceDate,
			ServiceType:     "Sunday Morning",
			Status:          models.ServiceCompleted,
			DurationSeconds: 4200 + (week%3)*300,
		}
		if err := db.Create(&svc).Error; err != nil {
			log.Printf("⚠️ Seeding service failed: %v", err)
			continue
		}

		for pos := 0; pos < 4; pos++ {
			song := songs[(week*3+pos)%len(songs)]
			db.Create(&models.ServiceSong{ServiceID: svc.ID, SongID: song.ID, SortOrder: pos + 1})
			db.Create(&models.UsageRecord{
				ChurchID:      churchID,
				SongID:        song.ID,
				ServiceID:     svc.ID,
				UsedDate:      serviceDate,
				Position:      pos + 1,
				WorshipLeader: "demo",
				ServiceType:   svc.ServiceType,
			})
		}
	}
}
