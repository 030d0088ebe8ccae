package engine

import (
	"testing"
	"time"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEasterSunday(t *testing.T) {
	// Known Western Easter dates
	tests := []struct {
		year int
		want time.Time
	}{
		{2024, date(2024, time.March, 31)},
		{2025, date(2025, time.April, 20)},
		{2026, date(2026, time.April, 5)},
		{2027, date(2027, time.March, 28)},
	}
	for _, tt := range tests {
		if got := easterSunday(tt.year); !got.Equal(tt.want) {
			t.Errorf("easterSunday(%d) = %s; want %s", tt.year, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestCurrentSeasonLiturgical(t *testing.T) {
	tests := []struct {
		d    time.Time
		want string
	}{
		{date(2026, time.December, 25), SeasonChristmas},
		{date(2027, time.January, 2), SeasonChristmas},  // Christmastide spills into January
		{date(2026, time.December, 10), SeasonAdvent},
		{date(2026, time.January, 20), SeasonEpiphany},
		{date(2026, time.March, 1), SeasonLent},    // Easter 2026 is Apr 5; Ash Wednesday Feb 18
		{date(2026, time.April, 10), SeasonEaster},
		{date(2026, time.May, 24), SeasonPentecost}, // Pentecost Sunday 2026
	}
	for _, tt := range tests {
		// Liturgical labels do not depend on hemisphere
		for _, hemi := range []Hemisphere{HemisphereNorth, HemisphereSouth} {
			if got := CurrentSeason(tt.d, hemi); got != tt.want {
				t.Errorf("CurrentSeason(%s, %s) = %s; want %s", tt.d.Format("2006-01-02"), hemi, got, tt.want)
			}
		}
	}
}

func TestCurrentSeasonHemisphereFlip(t *testing.T) {
	// Mid-July sits in ordinary time, so the natural season shows
	july := date(2026, time.July, 15)
	if got := CurrentSeason(july, HemisphereNorth); got != SeasonSummer {
		t.Errorf("July in the north = %s; want summer", got)
	}
	if got := CurrentSeason(july, HemisphereSouth); got != SeasonWinter {
		t.Errorf("July in the south = %s; want winter", got)
	}
}

func TestSeasonalTrendRanksSameSeasonUsage(t *testing.T) {
	cfg := DefaultConfig()

	songs := makeSongs(
		"Risen Indeed", "Mourn With Hope", "Every Sunday Song",
	)

	// "Risen Indeed" sung heavily in past northern springs, the
	// others scattered
	var usage []models.UsageRecord
	for _, d := range []time.Time{
		date(2024, time.April, 7), date(2024, time.April, 14), date(2025, time.April, 6),
		date(2025, time.May, 4),
	} {
		usage = append(usage, models.UsageRecord{SongID: songs[0].ID, UsedDate: d})
	}
	usage = append(usage,
		models.UsageRecord{SongID: songs[1].ID, UsedDate: date(2025, time.April, 13)},
		models.UsageRecord{SongID: songs[2].ID, UsedDate: date(2025, time.November, 2)}, // autumn, out of season
		models.UsageRecord{SongID: 999, UsedDate: date(2025, time.April, 20)},           // dangling reference
	)

	trend := SeasonalTrendFor(songs, usage, 4, HemisphereNorth, cfg)
	if trend.Season != SeasonSpring {
		t.Fatalf("season = %s; want spring", trend.Season)
	}
	if trend.LowConfidence {
		t.Fatal("five matching records should clear the confidence floor")
	}
	if len(trend.PopularSongs) != 2 {
		t.Fatalf("popular songs = %d; want 2 (out-of-season and dangling excluded)", len(trend.PopularSongs))
	}
	if trend.PopularSongs[0].Title != "Risen Indeed" || trend.PopularSongs[0].Count != 4 {
		t.Errorf("top song = %+v; want Risen Indeed with 4 uses", trend.PopularSongs[0])
	}
}

func TestSeasonalTrendDegradesGracefully(t *testing.T) {
	cfg := DefaultConfig() // needs 3 records

	songs := makeSongs("Lone Song")
	usage := []models.UsageRecord{
		{SongID: songs[0].ID, UsedDate: date(2025, time.July, 6)},
	}

	trend := SeasonalTrendFor(songs, usage, 7, HemisphereNorth, cfg)
	if !trend.LowConfidence {
		t.Error("one record should flag low confidence")
	}
	if len(trend.PopularSongs) != 0 {
		t.Errorf("popular songs should be empty, got %d", len(trend.PopularSongs))
	}
	if len(trend.SuggestedThemes) == 0 {
		t.Error("degraded trends still carry generic themes")
	}
}

// makeSongs builds a library with sequential IDs starting at 1.
func makeSongs(titles ...string) []models.Song {
	songs := make([]models.Song, len(titles))
	for i, title := range titles {
		songs[i] = models.Song{Title: title, IsActive: true}
		songs[i].ID = uint(i + 1)
	}
	return songs
}
