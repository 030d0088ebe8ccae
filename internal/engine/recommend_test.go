package engine

import (
	"sort"
	"strings"
	"testing"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

func TestRecommendLimit(t *testing.T) {
	cfg := DefaultConfig()

	// Ten qualifying songs, each rested a different number of days so
	// scores are distinct
	var songs []models.Song
	var usage []models.UsageRecord
	for i := 0; i < 10; i++ {
		s := songWith("Song", "C", 100)
		s.ID = uint(i + 1)
		s.Title = string(rune('A'+i)) + " Song"
		songs = append(songs, s)
		usage = append(usage, usedDaysAgo(s.ID, 20+i*10))
	}

	recs, warnings, err := Recommend(songs, usage, testNow, HemisphereNorth, Filters{Limit: 3}, cfg)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(recs) != 3 {
		t.Fatalf("limit 3 on 10 qualifying songs returned %d", len(recs))
	}
	if !sort.SliceIsSorted(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score }) {
		t.Error("results must be in descending score order")
	}
	// The most-rested songs score highest
	if recs[0].Title != "J Song" {
		t.Errorf("top recommendation = %q; want the longest-rested song", recs[0].Title)
	}
}

func TestRecommendDeterministicTieBreak(t *testing.T) {
	cfg := DefaultConfig()

	// Two never-used songs tie exactly; title ascending breaks it
	songs := makeSongs("Zebra Song", "Alpha Song")

	for i := 0; i < 5; i++ {
		recs, _, err := Recommend(songs, nil, testNow, HemisphereNorth, Filters{}, cfg)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("got %d recommendations; want 2", len(recs))
		}
		if recs[0].Title != "Alpha Song" {
			t.Fatalf("tie should break by title ascending, got %q first", recs[0].Title)
		}
	}
}

func TestRecommendDedupeKeepsHighestScore(t *testing.T) {
	cfg := DefaultConfig()

	// A song both long-rested (rotation, high) and seasonally popular
	// (seasonal, lower) must appear once with the winning type
	songs := makeSongs("Crossover")
	songs[0].KeySignature = "C"

	var usage []models.UsageRecord
	// Heavy use last summer (seasonal signal for a June analysis),
	// long-rested now
	for _, d := range []int{330, 340, 350, 355} {
		usage = append(usage, usedDaysAgo(1, d))
	}

	recs, _, err := Recommend(songs, usage, testNow, HemisphereNorth, Filters{}, cfg)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	count := 0
	for _, r := range recs {
		if r.SongID == 1 {
			count++
			if r.Type != TypeRotation {
				t.Errorf("winning entry type = %s; want rotation (the higher score)", r.Type)
			}
		}
	}
	if count != 1 {
		t.Errorf("song appeared %d times; want exactly 1 after dedupe", count)
	}
}

func TestRecommendExcludeRecentFilter(t *testing.T) {
	cfg := DefaultConfig()

	songs := makeSongs("Fresh", "Rested")
	usage := []models.UsageRecord{
		usedDaysAgo(1, 16), // candidate, but inside a 30-day exclusion
		usedDaysAgo(2, 60),
	}

	recs, _, err := Recommend(songs, usage, testNow, HemisphereNorth, Filters{ExcludeRecentDays: 30}, cfg)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	for _, r := range recs {
		if r.SongID == 1 {
			t.Error("song used 16 days ago should be filtered by exclude_recent_days=30")
		}
	}
}

func TestRecommendSkipsDanglingUsage(t *testing.T) {
	cfg := DefaultConfig()

	songs := makeSongs("Survivor")
	usage := []models.UsageRecord{
		usedDaysAgo(1, 40),
		{SongID: 777, UsedDate: testNow.AddDate(0, 0, -3)},
	}

	recs, warnings, err := Recommend(songs, usage, testNow, HemisphereNorth, Filters{}, cfg)
	if err != nil {
		t.Fatalf("a single bad record must never fail the call: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "777") {
		t.Errorf("want one warning naming song 777, got %v", warnings)
	}
	if len(recs) == 0 {
		t.Error("valid songs should still be recommended")
	}
}

func TestRecommendInvalidConfigFailsFast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinDaysBetweenUse = -1

	_, _, err := Recommend(nil, nil, testNow, HemisphereNorth, Filters{}, cfg)
	if err == nil {
		t.Fatal("invalid config must fail before any analyzer runs")
	}
}

func TestRecommendScoresClamped(t *testing.T) {
	cfg := DefaultConfig()

	var songs []models.Song
	var usage []models.UsageRecord
	for i := 0; i < 6; i++ {
		s := songWith("S", "G", 100)
		s.ID = uint(i + 1)
		songs = append(songs, s)
		usage = append(usage, usedDaysAgo(s.ID, 500)) // very long rest
	}

	recs, _, err := Recommend(songs, usage, testNow, HemisphereNorth, Filters{Limit: 100}, cfg)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	for _, r := range recs {
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("score %f for song %d out of [0,1]", r.Score, r.SongID)
		}
	}
}
