package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/SmileyChris/worshipwise-sub003/internal/config"
	database "github.com/SmileyChris/worshipwise-sub003/internal/db"
	"github.com/SmileyChris/worshipwise-sub003/internal/engine"
	"github.com/SmileyChris/worshipwise-sub003/internal/snapshot"
)

func main() {
	// 1. Parse Flags
	// We add flags to override config.yaml values
	church := flag.Uint("church", 0, "Override church ID to report on")
	days := flag.Int("days", 90, "Usage window in days")
	month := flag.Int("month", 0, "Month for seasonal trends (1-12, default: current)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// 2. Load Config
	cfg := config.Load()

	// 3. Apply Flag Overrides
	churchID := cfg.Server.DefaultChurchID
	if *church != 0 {
		churchID = uint(*church)
	}

	// 4. Init Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()

	// 5. Take one snapshot; every section below reads from it
	now := time.Now()
	store := snapshot.NewStore(db.DB)
	snap, err := store.Take(churchID, snapshot.LastDays(now, *days))
	if err != nil {
		log.Fatalf("❌ Snapshot failed: %v", err)
	}
	log.Printf("📸 Snapshot %s: %d songs, %d usage records, %d services",
		snap.Version, len(snap.Songs), len(snap.Usage), len(snap.Services))

	hemi := cfg.Hemisphere()
	season := engine.CurrentSeason(now, hemi)

	printSection(fmt.Sprintf("Rotation Report - church %d - season: %s", churchID, season))

	// Recommendations
	recs, warnings, err := engine.Recommend(snap.Songs, snap.Usage, now, hemi, engine.Filters{}, cfg.Engine)
	if err != nil {
		log.Fatalf("❌ Recommendation run failed: %v", err)
	}
	for _, w := range warnings {
		log.Printf("⚠️ %s", w)
	}
	printSection("Recommendations")
	printLines(engine.SummarizeRecommendations(recs))

	// Seasonal trends
	trendMonth := int(now.Month())
	if *month >= 1 && *month <= 12 {
		trendMonth = *month
	}
	trend := engine.SeasonalTrendFor(snap.Songs, snap.Usage, trendMonth, hemi, cfg.Engine)
	printSection("Seasonal Trends")
	printLines(engine.SummarizeTrend(trend))

	// Period comparison
	prevWindow := snap.Window.Shift()
	prevUsage, err := store.Usage(churchID, prevWindow)
	if err != nil {
		log.Fatalf("❌ Loading previous usage failed: %v", err)
	}
	prevServices, err := store.Services(churchID, prevWindow)
	if err != nil {
		log.Fatalf("❌ Loading previous services failed: %v", err)
	}
	comparison := engine.ComparePeriods(snap.Usage, prevUsage, snap.Services, prevServices)
	printSection(fmt.Sprintf("Compared to the previous %d days", *days))
	printLines(engine.SummarizeComparison(comparison))

	// Health score
	health, healthWarnings := engine.RotationHealthFor(snap.Songs, snap.Usage, now, cfg.Engine)
	for _, w := range healthWarnings {
		log.Printf("⚠️ %s", w)
	}
	printSection(fmt.Sprintf("Rotation Health: %d/100 (%s)", health.Score, health.Status))
	printLines(engine.SummarizeHealth(health))
}

func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

func printLines(lines []string) {
	for _, l := range lines {
		fmt.Println("  " + l)
	}
}
