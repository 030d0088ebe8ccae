package engine

import (
	"fmt"
	"math"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

// ComparePeriods diffs aggregate usage metrics between two windows:
// total usage volume, distinct-song diversity, and average completed
// service length. All deltas are percentages of the previous window.
func ComparePeriods(curUsage, prevUsage []models.UsageRecord, curServices, prevServices []models.Service) ComparativePeriod {
	changes := PeriodChanges{
		UsageChange:     pctChange(float64(len(curUsage)), float64(len(prevUsage))),
		DiversityChange: pctChange(float64(distinctSongs(curUsage)), float64(distinctSongs(prevUsage))),
		LengthChange:    pctChange(avgServiceSeconds(curServices), avgServiceSeconds(prevServices)),
	}

	insights := []string{}
	switch {
	case changes.UsageChange > 0:
		insights = append(insights, fmt.Sprintf("Song usage is up %.0f%% on the previous period", changes.UsageChange))
	case changes.UsageChange < 0:
		insights = append(insights, fmt.Sprintf("Song usage is down %.0f%% on the previous period", -changes.UsageChange))
	default:
		insights = append(insights, "Song usage volume is unchanged")
	}

	if changes.DiversityChange > 0 {
		insights = append(insights, fmt.Sprintf("You sang %.0f%% more distinct songs than last period", changes.DiversityChange))
	} else if changes.DiversityChange < 0 {
		insights = append(insights, fmt.Sprintf("Song variety narrowed by %.0f%%; consider rotating in rested songs", -changes.DiversityChange))
	}

	if math.Abs(changes.LengthChange) >= 5 {
		dir := "longer"
		if changes.LengthChange < 0 {
			dir = "shorter"
		}
		insights = append(insights, fmt.Sprintf("Services ran %.0f%% %s on average", math.Abs(changes.LengthChange), dir))
	}

	return ComparativePeriod{Changes: changes, Insights: insights}
}

// pctChange guards the empty-previous-window case: +100 when activity
// appeared from nothing, 0 when both windows are empty. Never NaN.
func pctChange(cur, prev float64) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	return (cur - prev) / prev * 100
}

func distinctSongs(usage []models.UsageRecord) int {
	seen := make(map[uint]struct{}, len(usage))
	for _, u := range usage {
		seen[u.SongID] = struct{}{}
	}
	return len(seen)
}

// avgServiceSeconds averages duration over completed services only;
// drafts have no reliable runtime yet.
func avgServiceSeconds(services []models.Service) float64 {
	var sum, n float64
	for _, s := range services {
		if !s.IsCompleted() || s.DurationSeconds <= 0 {
			continue
		}
		sum += float64(s.DurationSeconds)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / n
}
