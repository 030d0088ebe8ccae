package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

const quarterDays = 90

// ScoreRotation computes how ready a song is to come back into
// rotation. The second return is false when the song is excluded
// entirely (used too recently to be a candidate at all).
//
// Shape of the curve: excluded through MinDaysBetweenUse, linear
// 0 -> 0.7 up to CautionThresholdDays, then an asymptotic climb
// toward 1.0. Songs with no history get a high baseline plus the
// configured new-song boost so they surface near the top.
func ScoreRotation(song models.Song, history []models.UsageRecord, now time.Time, cfg Config) (RecommendationScore, bool) {
	rec := RecommendationScore{
		SongID: song.ID,
		Title:  song.Title,
		Artist: song.Artist,
		Type:   TypeRotation,
	}

	lastUsed, totalUses, quarterUses := usageStats(history, now)

	if totalUses == 0 {
		rec.Score = clamp01(newSongBaseline + cfg.NewSongBoost)
		rec.Reason = "New song: never used"
		rec.Metadata = ScoreMetadata{IsNewSong: true}
		return rec, true
	}

	days := daysBetween(lastUsed, now)
	if days <= cfg.MinDaysBetweenUse {
		// Too soon. Not a candidate at all.
		return RecommendationScore{}, false
	}

	var score float64
	if days <= cfg.CautionThresholdDays {
		span := float64(cfg.CautionThresholdDays - cfg.MinDaysBetweenUse)
		score = 0.7 * float64(days-cfg.MinDaysBetweenUse) / span
	} else {
		// 0.7 at the threshold, approaching 1.0 as the gap grows
		score = 1.0 - 0.3*float64(cfg.CautionThresholdDays)/float64(days)
	}

	// Frequency discount: same recency, heavier quarter -> lower score
	overuse := quarterUses - cfg.MaxUsesPerQuarter
	if overuse > 0 {
		score -= overusePenalty * float64(overuse)
	}
	rec.Score = clamp01(score)

	if overuse > 0 {
		rec.Reason = fmt.Sprintf("Heavy rotation: %d uses in the last %d days", quarterUses, quarterDays)
	} else {
		rec.Reason = fmt.Sprintf("Not used in %d days", days)
	}
	rec.Metadata = ScoreMetadata{
		DaysSinceLastUse: days,
		TotalUses:        totalUses,
		UsesLastQuarter:  quarterUses,
	}
	return rec, true
}

const (
	newSongBaseline = 0.75
	overusePenalty  = 0.05
)

// usageStats folds a song's history into the three numbers scoring
// needs. Records with a zero used_date are ignored; a malformed
// import must not read as "just used". Duplicate records on one date
// collapse naturally since only the max date matters.
func usageStats(history []models.UsageRecord, now time.Time) (lastUsed time.Time, total, quarter int) {
	quarterStart := now.AddDate(0, 0, -quarterDays)
	for _, u := range history {
		if u.UsedDate.IsZero() {
			continue
		}
		total++
		if u.UsedDate.After(lastUsed) {
			lastUsed = u.UsedDate
		}
		if u.UsedDate.After(quarterStart) && !u.UsedDate.After(now) {
			quarter++
		}
	}
	return lastUsed, total, quarter
}

func daysBetween(from, to time.Time) int {
	d := to.Sub(from).Hours() / 24
	if d < 0 {
		return 0
	}
	return int(math.Floor(d))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
