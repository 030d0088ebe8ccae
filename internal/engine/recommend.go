package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

// Recommend merges rotation, seasonal, and popularity signals into one
// ranked, de-duplicated list. Filters run last, after scoring and
// sorting, so they only ever remove entries, never reorder them.
//
// The returned warnings list notes skipped bad records; a single
// malformed row never fails the call. The only hard error is invalid
// configuration, surfaced before any scoring runs.
func Recommend(songs []models.Song, usage []models.UsageRecord, now time.Time, hemi Hemisphere, filters Filters, cfg Config) ([]RecommendationScore, []string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	warnings := []string{}
	byID := make(map[uint]models.Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}

	historyBySong := make(map[uint][]models.UsageRecord)
	for _, u := range usage {
		if _, ok := byID[u.SongID]; !ok {
			warnings = append(warnings, fmt.Sprintf("usage record %d references unknown song %d; skipped", u.ID, u.SongID))
			continue
		}
		historyBySong[u.SongID] = append(historyBySong[u.SongID], u)
	}

	// 1. Rotation candidates
	var all []RecommendationScore
	for _, s := range songs {
		if !s.IsActive {
			continue
		}
		if rec, ok := ScoreRotation(s, historyBySong[s.ID], now, cfg); ok {
			all = append(all, rec)
		}
	}

	// 2. Seasonal favorites
	trend := SeasonalTrendFor(songs, usage, int(now.Month()), hemi, cfg)
	all = append(all, seasonalScores(trend, byID, cfg)...)

	// 3. Popularity (all-time favorites in the window)
	all = append(all, popularityScores(historyBySong, byID)...)

	// Dedupe by song, keeping the highest-scoring entry. The winning
	// entry's type survives as the reason it was recommended.
	best := make(map[uint]RecommendationScore, len(all))
	for _, r := range all {
		if cur, ok := best[r.SongID]; !ok || r.Score > cur.Score {
			best[r.SongID] = r
		}
	}
	merged := make([]RecommendationScore, 0, len(best))
	for _, r := range best {
		merged = append(merged, r)
	}

	// Deterministic order: score descending, then title ascending
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		return merged[i].Title < merged[j].Title
	})

	merged = applyFilters(merged, historyBySong, now, filters, cfg)
	return merged, warnings, nil
}

// seasonalScores converts a seasonal trend into typed recommendations.
// Historical same-season favorites rise with their usage count; songs
// tagged for the season's themes get a flat lift. Low-confidence
// trends are passed through flagged, not suppressed.
func seasonalScores(trend SeasonalTrend, byID map[uint]models.Song, cfg Config) []RecommendationScore {
	var out []RecommendationScore
	for _, p := range trend.PopularSongs {
		song := byID[p.SongID]
		score := clamp01(0.45 + 0.08*float64(p.Count))
		if score > 0.85 {
			score = 0.85
		}
		out = append(out, RecommendationScore{
			SongID: p.SongID,
			Title:  song.Title,
			Artist: song.Artist,
			Score:  score,
			Type:   TypeSeasonal,
			Reason: fmt.Sprintf("Sung %d times in past %s seasons", p.Count, trend.Season),
			Metadata: ScoreMetadata{
				TotalUses:     p.Count,
				Season:        trend.Season,
				LowConfidence: trend.LowConfidence,
			},
		})
	}

	themes := make(map[string]struct{}, len(trend.SuggestedThemes))
	for _, t := range trend.SuggestedThemes {
		themes[t] = struct{}{}
	}
	for id, song := range byID {
		if !song.IsActive {
			continue
		}
		for _, tag := range song.TagList() {
			if _, ok := themes[tag]; ok {
				out = append(out, RecommendationScore{
					SongID: id,
					Title:  song.Title,
					Artist: song.Artist,
					Score:  0.6,
					Type:   TypeSeasonal,
					Reason: fmt.Sprintf("Tagged %q, a fit for the %s season", tag, trend.Season),
					Metadata: ScoreMetadata{
						Season:        trend.Season,
						LowConfidence: trend.LowConfidence,
					},
				})
				break
			}
		}
	}
	return out
}

// popularityScores ranks songs by window usage volume, scaled against
// the most-used song.
func popularityScores(historyBySong map[uint][]models.UsageRecord, byID map[uint]models.Song) []RecommendationScore {
	maxUses := 0
	for _, h := range historyBySong {
		if len(h) > maxUses {
			maxUses = len(h)
		}
	}
	if maxUses == 0 {
		return nil
	}

	var out []RecommendationScore
	for id, h := range historyBySong {
		song := byID[id]
		if !song.IsActive || len(h) < 2 {
			continue
		}
		out = append(out, RecommendationScore{
			SongID: id,
			Title:  song.Title,
			Artist: song.Artist,
			Score:  clamp01(0.35 + 0.4*float64(len(h))/float64(maxUses)),
			Type:   TypePopularity,
			Reason: fmt.Sprintf("Congregation favorite: %d uses in this window", len(h)),
			Metadata: ScoreMetadata{
				TotalUses: len(h),
			},
		})
	}
	return out
}

// applyFilters runs the post-sort pass: drop recently-used songs, then
// cap the list. Relative order among survivors is untouched.
func applyFilters(recs []RecommendationScore, historyBySong map[uint][]models.UsageRecord, now time.Time, filters Filters, cfg Config) []RecommendationScore {
	excludeDays := filters.ExcludeRecentDays
	if excludeDays == 0 {
		excludeDays = cfg.ExcludeRecentDays
	}
	if excludeDays > 0 {
		kept := recs[:0]
		for _, r := range recs {
			last, _, _ := usageStats(historyBySong[r.SongID], now)
			if !last.IsZero() && daysBetween(last, now) < excludeDays {
				continue
			}
			kept = append(kept, r)
		}
		recs = kept
	}

	limit := filters.Limit
	if limit == 0 {
		limit = cfg.ResultLimit
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
