package engine

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
	"github.com/SmileyChris/worshipwise-sub003/internal/music"
)

// RotationHealthFor scores how well a church's rotation is spreading
// across its library: recency coverage blended with key and tempo
// diversity, 0-100. Usage records pointing at deleted songs are
// skipped and reported as warnings, never a failure.
func RotationHealthFor(songs []models.Song, usage []models.UsageRecord, now time.Time, cfg Config) (RotationHealth, []string) {
	warnings := []string{}

	if len(songs) == 0 {
		return RotationHealth{
			Score:           0,
			Status:          StatusCritical,
			Insights:        []string{"Song library is empty, nothing to rotate"},
			Recommendations: []string{"Add songs to the library to begin tracking rotation health"},
		}, warnings
	}

	byID := make(map[uint]models.Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}

	// Resolve usage, dropping danglers. History legitimately outlives
	// songs, so these are warnings rather than errors.
	historyBySong := make(map[uint][]models.UsageRecord)
	var resolved []models.UsageRecord
	for _, u := range usage {
		if _, ok := byID[u.SongID]; !ok {
			warnings = append(warnings, fmt.Sprintf("usage record %d references unknown song %d; skipped", u.ID, u.SongID))
			continue
		}
		historyBySong[u.SongID] = append(historyBySong[u.SongID], u)
		resolved = append(resolved, u)
	}

	div := diversityFor(songs, resolved, byID, cfg)
	recency := float64(len(historyBySong)) / float64(len(songs)) * 100

	w := cfg.RotationHealthWeights
	raw := w.Recency*recency + w.KeyDiversity*div.KeyDiversity + w.TempoDiversity*div.TempoDiversity
	score := int(math.Round(math.Min(100, math.Max(0, raw))))

	health := RotationHealth{
		Score:      score,
		Status:     statusFor(score),
		Diversity:  div,
		Engagement: engagementFor(songs, historyBySong, now, cfg),
	}
	health.Insights, health.Recommendations = healthNarrative(health, recency, len(historyBySong), len(songs))
	return health, warnings
}

// Status bands, inclusive on the lower edge.
func statusFor(score int) HealthStatus {
	switch {
	case score >= 85:
		return StatusExcellent
	case score >= 70:
		return StatusGood
	case score >= 50:
		return StatusNeedsAttention
	default:
		return StatusCritical
	}
}

// diversityFor measures used-vs-library distinct keys, tempo classes
// and artists, plus the Shannon entropy of each usage distribution.
// A per-service key override counts as the key actually sung.
func diversityFor(songs []models.Song, usage []models.UsageRecord, byID map[uint]models.Song, cfg Config) DiversityAnalysis {
	libKeys := make(map[music.Key]struct{})
	libTempos := make(map[string]struct{})
	libArtists := make(map[string]struct{})
	for _, s := range songs {
		if k, ok := music.ParseKey(s.KeySignature); ok {
			libKeys[k] = struct{}{}
		}
		if c := music.ClassifyTempoWith(s.TempoBPM, cfg.TempoMediumMinBPM, cfg.TempoMediumMaxBPM); c != music.TempoUnknown {
			libTempos[c] = struct{}{}
		}
		if s.Artist != "" {
			libArtists[s.Artist] = struct{}{}
		}
	}

	usedKeys := make(map[music.Key]int)
	usedTempos := make(map[string]int)
	usedArtists := make(map[string]int)
	for _, u := range usage {
		song := byID[u.SongID]
		keyName := song.KeySignature
		if u.UsedKey != "" {
			keyName = u.UsedKey
		}
		if k, ok := music.ParseKey(keyName); ok {
			usedKeys[k]++
		}
		if c := music.ClassifyTempoWith(song.TempoBPM, cfg.TempoMediumMinBPM, cfg.TempoMediumMaxBPM); c != music.TempoUnknown {
			usedTempos[c]++
		}
		if song.Artist != "" {
			usedArtists[song.Artist]++
		}
	}

	return DiversityAnalysis{
		KeyDiversity:    coveragePct(len(usedKeys), len(libKeys)),
		TempoDiversity:  coveragePct(len(usedTempos), len(libTempos)),
		ArtistDiversity: coveragePct(len(usedArtists), len(libArtists)),
		KeyEntropy:      entropyOf(countValues(usedKeys)),
		TempoEntropy:    entropyOf(countValues(usedTempos)),
		ArtistEntropy:   entropyOf(countValues(usedArtists)),
	}
}

func coveragePct(used, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Min(100, float64(used)/float64(total)*100)
}

func countValues[K comparable](m map[K]int) []float64 {
	out := make([]float64, 0, len(m))
	for _, n := range m {
		out = append(out, float64(n))
	}
	return out
}

// entropyOf normalizes raw counts into a distribution and returns its
// Shannon entropy in nats.
func entropyOf(counts []float64) float64 {
	var sum float64
	for _, c := range counts {
		sum += c
	}
	if sum == 0 {
		return 0
	}
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = c / sum
	}
	return stat.Entropy(p)
}

func engagementFor(songs []models.Song, historyBySong map[uint][]models.UsageRecord, now time.Time, cfg Config) CongregationEngagement {
	var eng CongregationEngagement
	for _, s := range songs {
		history := historyBySong[s.ID]
		if len(history) >= cfg.FamiliarUseCount {
			eng.FamiliarSongs++
		}
		rec, ok := ScoreRotation(s, history, now, cfg)
		if ok && !rec.Metadata.IsNewSong &&
			rec.Score >= cfg.OptimalScoreLow && rec.Score <= cfg.OptimalScoreHigh {
			eng.OptimalRotationCandidates++
		}
	}
	return eng
}

func healthNarrative(h RotationHealth, recency float64, usedSongs, totalSongs int) (insights, recs []string) {
	insights = []string{
		fmt.Sprintf("Rotation health is %d/100 (%s)", h.Score, h.Status),
		fmt.Sprintf("%d of %d songs saw use in this window (%.0f%% of the library)", usedSongs, totalSongs, recency),
	}
	recs = []string{}

	if recency < 50 {
		recs = append(recs, "A large share of the library is idle; schedule rested songs back in")
	}
	if h.Diversity.KeyDiversity < 50 {
		recs = append(recs, "Key variety is narrow; pick songs outside your usual keys")
	}
	if h.Diversity.TempoDiversity < 50 {
		recs = append(recs, "Tempo variety is narrow; mix fast and slow songs more evenly")
	}
	if h.Engagement.FamiliarSongs == 0 && usedSongs > 0 {
		recs = append(recs, "No song has been repeated enough to become congregation-familiar yet")
	}
	if h.Engagement.OptimalRotationCandidates > 0 {
		insights = append(insights, fmt.Sprintf("%d songs are in the optimal rotation band right now", h.Engagement.OptimalRotationCandidates))
	}
	return insights, recs
}
