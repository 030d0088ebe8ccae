package engine

import (
	"fmt"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
	"github.com/SmileyChris/worshipwise-sub003/internal/music"
)

// AnalyzeFlow walks an ordered set and flags rough transitions: tempo
// jumps at or above the configured threshold, and key changes rated
// difficult. Each suggestion points at the position being entered.
//
// Called with fewer than two songs there is nothing pairwise to say,
// so it returns general best-practice guidance instead, a distinct
// mode, not an error.
func AnalyzeFlow(set []models.Song, cfg Config) []FlowSuggestion {
	if len(set) < 2 {
		return GeneralFlowGuidance()
	}

	var out []FlowSuggestion
	for i := 1; i < len(set); i++ {
		prev, cur := set[i-1], set[i]

		// Tempo continuity. Songs without a BPM are skipped rather
		// than treated as any particular tempo.
		if prev.HasTempo() && cur.HasTempo() {
			delta := prev.TempoBPM - cur.TempoBPM
			if delta < 0 {
				delta = -delta
			}
			if delta >= cfg.TempoJumpThresholdBPM {
				out = append(out, FlowSuggestion{
					Position: i,
					Suggestion: fmt.Sprintf("Large tempo change into %q (%d -> %d BPM)",
						cur.Title, prev.TempoBPM, cur.TempoBPM),
					Reason:           fmt.Sprintf("Tempo shifts by %d BPM; consider a bridge song or an intentional transition", delta),
					Severity:         SeverityHigh,
					RecommendedTempo: (prev.TempoBPM + cur.TempoBPM) / 2,
				})
			}
		}

		// Harmonic continuity
		t := music.Transition(prev.KeySignature, cur.KeySignature)
		if t.Difficulty == music.DifficultyDifficult {
			out = append(out, FlowSuggestion{
				Position: i,
				Suggestion: fmt.Sprintf("Difficult key transition into %q (%s -> %s)",
					cur.Title, prev.KeySignature, cur.KeySignature),
				Reason:         "Keys are far apart on the circle of fifths; a pad or spoken transition helps",
				Severity:       SeverityHigh,
				RecommendedKey: bridgeKey(prev.KeySignature, cur.KeySignature),
			})
		}
	}
	return out
}

// GeneralFlowGuidance is the non-service-specific mode: no positions,
// just the standing advice a worship leader would get without a set.
func GeneralFlowGuidance() []FlowSuggestion {
	return []FlowSuggestion{
		{
			Suggestion: "Open with familiar, higher-energy songs and settle into reflective ones",
			Reason:     "A descending energy arc is the most common worship flow",
			Severity:   SeverityMedium,
		},
		{
			Suggestion: "Keep adjacent songs within one step on the circle of fifths where possible",
			Reason:     "Close keys let the band move between songs without a reset",
			Severity:   SeverityMedium,
		},
		{
			Suggestion: "Avoid back-to-back tempo swings of more than about 40 BPM",
			Reason:     "Large jumps are jarring without an intentional transition moment",
			Severity:   SeverityMedium,
		},
	}
}

// bridgeKey proposes an intermediate key for a difficult transition:
// the key one fifth up from the origin, which is easy to reach from
// the first song and closer to the second.
func bridgeKey(from, to string) string {
	k, ok := music.ParseKey(from)
	if !ok {
		return ""
	}
	up := (k.PitchClass + 7) % 12
	for name, cand := range keyNamesByPitch {
		if name == up {
			if k.Minor {
				return cand + "m"
			}
			return cand
		}
	}
	return ""
}

// Preferred spelling per pitch class when we need to print a key name.
var keyNamesByPitch = map[int]string{
	0: "C", 1: "Db", 2: "D", 3: "Eb", 4: "E", 5: "F",
	6: "F#", 7: "G", 8: "Ab", 9: "A", 10: "Bb", 11: "B",
}
