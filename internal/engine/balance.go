package engine

import (
	"fmt"
	"math"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
	"github.com/SmileyChris/worshipwise-sub003/internal/music"
)

// AnalyzeBalance tallies the tempo buckets of a set and compares them
// against the ideal ratio. Songs without a BPM are left out of both
// sides so they cannot skew the percentages.
func AnalyzeBalance(set []models.Song, cfg Config) BalanceAnalysis {
	var current TempoCounts
	for _, s := range set {
		switch music.ClassifyTempoWith(s.TempoBPM, cfg.TempoMediumMinBPM, cfg.TempoMediumMaxBPM) {
		case music.TempoFast:
			current.Fast++
		case music.TempoMedium:
			current.Medium++
		case music.TempoSlow:
			current.Slow++
		}
	}

	analysis := BalanceAnalysis{
		CurrentBalance:  current,
		IdealBalance:    idealCounts(current.Total(), cfg.IdealTempoRatio),
		Recommendations: []string{},
	}

	total := current.Total()
	if total == 0 {
		return analysis
	}

	type bucket struct {
		name       string
		cur, ideal int
	}
	for _, b := range []bucket{
		{"fast", current.Fast, analysis.IdealBalance.Fast},
		{"medium", current.Medium, analysis.IdealBalance.Medium},
		{"slow", current.Slow, analysis.IdealBalance.Slow},
	} {
		curPct := float64(b.cur) / float64(total) * 100
		idealPct := float64(b.ideal) / float64(total) * 100
		drift := curPct - idealPct
		if math.Abs(drift) <= cfg.BalanceTolerancePct {
			continue
		}
		if drift < 0 {
			analysis.Recommendations = append(analysis.Recommendations,
				fmt.Sprintf("Add more %s songs: %d of %d (%.0f%%), ideal is around %.0f%%",
					b.name, b.cur, total, curPct, idealPct))
		} else {
			analysis.Recommendations = append(analysis.Recommendations,
				fmt.Sprintf("Consider fewer %s songs: %d of %d (%.0f%%), ideal is around %.0f%%",
					b.name, b.cur, total, curPct, idealPct))
		}
	}
	return analysis
}

// idealCounts splits a set size by the target ratio. Fast and slow
// round to nearest; the remainder lands on medium so the three counts
// always sum to the total.
func idealCounts(total int, ratio TempoRatio) TempoCounts {
	if total == 0 {
		return TempoCounts{}
	}
	fast := int(math.Round(float64(total) * ratio.Fast))
	slow := int(math.Round(float64(total) * ratio.Slow))
	medium := total - fast - slow
	if medium < 0 {
		medium = 0
	}
	return TempoCounts{Fast: fast, Medium: medium, Slow: slow}
}
