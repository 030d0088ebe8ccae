package engine

import (
	"fmt"
	"strings"
)

// The summarizer turns analyzer output into short display strings.
// Callers render these directly; ordering is significant.

// SummarizeRecommendations renders a ranked list, one line per entry.
func SummarizeRecommendations(recs []RecommendationScore) []string {
	if len(recs) == 0 {
		return []string{"No rotation candidates right now: everything was used recently"}
	}
	out := make([]string, 0, len(recs))
	for i, r := range recs {
		out = append(out, fmt.Sprintf("%d. %s: %s (%.2f)", i+1, r.Title, r.Reason, r.Score))
	}
	return out
}

// SummarizeFlow renders flow suggestions, highest severity first
// (they already arrive in set order; severity is stated inline).
func SummarizeFlow(suggestions []FlowSuggestion) []string {
	if len(suggestions) == 0 {
		return []string{"Set flows well: no abrupt tempo or key transitions"}
	}
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		line := s.Suggestion
		if s.RecommendedTempo > 0 {
			line += fmt.Sprintf(" (try a bridge around %d BPM)", s.RecommendedTempo)
		}
		if s.RecommendedKey != "" {
			line += fmt.Sprintf(" (try passing through %s)", s.RecommendedKey)
		}
		out = append(out, line)
	}
	return out
}

// SummarizeBalance renders the tempo split and any adjustments.
func SummarizeBalance(b BalanceAnalysis) []string {
	out := []string{fmt.Sprintf("Tempo split: %d fast / %d medium / %d slow",
		b.CurrentBalance.Fast, b.CurrentBalance.Medium, b.CurrentBalance.Slow)}
	if len(b.Recommendations) == 0 {
		out = append(out, "Set is well balanced")
		return out
	}
	return append(out, b.Recommendations...)
}

// SummarizeTrend renders a seasonal trend.
func SummarizeTrend(t SeasonalTrend) []string {
	out := []string{fmt.Sprintf("Season: %s", t.Season)}
	if t.LowConfidence {
		out = append(out, "Not enough seasonal history yet, showing general suggestions")
	}
	for i, p := range t.PopularSongs {
		out = append(out, fmt.Sprintf("%d. %s (%d past uses)", i+1, p.Title, p.Count))
		if i == 4 {
			break
		}
	}
	if len(t.SuggestedThemes) > 0 {
		out = append(out, "Suggested themes: "+strings.Join(t.SuggestedThemes, ", "))
	}
	return out
}

// SummarizeComparison passes through the period insights.
func SummarizeComparison(c ComparativePeriod) []string {
	if len(c.Insights) == 0 {
		return []string{"No notable change between periods"}
	}
	return c.Insights
}

// SummarizeHealth renders the health score, its insights, then its
// recommendations.
func SummarizeHealth(h RotationHealth) []string {
	out := append([]string{}, h.Insights...)
	return append(out, h.Recommendations...)
}
