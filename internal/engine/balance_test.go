package engine

import (
	"testing"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

func TestAnalyzeBalanceEmptySet(t *testing.T) {
	got := AnalyzeBalance(nil, DefaultConfig())
	if got.CurrentBalance != (TempoCounts{}) {
		t.Errorf("current balance = %+v; want zeros", got.CurrentBalance)
	}
	if len(got.Recommendations) != 0 {
		t.Errorf("empty set should yield no recommendations, got %v", got.Recommendations)
	}
}

func TestAnalyzeBalanceWellBalanced(t *testing.T) {
	// 3 fast / 4 medium / 3 slow matches the 30/40/30 ideal exactly
	var set []models.Song
	for i := 0; i < 3; i++ {
		set = append(set, songWith("f", "C", 130))
	}
	for i := 0; i < 4; i++ {
		set = append(set, songWith("m", "C", 100))
	}
	for i := 0; i < 3; i++ {
		set = append(set, songWith("s", "C", 70))
	}

	got := AnalyzeBalance(set, DefaultConfig())
	if len(got.Recommendations) != 0 {
		t.Errorf("balanced set should yield no recommendations, got %v", got.Recommendations)
	}
	if got.IdealBalance != (TempoCounts{Fast: 3, Medium: 4, Slow: 3}) {
		t.Errorf("ideal balance = %+v", got.IdealBalance)
	}
}

func TestAnalyzeBalanceDrift(t *testing.T) {
	// All-slow set: expect direction-bearing recommendations
	var set []models.Song
	for i := 0; i < 5; i++ {
		set = append(set, songWith("s", "C", 65))
	}

	got := AnalyzeBalance(set, DefaultConfig())
	if got.CurrentBalance.Slow != 5 {
		t.Fatalf("current balance = %+v", got.CurrentBalance)
	}
	if len(got.Recommendations) == 0 {
		t.Fatal("an all-slow set should trigger recommendations")
	}
}

func TestAnalyzeBalanceIdealSumsToTotal(t *testing.T) {
	// Remainder always lands on medium so the counts add up
	for total := 1; total <= 12; total++ {
		ideal := idealCounts(total, DefaultConfig().IdealTempoRatio)
		if ideal.Total() != total {
			t.Errorf("idealCounts(%d) sums to %d: %+v", total, ideal.Total(), ideal)
		}
	}
}

func TestAnalyzeBalanceExcludesUnknownTempo(t *testing.T) {
	set := []models.Song{
		songWith("known", "C", 100),
		songWith("no tempo", "C", 0),
	}
	got := AnalyzeBalance(set, DefaultConfig())
	if got.CurrentBalance.Total() != 1 {
		t.Errorf("songs without BPM must not be counted; total = %d", got.CurrentBalance.Total())
	}
}
