package engine

import (
	"testing"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

func songWith(title, key string, bpm int) models.Song {
	return models.Song{Title: title, KeySignature: key, TempoBPM: bpm, IsActive: true}
}

func TestAnalyzeFlowTempoJumps(t *testing.T) {
	cfg := DefaultConfig() // 40 BPM threshold, inclusive

	set := []models.Song{
		songWith("Opener", "G", 150),
		songWith("Middle", "G", 100),
		songWith("Closer", "G", 55),
	}

	suggestions := AnalyzeFlow(set, cfg)
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions; want 2 (150->100 and 100->55)", len(suggestions))
	}
	if suggestions[0].Position != 1 || suggestions[1].Position != 2 {
		t.Errorf("positions = %d, %d; want 1, 2", suggestions[0].Position, suggestions[1].Position)
	}
	for _, s := range suggestions {
		if s.Severity != SeverityHigh {
			t.Errorf("large tempo changes are high severity, got %q", s.Severity)
		}
		if s.RecommendedTempo == 0 {
			t.Error("tempo suggestions should carry a recommended bridge tempo")
		}
	}
}

func TestAnalyzeFlowThresholdInclusive(t *testing.T) {
	cfg := DefaultConfig()

	// Delta of exactly 40 BPM trips the threshold
	set := []models.Song{
		songWith("A", "C", 140),
		songWith("B", "C", 100),
	}
	if got := AnalyzeFlow(set, cfg); len(got) != 1 {
		t.Errorf("delta of exactly 40 should flag, got %d suggestions", len(got))
	}

	// 39 does not
	set[1].TempoBPM = 101
	if got := AnalyzeFlow(set, cfg); len(got) != 0 {
		t.Errorf("delta of 39 should pass, got %d suggestions", len(got))
	}
}

func TestAnalyzeFlowDifficultKeys(t *testing.T) {
	cfg := DefaultConfig()

	set := []models.Song{
		songWith("In C", "C", 100),
		songWith("In F#", "F#", 100), // tritone
	}
	suggestions := AnalyzeFlow(set, cfg)
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions; want 1 for the tritone", len(suggestions))
	}
	s := suggestions[0]
	if s.Severity != SeverityHigh {
		t.Errorf("difficult transitions are high severity, got %q", s.Severity)
	}
	if s.RecommendedKey == "" {
		t.Error("difficult key transitions should propose a bridge key")
	}
}

func TestAnalyzeFlowSkipsUnknownTempo(t *testing.T) {
	cfg := DefaultConfig()

	// Missing BPM on one side: no tempo verdict either way
	set := []models.Song{
		songWith("Known", "C", 150),
		songWith("Unknown", "C", 0),
	}
	if got := AnalyzeFlow(set, cfg); len(got) != 0 {
		t.Errorf("missing tempo should produce no tempo suggestion, got %d", len(got))
	}
}

func TestAnalyzeFlowGenericMode(t *testing.T) {
	cfg := DefaultConfig()

	// Under two songs there is nothing pairwise: generic guidance mode
	for _, set := range [][]models.Song{nil, {songWith("Solo", "C", 100)}} {
		got := AnalyzeFlow(set, cfg)
		if len(got) == 0 {
			t.Fatal("generic mode should return standing guidance")
		}
		for _, s := range got {
			if s.Severity != SeverityMedium {
				t.Errorf("generic guidance is medium severity, got %q", s.Severity)
			}
		}
	}
}
