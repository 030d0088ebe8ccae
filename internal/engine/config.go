package engine

import (
	"fmt"

	"github.com/SmileyChris/worshipwise-sub003/internal/music"
)

// TempoRatio is the target fast/medium/slow split for a set. The
// three values must sum to 1.0 (within rounding tolerance).
type TempoRatio struct {
	Fast   float64 `json:"fast" mapstructure:"fast"`
	Medium float64 `json:"medium" mapstructure:"medium"`
	Slow   float64 `json:"slow" mapstructure:"slow"`
}

// HealthWeights controls the rotation-health blend. Values must sum
// to 1.0 (within rounding tolerance).
type HealthWeights struct {
	Recency        float64 `json:"recency" mapstructure:"recency"`
	KeyDiversity   float64 `json:"key_diversity" mapstructure:"key_diversity"`
	TempoDiversity float64 `json:"tempo_diversity" mapstructure:"tempo_diversity"`
}

// Config collects every tunable threshold in the engine. No analyzer
// carries its own magic numbers; anything a church might want to tune
// lives here with a documented default.
type Config struct {
	// MinDaysBetweenUse excludes a song from rotation candidates until
	// this many full days have passed since its last use.
	MinDaysBetweenUse int `json:"min_days_between_use" mapstructure:"min_days_between_use"`

	// CautionThresholdDays is where the rotation score reaches 0.7;
	// beyond it the score approaches 1.0 asymptotically.
	CautionThresholdDays int `json:"caution_threshold_days" mapstructure:"caution_threshold_days"`

	// NewSongBoost is the score contribution for songs with no history.
	NewSongBoost float64 `json:"new_song_boost" mapstructure:"new_song_boost"`

	// MaxUsesPerQuarter is the frequency ceiling; songs used more often
	// than this in the trailing 90 days are discounted.
	MaxUsesPerQuarter int `json:"max_uses_per_quarter" mapstructure:"max_uses_per_quarter"`

	// IdealTempoRatio is the target set balance (default 30/40/30).
	IdealTempoRatio TempoRatio `json:"ideal_tempo_ratio" mapstructure:"ideal_tempo_ratio"`

	// Tempo bucket boundaries: slow < MediumMinBPM, fast > MediumMaxBPM.
	TempoMediumMinBPM int `json:"tempo_medium_min_bpm" mapstructure:"tempo_medium_min_bpm"`
	TempoMediumMaxBPM int `json:"tempo_medium_max_bpm" mapstructure:"tempo_medium_max_bpm"`

	// TempoJumpThresholdBPM flags consecutive-song tempo deltas at or
	// above this value (the threshold is inclusive).
	TempoJumpThresholdBPM int `json:"tempo_jump_threshold_bpm" mapstructure:"tempo_jump_threshold_bpm"`

	// BalanceTolerancePct is how far (in percentage points) a tempo
	// bucket may drift from ideal before a recommendation fires.
	BalanceTolerancePct float64 `json:"balance_tolerance_pct" mapstructure:"balance_tolerance_pct"`

	// MinSeasonalRecords is the history floor below which seasonal
	// trends degrade to generic output flagged low-confidence.
	MinSeasonalRecords int `json:"min_seasonal_records" mapstructure:"min_seasonal_records"`

	// ExcludeRecentDays drops songs used within N days from final
	// recommendation lists. Zero disables the filter.
	ExcludeRecentDays int `json:"exclude_recent_days" mapstructure:"exclude_recent_days"`

	// ResultLimit caps recommendation list length. Zero means no cap.
	ResultLimit int `json:"result_limit" mapstructure:"result_limit"`

	// FamiliarUseCount is the minimum window usage count for a song to
	// count as congregation-familiar.
	FamiliarUseCount int `json:"familiar_use_count" mapstructure:"familiar_use_count"`

	// Optimal rotation band: songs whose rotation score falls inside
	// [low, high] count as optimal candidates, neither too soon nor
	// unproven.
	OptimalScoreLow  float64 `json:"optimal_score_low" mapstructure:"optimal_score_low"`
	OptimalScoreHigh float64 `json:"optimal_score_high" mapstructure:"optimal_score_high"`

	// RotationHealthWeights blends recency coverage with key and tempo
	// diversity into the 0-100 health score.
	RotationHealthWeights HealthWeights `json:"rotation_health_weights" mapstructure:"rotation_health_weights"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinDaysBetweenUse:     14,
		CautionThresholdDays:  28,
		NewSongBoost:          0.2,
		MaxUsesPerQuarter:     6,
		IdealTempoRatio:       TempoRatio{Fast: 0.30, Medium: 0.40, Slow: 0.30},
		TempoMediumMinBPM:     music.DefaultMediumMinBPM,
		TempoMediumMaxBPM:     music.DefaultMediumMaxBPM,
		TempoJumpThresholdBPM: 40,
		BalanceTolerancePct:   10,
		MinSeasonalRecords:    3,
		ExcludeRecentDays:     0,
		ResultLimit:           10,
		FamiliarUseCount:      3,
		OptimalScoreLow:       0.5,
		OptimalScoreHigh:      0.9,
		RotationHealthWeights: HealthWeights{Recency: 0.4, KeyDiversity: 0.3, TempoDiversity: 0.3},
	}
}

// Validate fails fast on configuration that could only come from a
// programming mistake. Data problems never come through here; they
// are recovered per-record inside the analyzers.
func (c Config) Validate() error {
	if c.MinDaysBetweenUse < 0 {
		return fmt.Errorf("engine config: min_days_between_use must be >= 0, got %d", c.MinDaysBetweenUse)
	}
	if c.CautionThresholdDays <= c.MinDaysBetweenUse {
		return fmt.Errorf("engine config: caution_threshold_days (%d) must exceed min_days_between_use (%d)",
			c.CautionThresholdDays, c.MinDaysBetweenUse)
	}
	if c.NewSongBoost < 0 || c.NewSongBoost > 1 {
		return fmt.Errorf("engine config: new_song_boost must be in [0,1], got %g", c.NewSongBoost)
	}
	if c.MaxUsesPerQuarter < 1 {
		return fmt.Errorf("engine config: max_uses_per_quarter must be >= 1, got %d", c.MaxUsesPerQuarter)
	}
	if sum := c.IdealTempoRatio.Fast + c.IdealTempoRatio.Medium + c.IdealTempoRatio.Slow; sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("engine config: ideal_tempo_ratio must sum to 1.0, got %g", sum)
	}
	if c.TempoMediumMinBPM <= 0 || c.TempoMediumMaxBPM <= c.TempoMediumMinBPM {
		return fmt.Errorf("engine config: tempo boundaries invalid (min %d, max %d)",
			c.TempoMediumMinBPM, c.TempoMediumMaxBPM)
	}
	if c.TempoJumpThresholdBPM <= 0 {
		return fmt.Errorf("engine config: tempo_jump_threshold_bpm must be > 0, got %d", c.TempoJumpThresholdBPM)
	}
	if c.BalanceTolerancePct < 0 || c.BalanceTolerancePct > 100 {
		return fmt.Errorf("engine config: balance_tolerance_pct must be in [0,100], got %g", c.BalanceTolerancePct)
	}
	if c.ExcludeRecentDays < 0 {
		return fmt.Errorf("engine config: exclude_recent_days must be >= 0, got %d", c.ExcludeRecentDays)
	}
	if c.ResultLimit < 0 {
		return fmt.Errorf("engine config: result_limit must be >= 0, got %d", c.ResultLimit)
	}
	if c.OptimalScoreLow < 0 || c.OptimalScoreHigh > 1 || c.OptimalScoreLow >= c.OptimalScoreHigh {
		return fmt.Errorf("engine config: optimal score band [%g,%g] invalid", c.OptimalScoreLow, c.OptimalScoreHigh)
	}
	w := c.RotationHealthWeights
	if sum := w.Recency + w.KeyDiversity + w.TempoDiversity; sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("engine config: rotation_health_weights must sum to 1.0, got %g", sum)
	}
	return nil
}
