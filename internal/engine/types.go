package engine

// RecommendationType tags why a song was recommended. The tag is a
// closed set so UI consumers can group and narrow safely.
type RecommendationType string

const (
	TypeRotation         RecommendationType = "rotation"
	TypeSeasonal         RecommendationType = "seasonal"
	TypePopularity       RecommendationType = "popularity"
	TypeFlow             RecommendationType = "flow"
	TypeKeyCompatibility RecommendationType = "key_compatibility"
)

// ScoreMetadata carries the facts behind a score. Fields are zero
// unless relevant to the recommendation type.
type ScoreMetadata struct {
	DaysSinceLastUse int    `json:"days_since_last_use,omitempty"`
	TotalUses        int    `json:"total_uses,omitempty"`
	UsesLastQuarter  int    `json:"uses_last_quarter,omitempty"`
	IsNewSong        bool   `json:"is_new_song,omitempty"`
	Season           string `json:"season,omitempty"`
	LowConfidence    bool   `json:"low_confidence,omitempty"`
}

// RecommendationScore is one ranked recommendation entry.
type RecommendationScore struct {
	SongID   uint               `json:"song_id"`
	Title    string             `json:"title"`
	Artist   string             `json:"artist,omitempty"`
	Score    float64            `json:"score"` // always clamped to [0,1]
	Type     RecommendationType `json:"type"`
	Reason   string             `json:"reason"`
	Metadata ScoreMetadata      `json:"metadata"`
}

// Flow suggestion severities, derived from the suggestion category.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// FlowSuggestion points at a position in an ordered set where the
// transition into that song needs attention.
type FlowSuggestion struct {
	Position   int    `json:"position"` // index of the song being entered
	Suggestion string `json:"suggestion"`
	Reason     string `json:"reason"`
	Severity   string `json:"severity"`

	RecommendedTempo int    `json:"recommended_tempo,omitempty"` // 0 = no suggestion
	RecommendedKey   string `json:"recommended_key,omitempty"`
}

// TempoCounts tallies songs per tempo bucket.
type TempoCounts struct {
	Fast   int `json:"fast"`
	Medium int `json:"medium"`
	Slow   int `json:"slow"`
}

// Total returns the number of classified songs.
func (t TempoCounts) Total() int {
	return t.Fast + t.Medium + t.Slow
}

// BalanceAnalysis compares a set's tempo split against the ideal.
type BalanceAnalysis struct {
	CurrentBalance  TempoCounts `json:"current_balance"`
	IdealBalance    TempoCounts `json:"ideal_balance"`
	Recommendations []string    `json:"recommendations"`
}

// SongUsageCount ranks a song by usage within some slice of history.
type SongUsageCount struct {
	SongID uint   `json:"song_id"`
	Title  string `json:"title"`
	Count  int    `json:"count"`
}

// SeasonalTrend summarizes what a church historically sings in a season.
type SeasonalTrend struct {
	Season          string           `json:"season"`
	Month           int              `json:"month"` // 1-12
	PopularSongs    []SongUsageCount `json:"popular_songs"`
	SuggestedThemes []string         `json:"suggested_themes"`
	LowConfidence   bool             `json:"low_confidence,omitempty"`
}

// PeriodChanges holds percent deltas between two usage windows.
type PeriodChanges struct {
	UsageChange     float64 `json:"usage_change"`
	DiversityChange float64 `json:"diversity_change"`
	LengthChange    float64 `json:"length_change"`
}

// ComparativePeriod diffs aggregate metrics between two windows.
type ComparativePeriod struct {
	Changes  PeriodChanges `json:"changes"`
	Insights []string      `json:"insights"`
}

// Rotation health status tiers. Bands are inclusive on their lower edge.
type HealthStatus string

const (
	StatusExcellent      HealthStatus = "excellent"
	StatusGood           HealthStatus = "good"
	StatusNeedsAttention HealthStatus = "needs_attention"
	StatusCritical       HealthStatus = "critical"
)

// DiversityAnalysis measures how much of the library's variety a
// usage window actually exercised. Percentages are 0-100; entropies
// are Shannon entropy (nats) of the usage distribution.
type DiversityAnalysis struct {
	KeyDiversity    float64 `json:"key_diversity"`
	TempoDiversity  float64 `json:"tempo_diversity"`
	ArtistDiversity float64 `json:"artist_diversity"`

	KeyEntropy    float64 `json:"key_entropy"`
	TempoEntropy  float64 `json:"tempo_entropy"`
	ArtistEntropy float64 `json:"artist_entropy"`
}

// CongregationEngagement counts familiarity signals in the window.
type CongregationEngagement struct {
	FamiliarSongs             int `json:"familiar_songs"`
	OptimalRotationCandidates int `json:"optimal_rotation_candidates"`
}

// RotationHealth is the aggregate 0-100 rotation score with tiering.
type RotationHealth struct {
	Score           int                    `json:"score"`
	Status          HealthStatus           `json:"status"`
	Diversity       DiversityAnalysis      `json:"diversity"`
	Engagement      CongregationEngagement `json:"engagement"`
	Insights        []string               `json:"insights"`
	Recommendations []string               `json:"recommendations"`
}

// Filters narrows a final recommendation list. Both filters run after
// scoring and sorting, so they never reorder surviving items.
type Filters struct {
	ExcludeRecentDays int `json:"exclude_recent_days"`
	Limit             int `json:"limit"`
}
