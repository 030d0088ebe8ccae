package music

// Tempo classes used throughout set-balance analytics.
const (
	TempoSlow    = "slow"
	TempoMedium  = "medium"
	TempoFast    = "fast"
	TempoUnknown = ""
)

// Default bucket boundaries: slow < 80, medium 80-120 inclusive, fast > 120.
const (
	DefaultMediumMinBPM = 80
	DefaultMediumMaxBPM = 120
)

// ClassifyTempo buckets a BPM using the default boundaries.
func ClassifyTempo(bpm int) string {
	return ClassifyTempoWith(bpm, DefaultMediumMinBPM, DefaultMediumMaxBPM)
}

// ClassifyTempoWith buckets a BPM with custom boundaries. A missing
// tempo (bpm <= 0) returns TempoUnknown so callers exclude the song
// instead of silently counting it as medium.
func ClassifyTempoWith(bpm, mediumMin, mediumMax int) string {
	switch {
	case bpm <= 0:
		return TempoUnknown
	case bpm < mediumMin:
		return TempoSlow
	case bpm <= mediumMax:
		return TempoMedium
	default:
		return TempoFast
	}
}
