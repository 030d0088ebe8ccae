package music

import "strings"

// Transition difficulty levels for moving between two keys mid-set.
const (
	DifficultyEasy      = "easy"
	DifficultyModerate  = "moderate"
	DifficultyDifficult = "difficult"
	DifficultyUnknown   = "unknown"
)

// KeyTransition describes how hard it is to move from one key to another.
type KeyTransition struct {
	SemitoneDistance     int    `json:"semitone_distance"`
	IsRelativeMajorMinor bool   `json:"is_relative_major_minor"`
	IsFifthsAdjacent     bool   `json:"is_fifths_adjacent"`
	Difficulty           string `json:"difficulty"`
}

// Key is a parsed key signature: a pitch class (0-11, C=0) plus mode.
type Key struct {
	PitchClass int
	Minor      bool
}

// The 34 recognized key names. Enharmonic spellings (Db/C#) share a
// pitch class. Minor keys use the trailing-"m" convention ("F#m").
var keyLookup = map[string]Key{
	// --- MAJOR KEYS ---
	"C": {0, false},
	"C#": {1, false}, "Db": {1, false},
	"D": {2, false},
	"D#": {3, false}, "Eb": {3, false},
	"E": {4, false},
	"F": {5, false},
	"F#": {6, false}, "Gb": {6, false},
	"G": {7, false},
	"G#": {8, false}, "Ab": {8, false},
	"A": {9, false},
	"A#": {10, false}, "Bb": {10, false},
	"B": {11, false},

	// --- MINOR KEYS ---
	"Cm": {0, true},
	"C#m": {1, true}, "Dbm": {1, true},
	"Dm": {2, true},
	"D#m": {3, true}, "Ebm": {3, true},
	"Em": {4, true},
	"Fm": {5, true},
	"F#m": {6, true}, "Gbm": {6, true},
	"Gm": {7, true},
	"G#m": {8, true}, "Abm": {8, true},
	"Am": {9, true},
	"A#m": {10, true}, "Bbm": {10, true},
	"Bm": {11, true},
}

// ParseKey normalizes a raw key string ("bb", "F# Minor", "Ebm") and
// resolves it against the recognized key table.
func ParseKey(raw string) (Key, bool) {
	name := normalizeKeyName(raw)
	k, ok := keyLookup[name]
	return k, ok
}

func normalizeKeyName(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Strip spelled-out modes: "F# minor" -> "F#m", "C major" -> "C"
	lower := strings.ToLower(s)
	minor := false
	switch {
	case strings.HasSuffix(lower, "minor"):
		minor = true
		s = strings.TrimSpace(s[:len(s)-len("minor")])
	case strings.HasSuffix(lower, "major"):
		s = strings.TrimSpace(s[:len(s)-len("major")])
	case strings.HasSuffix(lower, "min"):
		minor = true
		s = strings.TrimSpace(s[:len(s)-len("min")])
	case strings.HasSuffix(lower, "maj"):
		s = strings.TrimSpace(s[:len(s)-len("maj")])
	case strings.HasSuffix(s, "m"):
		minor = true
		s = s[:len(s)-1]
	}

	if s == "" {
		return ""
	}

	// Uppercase the letter, keep the accidental as-is ("bb" -> "Bb")
	name := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	if minor {
		name += "m"
	}
	return name
}

// relativeMajor returns the pitch class of the key's relative major.
// A minor key sits three semitones below its relative major (Am -> C).
func (k Key) relativeMajor() int {
	if k.Minor {
		return (k.PitchClass + 3) % 12
	}
	return k.PitchClass
}

// fifthsPosition maps a pitch class onto the circle of fifths (0-11).
// Multiplying by 7 mod 12 walks the circle: C=0, G=1, D=2, ...
func fifthsPosition(pitchClass int) int {
	return (pitchClass * 7) % 12
}

func circularDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > 6 {
		d = 12 - d
	}
	return d
}

// Transition computes the difficulty of moving from key a to key b.
//
// Easy: same key, relative major/minor, or one step on the circle of
// fifths. Moderate: two steps. Everything else is difficult, notably
// the tritone and the parallel major/minor swap (C -> Cm).
// Unrecognized key strings yield DifficultyUnknown rather than an error.
func Transition(a, b string) KeyTransition {
	ka, okA := ParseKey(a)
	kb, okB := ParseKey(b)
	if !okA || !okB {
		return KeyTransition{Difficulty: DifficultyUnknown}
	}

	t := KeyTransition{
		SemitoneDistance: circularDistance(ka.PitchClass, kb.PitchClass),
	}

	// Relative major/minor share a pitch collection (C <-> Am)
	if ka.Minor != kb.Minor && ka.relativeMajor() == kb.relativeMajor() {
		t.IsRelativeMajorMinor = true
	}

	fifthsSteps := circularDistance(
		fifthsPosition(ka.relativeMajor()),
		fifthsPosition(kb.relativeMajor()),
	)
	t.IsFifthsAdjacent = fifthsSteps == 1

	switch {
	case ka == kb:
		t.Difficulty = DifficultyEasy
	case t.IsRelativeMajorMinor:
		t.Difficulty = DifficultyEasy
	case fifthsSteps == 1 && ka.Minor == kb.Minor:
		t.Difficulty = DifficultyEasy
	case fifthsSteps <= 2:
		t.Difficulty = DifficultyModerate
	default:
		t.Difficulty = DifficultyDifficult
	}

	return t
}

// Compatible reports whether b follows a comfortably in a set.
func Compatible(a, b string) bool {
	t := Transition(a, b)
	return t.Difficulty == DifficultyEasy
}
