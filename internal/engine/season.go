package engine

import (
	"sort"
	"time"

	"github.com/SmileyChris/worshipwise-sub003/internal/models"
)

// Hemisphere selects which half of the globe maps months to seasons.
// The caller derives it upstream (usually from the church timezone);
// the engine never guesses.
type Hemisphere string

const (
	HemisphereNorth Hemisphere = "northern"
	HemisphereSouth Hemisphere = "southern"
)

// Season labels. Liturgical seasons are hemisphere-independent; the
// natural seasons flip by six months south of the equator.
const (
	SeasonAdvent    = "advent"
	SeasonChristmas = "christmas"
	SeasonEpiphany  = "epiphany"
	SeasonLent      = "lent"
	SeasonEaster    = "easter"
	SeasonPentecost = "pentecost"
	SeasonSummer    = "summer"
	SeasonAutumn    = "autumn"
	SeasonWinter    = "winter"
	SeasonSpring    = "spring"
)

// CurrentSeason labels a calendar date. A major liturgical season wins
// over the natural season; outside those, the hemisphere-adjusted
// natural season is returned.
func CurrentSeason(date time.Time, hemi Hemisphere) string {
	if s, ok := liturgicalSeason(date); ok {
		return s
	}
	return naturalSeason(int(date.Month()), hemi)
}

// liturgicalSeason places a date inside the major church seasons.
func liturgicalSeason(date time.Time) (string, bool) {
	y := date.Year()
	d := time.Date(y, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	christmas := time.Date(y, time.December, 25, 0, 0, 0, 0, time.UTC)

	// Christmastide runs through Jan 5 of the following year, so a
	// January date compares against last year's Christmas.
	prevChristmas := christmas.AddDate(-1, 0, 0)
	if !d.Before(prevChristmas) && d.Before(prevChristmas.AddDate(0, 0, 12)) {
		return SeasonChristmas, true
	}
	if !d.Before(christmas) {
		return SeasonChristmas, true
	}

	// Advent starts four Sundays before Christmas.
	if !d.Before(adventStart(y)) {
		return SeasonAdvent, true
	}

	if d.Month() == time.January {
		// Jan 6 onward, after Christmastide
		return SeasonEpiphany, true
	}

	easter := easterSunday(y)
	lentStart := easter.AddDate(0, 0, -46) // Ash Wednesday
	pentecost := easter.AddDate(0, 0, 49)

	switch {
	case !d.Before(lentStart) && d.Before(easter):
		return SeasonLent, true
	case !d.Before(easter) && d.Before(pentecost):
		return SeasonEaster, true
	case !d.Before(pentecost) && d.Before(pentecost.AddDate(0, 0, 7)):
		return SeasonPentecost, true
	}

	return "", false
}

// easterSunday computes Western Easter via the anonymous Gregorian
// computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func adventStart(year int) time.Time {
	christmas := time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)
	offset := int(christmas.Weekday())
	if offset == 0 {
		offset = 7
	}
	fourthSunday := christmas.AddDate(0, 0, -offset)
	return fourthSunday.AddDate(0, 0, -21)
}

func naturalSeason(month int, hemi Hemisphere) string {
	if hemi == HemisphereSouth {
		month = (month+5)%12 + 1 // shift six months
	}
	switch {
	case month == 12 || month <= 2:
		return SeasonWinter
	case month <= 5:
		return SeasonSpring
	case month <= 8:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

var seasonThemes = map[string][]string{
	SeasonAdvent:    {"hope", "waiting", "promise", "light"},
	SeasonChristmas: {"incarnation", "joy", "emmanuel", "celebration"},
	SeasonEpiphany:  {"revelation", "light", "mission"},
	SeasonLent:      {"repentance", "mercy", "surrender", "the cross"},
	SeasonEaster:    {"resurrection", "victory", "new life"},
	SeasonPentecost: {"holy spirit", "power", "church"},
	SeasonSummer:    {"joy", "creation", "freedom"},
	SeasonAutumn:    {"harvest", "thanksgiving", "faithfulness"},
	SeasonWinter:    {"comfort", "refuge", "hope"},
	SeasonSpring:    {"renewal", "growth", "new life"},
}

var genericThemes = []string{"worship", "praise", "grace"}

// SuggestedThemes returns the theme words associated with a season
// label, falling back to generic worship themes.
func SuggestedThemes(season string) []string {
	if t, ok := seasonThemes[season]; ok {
		return t
	}
	return genericThemes
}

// SeasonalTrendFor ranks what a church historically sings in the
// season containing the given month. Usage is matched by season label
// across all prior years, so last Easter's favorites resurface as
// Easter approaches. Below MinSeasonalRecords matching records the
// trend degrades: no rankings, generic themes, low confidence.
func SeasonalTrendFor(songs []models.Song, usage []models.UsageRecord, month int, hemi Hemisphere, cfg Config) SeasonalTrend {
	season := naturalSeason(month, hemi)
	trend := SeasonalTrend{
		Season:          season,
		Month:           month,
		SuggestedThemes: SuggestedThemes(season),
	}

	titles := make(map[uint]string, len(songs))
	for _, s := range songs {
		titles[s.ID] = s.Title
	}

	counts := make(map[uint]int)
	matched := 0
	for _, u := range usage {
		if u.UsedDate.IsZero() {
			continue
		}
		if naturalSeason(int(u.UsedDate.Month()), hemi) != season {
			continue
		}
		if _, known := titles[u.SongID]; !known {
			// Dangling reference; history outlives songs
			continue
		}
		counts[u.SongID]++
		matched++
	}

	if matched < cfg.MinSeasonalRecords {
		trend.PopularSongs = []SongUsageCount{}
		trend.SuggestedThemes = genericThemes
		trend.LowConfidence = true
		return trend
	}

	ranked := make([]SongUsageCount, 0, len(counts))
	for id, n := range counts {
		ranked = append(ranked, SongUsageCount{SongID: id, Title: titles[id], Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Title < ranked[j].Title
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	trend.PopularSongs = ranked
	return trend
}
