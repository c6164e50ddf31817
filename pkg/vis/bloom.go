// ABOUTME: Bloom window parsing from free-text "when it blooms" values
// ABOUTME: Year-independent month/day ranges reported as day-of-year

package vis

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// referenceYear is a non-leap year so day-of-year is stable.
const referenceYear = 1900

// Default days used when a descriptor names only a month.
const (
	defaultLowDay  = 1
	defaultHighDay = 30
)

var (
	parenthetical = regexp.MustCompile(`\s*\(`)
	rangeSep      = regexp.MustCompile(`\s*-\s*`)
	nonWord       = regexp.MustCompile(`\W+`)

	qualitativeDays = map[string]int{"early": 5, "mid": 15, "late": 25}
)

// BloomRange is a bloom window within a single calendar year.
type BloomRange struct {
	Low       int    `json:"low"`  // day of year
	High      int    `json:"high"` // day of year
	LowLabel  string `json:"lowLabel"`
	HighLabel string `json:"highLabel"`
}

// ParseBloom parses values such as "Early May", "Mid May - Late June" or
// "June - August (sporadic rebloom)". Parenthetical comments are dropped.
func ParseBloom(s string) (BloomRange, bool) {
	s = strings.TrimSpace(parenthetical.Split(s, 2)[0])
	if s == "" {
		return BloomRange{}, false
	}

	parts := rangeSep.Split(s, -1)
	low, ok := parseDescriptor(parts[0], defaultLowDay)
	if !ok {
		return BloomRange{}, false
	}
	high, ok := parseDescriptor(parts[len(parts)-1], defaultHighDay)
	if !ok {
		return BloomRange{}, false
	}

	return BloomRange{
		Low:       low.YearDay(),
		High:      high.YearDay(),
		LowLabel:  low.Format("Jan 2"),
		HighLabel: high.Format("Jan 2"),
	}, true
}

// parseDescriptor understands "<month>", "<early|mid|late> <month>",
// "<day> <month>" and "<month> <day>".
func parseDescriptor(desc string, defaultDay int) (time.Time, bool) {
	var tokens []string
	for _, t := range nonWord.Split(strings.TrimSpace(desc), -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}

	monthTok, day := "", defaultDay
	switch {
	case len(tokens) == 1:
		monthTok = tokens[0]
	case len(tokens) >= 2:
		if d, ok := qualitativeDays[strings.ToLower(tokens[0])]; ok {
			monthTok, day = tokens[1], d
		} else if d, err := strconv.Atoi(tokens[0]); err == nil {
			monthTok, day = tokens[1], d
		} else if d, err := strconv.Atoi(tokens[1]); err == nil {
			monthTok, day = tokens[0], d
		} else {
			return time.Time{}, false
		}
	default:
		return time.Time{}, false
	}

	month, ok := parseMonth(monthTok)
	if !ok {
		return time.Time{}, false
	}
	return dateOf(month, day)
}

func parseMonth(s string) (time.Month, bool) {
	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Month(), true
		}
	}
	return 0, false
}

// dateOf rejects days that would roll over into the next month.
func dateOf(m time.Month, day int) (time.Time, bool) {
	if day < 1 {
		return time.Time{}, false
	}
	t := time.Date(referenceYear, m, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != m || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
