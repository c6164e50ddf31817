// ABOUTME: Per-field match strategies for the filter engine
// ABOUTME: Substring by default, numeric ranges for zone-style fields

package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Matcher decides whether a row's field value satisfies a requested value.
type Matcher func(rowValue string, want any) bool

// Matcher names accepted in configuration.
const (
	MatchSubstring    = "substring"
	MatchNumericRange = "numeric_range"
	MatchExact        = "exact"
)

// Substring is the default matcher: case-insensitive containment.
func Substring(rowValue string, want any) bool {
	w, err := cast.ToStringE(want)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(rowValue), strings.ToLower(w))
}

// Exact matches the whole value, ignoring case and surrounding space.
func Exact(rowValue string, want any) bool {
	w, err := cast.ToStringE(want)
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(rowValue), strings.TrimSpace(w))
}

// NumericRange matches when the requested number lies within the range
// encoded in the row value, e.g. "5-8 (some note)" covers 5..8 inclusive.
func NumericRange(rowValue string, want any) bool {
	n, err := requestedInt(want)
	if err != nil {
		return false
	}
	r, ok := ParseRange(rowValue)
	if !ok {
		return false
	}
	return r.Contains(n)
}

func requestedInt(want any) (int, error) {
	if s, ok := want.(string); ok {
		return strconv.Atoi(strings.TrimSpace(s))
	}
	return cast.ToIntE(want)
}

// Range is an inclusive integer interval.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool {
	return n >= r.Low && n <= r.High
}

var nonDigits = regexp.MustCompile(`\D+`)

// ParseRange splits s on runs of non-digits and takes the first number as the
// low bound and the last as the high bound. A single number gives low == high.
func ParseRange(s string) (Range, bool) {
	var nums []int
	for _, tok := range nonDigits.Split(s, -1) {
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return Range{}, false
	}
	return Range{Low: nums[0], High: nums[len(nums)-1]}, true
}

// MatcherByName resolves a configured matcher name.
func MatcherByName(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MatchSubstring:
		return Substring, nil
	case MatchNumericRange:
		return NumericRange, nil
	case MatchExact:
		return Exact, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatcher, name)
	}
}
