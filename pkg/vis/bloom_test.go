package vis

import (
	"testing"
	"time"
)

func yearDay(m time.Month, d int) int {
	return time.Date(referenceYear, m, d, 0, 0, 0, 0, time.UTC).YearDay()
}

func TestParseBloom(t *testing.T) {
	tests := []struct {
		in        string
		low, high int
	}{
		{"Early May", yearDay(time.May, 5), yearDay(time.May, 5)},
		{"Mid May - Late June", yearDay(time.May, 15), yearDay(time.June, 25)},
		{"May - June", yearDay(time.May, 1), yearDay(time.June, 30)},
		{"late july-september (sporadic)", yearDay(time.July, 25), yearDay(time.September, 30)},
		{"June (a few weeks)", yearDay(time.June, 1), yearDay(time.June, 30)},
		{"15 April - May 20", yearDay(time.April, 15), yearDay(time.May, 20)},
		{"Aug", yearDay(time.August, 1), yearDay(time.August, 30)},
	}
	for _, tt := range tests {
		got, ok := ParseBloom(tt.in)
		if !ok {
			t.Errorf("ParseBloom(%q) failed", tt.in)
			continue
		}
		if got.Low != tt.low || got.High != tt.high {
			t.Errorf("ParseBloom(%q) = %d..%d, want %d..%d", tt.in, got.Low, got.High, tt.low, tt.high)
		}
	}
}

func TestParseBloomEarlyMay(t *testing.T) {
	got, ok := ParseBloom("Early May")
	if !ok || got.Low != 125 || got.LowLabel != "May 5" {
		t.Errorf("unexpected %+v ok=%v", got, ok)
	}
}

func TestParseBloomJuneHighBound(t *testing.T) {
	got, ok := ParseBloom("May - June")
	if !ok || got.HighLabel != "Jun 30" {
		t.Errorf("unexpected %+v ok=%v", got, ok)
	}
}

func TestParseBloomRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"(none)",
		"Spring",
		"Sometime in May",
		"February", // defaults to Feb 30 as the high bound
		"Mid Smarch",
		"Early - Late",
	} {
		if got, ok := ParseBloom(in); ok {
			t.Errorf("ParseBloom(%q) = %+v, expected failure", in, got)
		}
	}
}
