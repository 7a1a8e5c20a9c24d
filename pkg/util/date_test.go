package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestPeriodDuration(t *testing.T) {
	tests := []struct {
		period string
		want   time.Duration
		ok     bool
	}{
		{"5d", 5 * 24 * time.Hour, true},
		{"6mo", 180 * 24 * time.Hour, true},
		{"2y", 730 * 24 * time.Hour, true},
		{"7w", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := PeriodDuration(tt.period)
		if got != tt.want || ok != tt.ok {
			t.Errorf("PeriodDuration(%q) = %v/%v, want %v/%v", tt.period, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIntervalDuration(t *testing.T) {
	if d, ok := IntervalDuration("1wk"); !ok || d != 7*24*time.Hour {
		t.Fatalf("IntervalDuration(1wk) = %v/%v", d, ok)
	}
	if _, ok := IntervalDuration("3m"); ok {
		t.Fatal("expected unknown interval to fail")
	}
}

func TestPeriodRangeFallback(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	from, to := PeriodRange("bogus", now)
	if !to.Equal(now) {
		t.Fatalf("to = %v, want now", to)
	}
	if to.Sub(from) != 180*24*time.Hour {
		t.Fatalf("range = %v, want 6mo fallback", to.Sub(from))
	}
}

func TestRound(t *testing.T) {
	if got := Round2(3.14159); got != 3.14 {
		t.Errorf("Round2 = %v", got)
	}
	if got := Round4(0.123456); got != 0.1235 {
		t.Errorf("Round4 = %v", got)
	}
	if got := Round(-2.5, 0); got != -3 {
		t.Errorf("Round(-2.5, 0) = %v, want half away from zero", got)
	}
}
