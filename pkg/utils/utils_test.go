package utils

import (
	"math"
	"testing"
	"time"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{
			name:  "round to 2 decimals",
			input: 123.456789,
			want:  123.46,
		},
		{
			name:  "already 2 decimals",
			input: 123.45,
			want:  123.45,
		},
		{
			name:  "half away from zero",
			input: 0.125,
			want:  0.13,
		},
		{
			name:  "negative",
			input: -8884.8788,
			want:  -8884.88,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound2Idempotent(t *testing.T) {
	for _, v := range []float64{0, 1.005, 8884.878867, 6618.5649, -3.14159, 1e7 / 3} {
		once := Round2(v)
		if Round2(once) != once {
			t.Errorf("Round2(Round2(%v)) = %v, want %v", v, Round2(once), once)
		}
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{name: "finite number", input: 123.45, want: true},
		{name: "infinity", input: math.Inf(1), want: false},
		{name: "negative infinity", input: math.Inf(-1), want: false},
		{name: "NaN", input: math.NaN(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.input); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate() = %v", got)
	}

	for _, bad := range []string{"", "2024-13-01", "2024/01/01", "2024-01-01T00:00:00Z", "2023-02-29"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{
			name:  "same day next month",
			start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			n:     1,
			want:  time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "clamp to leap february",
			start: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			n:     1,
			want:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "year rollover keeps day",
			start: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			n:     12,
			want:  time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "zero offset",
			start: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			n:     0,
			want:  time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.start, tt.n); !got.Equal(tt.want) {
				t.Errorf("AddMonths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthIndex(t *testing.T) {
	a := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if MonthIndex(b)-MonthIndex(a) != 1 {
		t.Errorf("expected consecutive month indexes, got %d and %d", MonthIndex(a), MonthIndex(b))
	}
}
