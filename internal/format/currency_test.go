package format

import (
	"math"
	"regexp"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "$0.00"},
		{"single cent", 1, "$0.01"},
		{"under a dollar", 99, "$0.99"},
		{"whole dollar", 100, "$1.00"},
		{"grouping", 123456, "$1,234.56"},
		{"millions", 123456789, "$1,234,567.89"},
		{"negative", -123456, "-$1,234.56"},
		{"negative cents", -5, "-$0.05"},
		{"max int64", math.MaxInt64, "$92,233,720,368,547,758.07"},
		{"min int64", math.MinInt64, "-$92,233,720,368,547,758.08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.cents); got != tt.want {
				t.Errorf("FormatCurrency(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestFormatCurrencyShape(t *testing.T) {
	shape := regexp.MustCompile(`^\$\d{1,3}(,\d{3})*\.\d{2}$`)
	for _, cents := range []int64{0, 7, 10, 999, 1000, 99999, 100000, 1000000, 31415926535} {
		got := FormatCurrency(cents)
		if !shape.MatchString(got) {
			t.Errorf("FormatCurrency(%d) = %q does not match %s", cents, got, shape)
		}
	}
}

func TestToMajorUnits(t *testing.T) {
	tests := []struct {
		cents int64
		want  float64
	}{
		{0, 0},
		{15795, 157.95},
		{20348, 203.48},
		{-250, -2.5},
	}

	for _, tt := range tests {
		if got := ToMajorUnits(tt.cents); got != tt.want {
			t.Errorf("ToMajorUnits(%d) = %v, want %v", tt.cents, got, tt.want)
		}
	}
}
