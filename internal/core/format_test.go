package core

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{-40, "$-40.00"},
		{-1234567.891, "$-1,234,567.89"},
		{999.999, "$1,000.00"},
		{0.5, "$0.50"},
		{math.NaN(), "$0.00"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.out {
			t.Fatalf("FormatCurrency(%v) = %q, expected %q", tc.in, got, tc.out)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{0, "0.0%"},
		{12.34, "12.3%"},
		{100, "100.0%"},
		{math.NaN(), "0.0%"},
	}
	for _, tc := range cases {
		if got := FormatPercent(tc.in); got != tc.out {
			t.Fatalf("FormatPercent(%v) = %q, expected %q", tc.in, got, tc.out)
		}
	}
}
