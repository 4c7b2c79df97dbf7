package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"19.99", 1999, true},
		{"0.01", 1, true},
		{"100.5", 10050, true},
		{"19.990", 1999, true}, // trailing zero, still 2 places
		{"1000000", 100000000, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"19.999", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q: expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{1999, "19.99"},
		{100, "1.00"},
		{1, "0.01"},
		{0, "0.00"},
		{-500, "-5.00"},
		{10050, "100.50"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.in); got != tc.out {
			t.Fatalf("%d: expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestParseAmountFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"19.99", "0.01", "1.00", "12345.67"} {
		cents, err := ParseAmount(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got := FormatCents(cents); got != s {
			t.Fatalf("%q: round-trip produced %q", s, got)
		}
	}
}
