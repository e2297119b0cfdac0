package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"100", 10000, true},
		{"12.34", 1234, true},
		{"12.345", 1235, true}, // rounds half up
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseAmount(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseAmount(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseAmount(%q) expected error", tc.in)
			}
			continue
		}
		if m.Cents != tc.cents {
			t.Fatalf("ParseAmount(%q) = %d cents, want %d", tc.in, m.Cents, tc.cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{12500, "125"},
		{1250, "12.5"},
		{1234, "12.34"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{`100`, 10000, true},
		{`"100"`, 10000, true}, // numeric string coerced
		{`12.5`, 1250, true},
		{`"abc"`, 0, false},
		{`-1`, 0, false},
	}
	for _, tc := range cases {
		var m Money
		err := m.UnmarshalJSON([]byte(tc.in))
		if tc.ok && err != nil {
			t.Fatalf("unmarshal %s unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("unmarshal %s expected error", tc.in)
			}
			continue
		}
		if m.Cents != tc.cents {
			t.Fatalf("unmarshal %s = %d cents, want %d", tc.in, m.Cents, tc.cents)
		}
	}
}
