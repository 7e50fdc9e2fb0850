package main

import "testing"

func TestFormatMillis(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0:00.000"},
		{500, "0:00.500"},
		{61250, "1:01.250"},
		{-10, "0:00.000"},
	}
	for _, tc := range cases {
		if got := formatMillis(tc.ms); got != tc.want {
			t.Errorf("formatMillis(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}

func TestParseMillis(t *testing.T) {
	cases := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{"1500", 1500, false},
		{"0:03", 3000, false},
		{"1:01.250", 61250, false},
		{"2:30.5", 150500, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1:75", 0, true},
	}
	for _, tc := range cases {
		got, err := parseMillis(tc.arg)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseMillis(%q) expected error", tc.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMillis(%q): %v", tc.arg, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseMillis(%q) = %d, want %d", tc.arg, got, tc.want)
		}
	}
}
