package main

import "testing"

func TestResolveChartPoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name             string
		flag, configured int
		want             int
	}{
		{"flag set", 5, 9, 5},
		{"flag unset falls back to config", 0, 12, 12},
		{"negative flag falls back to config", -1, 9, 9},
	}
	for _, tc := range cases {
		if got := resolveChartPoints(tc.flag, tc.configured); got != tc.want {
			t.Fatalf("%s: resolveChartPoints(%d, %d) = %d, want %d",
				tc.name, tc.flag, tc.configured, got, tc.want)
		}
	}
}
