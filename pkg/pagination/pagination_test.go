package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"zero value defaults", Params{}, Params{Skip: 0, Limit: DefaultLimit}},
		{"negative skip clamped", Params{Skip: -5, Limit: 10}, Params{Skip: 0, Limit: 10}},
		{"limit capped", Params{Limit: 10_000}, Params{Limit: MaxLimit}},
		{"valid passthrough", Params{Skip: 20, Limit: 50}, Params{Skip: 20, Limit: 50}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("%s: Normalize() = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}
