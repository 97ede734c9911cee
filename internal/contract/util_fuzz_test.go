package contract

import (
	"testing"
)

// FuzzParseNow fuzzes the reference time parser with arbitrary strings.
func FuzzParseNow(f *testing.F) {
	seeds := []string{"", "now", "2024-03-15", "2024-03-15T12:00:00Z", "3 days ago", "99999999 years ago", "garbage"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		got, err := ParseNow(s, fixedNow)
		if err == nil && got.IsZero() && s != "" {
			t.Logf("zero time parsed from %q", s)
		}
	})
}
