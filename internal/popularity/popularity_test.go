package popularity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   float64
	}{
		{"most visited", "google.com", 105.41e9},
		{"org domain", "wikipedia.org", 4.8e9},
		{"unknown domain", "obscuresite.com", DefaultScore},
		{"empty domain", "", DefaultScore},
		{"case sensitive", "Google.com", DefaultScore},
	}

	table := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Score(tt.domain))
		})
	}
}

func TestNewWithOverrides(t *testing.T) {
	table := New(map[string]float64{
		"example.com": 7e9,
		"google.com":  1,
		"broken.com":  -5,
	})

	assert.Equal(t, 7e9, table.Score("example.com"))
	assert.Equal(t, 1.0, table.Score("google.com"))
	assert.Equal(t, DefaultScore, table.Score("broken.com"))

	// overrides never leak into other tables
	assert.Equal(t, 105.41e9, Default().Score("google.com"))
}

func TestEntries(t *testing.T) {
	entries := Default().Entries()
	require.Len(t, entries, 10)
	assert.Equal(t, "google.com", entries[0].Domain)
	assert.Equal(t, "baidu.com", entries[len(entries)-1].Domain)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].MonthlyVisits, entries[i].MonthlyVisits)
	}
}
