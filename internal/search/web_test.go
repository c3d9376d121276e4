package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/f4ah6o/hypersearch-go/internal/popularity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	urls     []string
	err      error
	panics   bool
	gotN     int
	gotQuery string
}

func (f *fakeProvider) Search(_ context.Context, query string, n int) ([]string, error) {
	f.gotN = n
	f.gotQuery = query
	if f.panics {
		panic("provider exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.urls, nil
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"www prefix", "https://www.google.com/search?q=x", "google.com", true},
		{"no www", "http://reddit.com/r/golang", "reddit.com", true},
		{"non com tld", "https://obscuresite.net/page", "obscuresite.com", true},
		{"subdomain keeps first label", "https://en.wikipedia.org/wiki/Go", "en.com", true},
		{"no dot after label", "http://localhost/page", "", false},
		{"not http", "ftp://files.example.com/", "", false},
		{"not a url", "Error: nothing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDomain(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankerScore(t *testing.T) {
	r := NewRanker(&fakeProvider{}, popularity.Default())

	assert.Equal(t, 105.41e9, r.Score("https://www.google.com/search?q=x"))
	assert.Equal(t, 1.0, r.Score("https://obscuresite.net/page"))
	assert.Equal(t, 1.0, r.Score("not a url"))
	// wikipedia.org is unreachable through the .com simplification
	assert.Equal(t, 1.0, r.Score("https://en.wikipedia.org/wiki/Go"))
}

func TestRank(t *testing.T) {
	provider := &fakeProvider{urls: []string{
		"https://obscure.net/a",
		"https://blog.net/golang-tips",
		"https://www.reddit.com/r/programming",
		"https://www.google.com/search?q=x",
	}}
	r := NewRanker(provider, popularity.Default())

	out := r.Rank(context.Background(), "GoLang", 3)
	require.True(t, out.OK())

	assert.Equal(t, 6, provider.gotN)
	assert.Equal(t, "GoLang", provider.gotQuery)
	assert.Equal(t, []Result{
		{Target: "https://www.google.com/search?q=x", Score: 105.41e9},
		{Target: "https://www.reddit.com/r/programming", Score: 5.3e9},
		{Target: "https://blog.net/golang-tips", Score: 1},
	}, out.Results)
}

func TestRankRelevanceBreaksTies(t *testing.T) {
	provider := &fakeProvider{urls: []string{
		"https://first.net/a",
		"https://second.net/b",
		"https://third.net/flutter",
		"https://fourth.net/c",
		"https://fifth.net/dart",
	}}
	r := NewRanker(provider, popularity.Default())

	out := r.Rank(context.Background(), "flutter dart", 5)
	require.True(t, out.OK())

	targets := make([]string, 0, len(out.Results))
	for _, res := range out.Results {
		targets = append(targets, res.Target)
	}
	assert.Equal(t, []string{
		"https://third.net/flutter",
		"https://fifth.net/dart",
		"https://first.net/a",
		"https://second.net/b",
		"https://fourth.net/c",
	}, targets)
}

func TestRankNeverExceedsMax(t *testing.T) {
	var urls []string
	for i := 0; i < 25; i++ {
		urls = append(urls, fmt.Sprintf("https://site%d.org/page", i))
	}
	r := NewRanker(&fakeProvider{urls: urls}, popularity.Default())

	for _, limit := range []int{0, 1, 5, 10, 30} {
		out := r.Rank(context.Background(), "page", limit)
		require.True(t, out.OK())
		assert.LessOrEqual(t, len(out.Results), limit)
		for _, res := range out.Results {
			assert.GreaterOrEqual(t, res.Score, 0.0)
		}
	}
}

func TestRankProviderError(t *testing.T) {
	r := NewRanker(&fakeProvider{err: errors.New("connection refused")}, popularity.Default())

	out := r.Rank(context.Background(), "golang", 5)
	require.False(t, out.OK())
	assert.Equal(t, []Result{{Target: "Error: connection refused", Score: 0}}, out.Display())
}

func TestRankRecoversPanic(t *testing.T) {
	r := NewRanker(&fakeProvider{panics: true}, popularity.Default())

	out := r.Rank(context.Background(), "golang", 5)
	require.False(t, out.OK())
	assert.Equal(t, "Error: provider exploded", out.Display()[0].Target)
}
