package search

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/sirupsen/logrus"
)

// DefaultWebResults is the number of web results shown per query.
const DefaultWebResults = 5

// domainPattern captures the first label after the scheme and optional www.
var domainPattern = regexp.MustCompile(`https?://(www\.)?([^./]+)\.`)

// Provider returns raw result URLs for a query.
type Provider interface {
	Search(ctx context.Context, query string, n int) ([]string, error)
}

// Scorer maps a domain to its popularity score.
type Scorer interface {
	Score(domain string) float64
}

// Ranker orders provider results by popularity, then by keyword relevance.
type Ranker struct {
	provider Provider
	scorer   Scorer
}

// NewRanker creates a Ranker backed by provider and scorer.
func NewRanker(provider Provider, scorer Scorer) *Ranker {
	return &Ranker{
		provider: provider,
		scorer:   scorer,
	}
}

// ExtractDomain returns the simplified domain of rawURL: the first label
// after the scheme (and an optional "www.") followed by ".com", whatever the
// real top-level domain is. The popularity table is keyed the same way.
func ExtractDomain(rawURL string) (string, bool) {
	m := domainPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[2] + ".com", true
}

// Score returns the popularity score for rawURL. URLs without a recognizable
// domain get a score of 1.
func (r *Ranker) Score(rawURL string) float64 {
	domain, ok := ExtractDomain(rawURL)
	if !ok {
		return 1
	}
	return r.scorer.Score(domain)
}

// Rank asks the provider for twice maxResults URLs, scores them, sorts them
// and returns at most maxResults.
func (r *Ranker) Rank(ctx context.Context, query string, maxResults int) (out Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = Failed(fmt.Errorf("%v", p))
		}
	}()

	if maxResults < 0 {
		maxResults = 0
	}

	urls, err := r.provider.Search(ctx, query, maxResults*2)
	if err != nil {
		logrus.WithError(err).WithField("query", query).Warn("Web search failed")
		return Failed(err)
	}

	words := keywords(query)
	type candidate struct {
		result   Result
		relevant bool
	}
	candidates := make([]candidate, 0, len(urls))
	for _, u := range urls {
		candidates = append(candidates, candidate{
			result:   Result{Target: u, Score: r.Score(u)},
			relevant: containsAny(u, words),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.result.Score != b.result.Score {
			return a.result.Score > b.result.Score
		}
		return a.relevant && !b.relevant
	})

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.result)
	}

	logrus.WithFields(logrus.Fields{"query": query, "fetched": len(urls)}).Debug("Ranked web results")
	return Succeeded(truncate(results, maxResults))
}
