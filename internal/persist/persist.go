// Package persist writes web search results to timestamped text files.
package persist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/f4ah6o/hypersearch-go/internal/search"
	"github.com/sirupsen/logrus"
)

const (
	filePrefix      = "search_results_"
	timestampLayout = "20060102_150405"
	separatorWidth  = 50
)

// Persister saves result lists into a directory.
type Persister struct {
	dir string
	now func() time.Time
}

// New creates a Persister writing into dir. An empty dir means the
// current working directory.
func New(dir string) *Persister {
	if dir == "" {
		dir = "."
	}
	return &Persister{
		dir: dir,
		now: time.Now,
	}
}

// Filename returns the name used for a save at t.
func Filename(t time.Time) string {
	return filePrefix + t.Format(timestampLayout) + ".txt"
}

// Save writes the query header, a separator line and one URL per line.
// Scores are not written. A file from an earlier save in the same second is
// overwritten.
//
// Returns the path of the written file.
func (p *Persister) Save(results []search.Result, query string) (string, error) {
	path := filepath.Join(p.dir, Filename(p.now()))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "Search Query: %s\n", query)
	fmt.Fprintln(w, strings.Repeat("=", separatorWidth))
	for _, res := range results {
		fmt.Fprintln(w, res.Target)
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close results file: %w", err)
	}

	logrus.WithFields(logrus.Fields{"path": path, "results": len(results)}).Info("Saved search results")
	return path, nil
}
