package search

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLocalResults is the number of local files shown per query.
	DefaultLocalResults = 5
	// LocalMatchScore is the score given to every matching file.
	LocalMatchScore = 2.0
)

// ScannerOptions configures a Scanner.
type ScannerOptions struct {
	// MaxResults caps the number of files returned. Zero means DefaultLocalResults.
	MaxResults int
	// SkipDirs lists directory base names that are not descended into.
	SkipDirs []string
}

// Scanner finds files whose base names contain one of the query words.
type Scanner struct {
	maxResults int
	skipDirs   map[string]bool
}

// NewScanner creates a Scanner from opts.
func NewScanner(opts ScannerOptions) *Scanner {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultLocalResults
	}
	skip := make(map[string]bool, len(opts.SkipDirs))
	for _, name := range opts.SkipDirs {
		skip[name] = true
	}
	return &Scanner{
		maxResults: opts.MaxResults,
		skipDirs:   skip,
	}
}

// Scan walks root top-down and returns up to the configured number of
// matching files, each scored LocalMatchScore. The files of a directory
// come before anything found in its subdirectories, and entries are visited
// in name order. When nothing matches the result is a single NoLocalMatches
// entry with score 0.
func (s *Scanner) Scan(query, root string) Outcome {
	if root == "" {
		root = "."
	}

	info, err := os.Stat(root)
	if err != nil {
		return Failed(fmt.Errorf("failed to scan %s: %w", root, err))
	}
	if !info.IsDir() {
		return Failed(fmt.Errorf("failed to scan %s: not a directory", root))
	}

	var results []Result
	if err := s.scanDir(root, keywords(query), &results); err != nil {
		return Failed(fmt.Errorf("failed to scan %s: %w", root, err))
	}

	if len(results) == 0 {
		return Succeeded([]Result{{Target: NoLocalMatches, Score: 0}})
	}

	sortByScore(results)
	return Succeeded(truncate(results, s.maxResults))
}

// scanDir appends the matching files of dir to results and then descends
// into its subdirectories. Symlinked directories count as directories but
// are not followed. Unreadable subdirectories are skipped.
func (s *Scanner) scanDir(dir string, words []string, results *[]Result) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var subdirs []string
	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		isDir, isLink := entryKind(path, d)
		if isDir {
			if !isLink && !s.skipDirs[d.Name()] {
				subdirs = append(subdirs, path)
			}
			continue
		}
		if containsAny(d.Name(), words) {
			*results = append(*results, Result{Target: path, Score: LocalMatchScore})
		}
	}

	for _, sub := range subdirs {
		if len(*results) >= s.maxResults {
			return nil
		}
		if err := s.scanDir(sub, words, results); err != nil {
			logrus.WithError(err).WithField("path", sub).Debug("Skipping unreadable directory")
		}
	}
	return nil
}

// entryKind reports whether d is a directory, resolving symlinks, and
// whether d itself is a symlink.
func entryKind(path string, d fs.DirEntry) (isDir, isLink bool) {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.IsDir(), false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir(), true
}
