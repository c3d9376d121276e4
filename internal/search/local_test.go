package search

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func TestScanMatchesFileNames(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "report_flutter.txt", "notes.md")

	out := NewScanner(ScannerOptions{}).Scan("flutter", root)
	require.True(t, out.OK())
	assert.Equal(t, []Result{
		{Target: filepath.Join(root, "report_flutter.txt"), Score: LocalMatchScore},
	}, out.Results)
}

func TestScanCaseInsensitiveAnyWord(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Budget.xlsx",
		"docs/Flutter-Guide.pdf",
		"docs/deep/plan.txt",
		"unrelated.bin",
	)

	out := NewScanner(ScannerOptions{}).Scan("FLUTTER budget", root)
	require.True(t, out.OK())
	assert.Equal(t, []Result{
		{Target: filepath.Join(root, "Budget.xlsx"), Score: 2},
		{Target: filepath.Join(root, "docs", "Flutter-Guide.pdf"), Score: 2},
	}, out.Results)
}

func TestScanDirectoryNamesDoNotMatch(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "flutter/readme.md")

	out := NewScanner(ScannerOptions{}).Scan("flutter", root)
	require.True(t, out.OK())
	assert.Equal(t, []Result{{Target: NoLocalMatches, Score: 0}}, out.Results)
}

func TestScanNoMatches(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.txt", "b.txt")

	out := NewScanner(ScannerOptions{}).Scan("zzz_nomatch", root)
	require.True(t, out.OK())
	assert.Equal(t, []Result{{Target: "No matching local files found.", Score: 0}}, out.Display())
}

func TestScanLimitsResults(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 12; i++ {
		writeFiles(t, root, fmt.Sprintf("match_%02d.txt", i))
	}

	out := NewScanner(ScannerOptions{}).Scan("match", root)
	require.True(t, out.OK())
	assert.Len(t, out.Results, DefaultLocalResults)
	assert.Equal(t, filepath.Join(root, "match_00.txt"), out.Results[0].Target)

	out = NewScanner(ScannerOptions{MaxResults: 8}).Scan("match", root)
	assert.Len(t, out.Results, 8)
}

func TestScanSkipDirs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, ".git/flutter.pack", "node_modules/flutter.js", "src/flutter.go")

	out := NewScanner(ScannerOptions{SkipDirs: []string{".git", "node_modules"}}).Scan("flutter", root)
	require.True(t, out.OK())
	assert.Equal(t, []Result{
		{Target: filepath.Join(root, "src", "flutter.go"), Score: 2},
	}, out.Results)
}

func TestScanMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	out := NewScanner(ScannerOptions{}).Scan("flutter", root)
	require.False(t, out.OK())

	shown := out.Display()
	require.Len(t, shown, 1)
	assert.Contains(t, shown[0].Target, "Error: ")
	assert.Equal(t, 0.0, shown[0].Score)
}

func TestScanRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "flutter.txt")

	out := NewScanner(ScannerOptions{}).Scan("flutter", filepath.Join(root, "flutter.txt"))
	assert.False(t, out.OK())
}

func TestScanListsFilesBeforeSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a/flutter1.txt", "a/flutter2.txt", "a/flutter3.txt", "a/flutter4.txt", "a/flutter5.txt",
		"z_flutter.txt",
	)

	out := NewScanner(ScannerOptions{}).Scan("flutter", root)
	require.True(t, out.OK())
	require.Len(t, out.Results, DefaultLocalResults)
	assert.Equal(t, filepath.Join(root, "z_flutter.txt"), out.Results[0].Target)
	for i, res := range out.Results[1:] {
		assert.Equal(t, filepath.Join(root, "a", fmt.Sprintf("flutter%d.txt", i+1)), res.Target)
	}
}

func TestScanSymlinks(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "target/notes.txt", "flutter_real.txt")
	if err := os.Symlink(filepath.Join(root, "target"), filepath.Join(root, "flutter_dir_link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "flutter_real.txt"), filepath.Join(root, "flutter_file_link")))
	writeFiles(t, root, "target/flutter_inside.txt")

	out := NewScanner(ScannerOptions{}).Scan("flutter", root)
	require.True(t, out.OK())
	assert.Equal(t, []Result{
		{Target: filepath.Join(root, "flutter_file_link"), Score: 2},
		{Target: filepath.Join(root, "flutter_real.txt"), Score: 2},
		{Target: filepath.Join(root, "target", "flutter_inside.txt"), Score: 2},
	}, out.Results)
}
