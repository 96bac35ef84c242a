package fswalk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestFile creates a file under dir and returns its absolute path
// and size.
func writeTestFile(t *testing.T, dir, name, content string) (string, int64) {
	t.Helper()
	absPath := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0o644))
	info, err := os.Stat(absPath)
	require.NoError(t, err)
	return absPath, info.Size()
}

func TestClassifyRustSource(t *testing.T) {
	dir := t.TempDir()
	absPath, size := writeTestFile(t, dir, "a.rs", "// comment\nfn main() {}\n\n")

	rec, err := NewClassifier().Classify(absPath, "a.rs", size)
	require.NoError(t, err)

	assert.Equal(t, "a.rs", rec.Path)
	assert.Equal(t, "rs", rec.Extension)
	assert.Equal(t, "Rust", rec.Language)
	assert.True(t, rec.IsText)
	assert.False(t, rec.IsBinary)
	assert.Equal(t, "utf-8", rec.Encoding)
	assert.Len(t, rec.Hash, 32)

	require.NotNil(t, rec.LinesOfCode)
	require.NotNil(t, rec.BlankLines)
	require.NotNil(t, rec.CommentLines)
	assert.Equal(t, 1, *rec.LinesOfCode)
	assert.Equal(t, 1, *rec.BlankLines)
	assert.Equal(t, 1, *rec.CommentLines)
	assert.Equal(t, 3, rec.TotalLines())
}

func TestClassifyBinary(t *testing.T) {
	dir := t.TempDir()

	t.Run("null byte in sniff window", func(t *testing.T) {
		absPath, size := writeTestFile(t, dir, "blob", "ab\x00cd")
		rec, err := NewClassifier().Classify(absPath, "blob", size)
		require.NoError(t, err)

		assert.True(t, rec.IsBinary)
		assert.False(t, rec.IsText)
		assert.Nil(t, rec.LinesOfCode)
		assert.Nil(t, rec.BlankLines)
		assert.Nil(t, rec.CommentLines)
		assert.Empty(t, rec.ContentPreview)
		assert.NotEmpty(t, rec.Hash)
	})

	t.Run("binary extension without null bytes", func(t *testing.T) {
		absPath, size := writeTestFile(t, dir, "art.png", "not really an image")
		rec, err := NewClassifier().Classify(absPath, "art.png", size)
		require.NoError(t, err)

		assert.True(t, rec.IsBinary)
		assert.Nil(t, rec.LinesOfCode)
	})
}

func TestClassifySizeCap(t *testing.T) {
	dir := t.TempDir()
	absPath, size := writeTestFile(t, dir, "big.txt", "0123456789 more than the cap")

	classifier := NewClassifier()
	classifier.maxFileSize = 10

	rec, err := classifier.Classify(absPath, "big.txt", size)
	require.NoError(t, err)

	assert.True(t, rec.IsBinary)
	assert.Equal(t, "application/octet-stream", rec.MIMEType)
	assert.Nil(t, rec.LinesOfCode)
	assert.NotEmpty(t, rec.Hash, "capped files still get a content hash")
}

func TestClassifyIdempotent(t *testing.T) {
	dir := t.TempDir()
	absPath, size := writeTestFile(t, dir, "x.go", "package x\n\x00")

	first, err := NewClassifier().Classify(absPath, "x.go", size)
	require.NoError(t, err)
	second, err := NewClassifier().Classify(absPath, "x.go", size)
	require.NoError(t, err)

	assert.Equal(t, first.IsBinary, second.IsBinary)
	assert.Equal(t, first.Hash, second.Hash)
}

func TestClassifyBlockComments(t *testing.T) {
	dir := t.TempDir()
	absPath, size := writeTestFile(t, dir, "m.py", "\n\n\"\"\"doc\n\n\"\"\"\nx = 1\n")

	rec, err := NewClassifier().Classify(absPath, "m.py", size)
	require.NoError(t, err)

	// Blank lines inside the open block still count as blank, never as
	// comment, so the three counters partition the total.
	require.NotNil(t, rec.LinesOfCode)
	assert.Equal(t, 3, *rec.BlankLines)
	assert.Equal(t, 2, *rec.CommentLines)
	assert.Equal(t, 1, *rec.LinesOfCode)
	assert.Equal(t, 6, rec.TotalLines())
}

func TestClassifyOneLineBlockComment(t *testing.T) {
	dir := t.TempDir()
	absPath, size := writeTestFile(t, dir, "b.rs", "/* one line */\nfn f() {}\n")

	rec, err := NewClassifier().Classify(absPath, "b.rs", size)
	require.NoError(t, err)

	assert.Equal(t, 1, *rec.CommentLines)
	assert.Equal(t, 1, *rec.LinesOfCode)
}

func TestClassifyEndMarkerBeforeStart(t *testing.T) {
	dir := t.TempDir()
	absPath, size := writeTestFile(t, dir, "c.rs", "*/ code /*\nfn f() {}\n")

	rec, err := NewClassifier().Classify(absPath, "c.rs", size)
	require.NoError(t, err)

	// An end marker anywhere on the opening line keeps the block
	// closed, so the next line is still code.
	assert.Equal(t, 1, *rec.CommentLines)
	assert.Equal(t, 1, *rec.LinesOfCode)
}

func TestClassifyPreview(t *testing.T) {
	dir := t.TempDir()
	absPath, size := writeTestFile(t, dir, "p.txt", "first\nsecond\nthird\n")

	classifier := NewClassifier()
	classifier.previewLines = 2

	rec, err := classifier.Classify(absPath, "p.txt", size)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", rec.ContentPreview)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b", ""}, splitLines("a\nb\n\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n"))
}
