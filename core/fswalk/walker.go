package fswalk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/schema"
)

// defaultIgnoreNames is the fixed ignore list applied on top of the
// repository's own ignore rules: version-control metadata, dependency
// caches, build output and temp/log/cache suffixes.
var defaultIgnoreNames = []string{
	".git",
	"node_modules",
	"target",
	"build",
	"dist",
	"__pycache__",
	".pytest_cache",
	".venv",
	"venv",
	".env",
	"*.log",
	"*.tmp",
	"*.cache",
}

// Walker enumerates a directory tree one level per recursive call,
// classifying files and composing DirectoryRecords bottom-up.
type Walker struct {
	classifier  *Classifier
	ignoreNames []string
}

// NewWalker creates a walker around the given classifier.
func NewWalker(classifier *Classifier) *Walker {
	return &Walker{
		classifier:  classifier,
		ignoreNames: defaultIgnoreNames,
	}
}

// Walk builds the full DirectoryRecord tree rooted at root. Failure to
// read the root itself is fatal; any failure below it is logged and the
// offending entry is omitted, so a partial failure never corrupts totals.
func (w *Walker) Walk(root string) (schema.DirectoryRecord, error) {
	if _, err := os.ReadDir(root); err != nil {
		return schema.DirectoryRecord{}, fmt.Errorf("cannot open analysis root %s: %w", root, err)
	}

	// Honor the repository's own .gitignore when present. A missing or
	// unreadable file just means no extra rules.
	var matcher *gitignore.GitIgnore
	if m, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		matcher = m
	}

	return w.walkDir(root, root, matcher), nil
}

// walkDir enumerates the direct children of current, recursing into
// surviving subdirectories. The recursion itself provides depth.
func (w *Walker) walkDir(root, current string, matcher *gitignore.GitIgnore) schema.DirectoryRecord {
	rec := schema.DirectoryRecord{
		Path: filepath.ToSlash(relativeTo(root, current)),
		Name: filepath.Base(current),
	}

	entries, err := os.ReadDir(current)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to read directory %s", current), err)
		return rec
	}

	for _, entry := range entries {
		name := entry.Name()
		if w.shouldIgnoreName(name) {
			continue
		}

		absPath := filepath.Join(current, name)
		relPath := relativeTo(root, absPath)
		if matcher != nil && matcher.MatchesPath(relPath) {
			continue
		}

		if entry.IsDir() {
			child := w.walkDir(root, absPath, matcher)
			rec.TotalSize += child.TotalSize
			rec.SubdirCount++
			rec.Subdirectories = append(rec.Subdirectories, child)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to stat %s", absPath), err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		file, err := w.classifier.Classify(absPath, relPath, info.Size())
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to classify %s", absPath), err)
			continue
		}
		rec.TotalSize += file.SizeBytes
		rec.FileCount++
		rec.Files = append(rec.Files, file)
	}

	return rec
}

// shouldIgnoreName matches an entry name against the fixed ignore list.
// A name matches when it equals the pattern after stripping any trailing
// wildcard, or starts with that stripped prefix.
func (w *Walker) shouldIgnoreName(name string) bool {
	for _, pattern := range w.ignoreNames {
		stripped := strings.TrimRight(pattern, "*")
		if name == stripped || strings.HasPrefix(name, stripped) {
			return true
		}
	}
	return false
}

// relativeTo returns path relative to root, or path itself when the two
// cannot be related.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
