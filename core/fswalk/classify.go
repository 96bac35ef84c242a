// Package fswalk builds the repository directory tree: it enumerates
// directories recursively and classifies every file along the way.
package fswalk

import (
	"crypto/md5"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/repolens/schema"
)

// commentMarkers holds the per-extension comment syntax used by the
// line scanner. An empty string means "not applicable".
type commentMarkers struct {
	Line       string
	BlockStart string
	BlockEnd   string
}

// commentTable maps a lowercased extension to its comment markers.
// This is a heuristic table, not a lexer: markers inside string literals
// are misclassified and that is accepted behavior.
var commentTable = map[string]commentMarkers{
	"rs": {"//", "/*", "*/"}, "js": {"//", "/*", "*/"}, "ts": {"//", "/*", "*/"},
	"jsx": {"//", "/*", "*/"}, "tsx": {"//", "/*", "*/"}, "c": {"//", "/*", "*/"},
	"cpp": {"//", "/*", "*/"}, "cc": {"//", "/*", "*/"}, "cxx": {"//", "/*", "*/"},
	"h": {"//", "/*", "*/"}, "hpp": {"//", "/*", "*/"}, "java": {"//", "/*", "*/"},
	"scala": {"//", "/*", "*/"}, "kt": {"//", "/*", "*/"}, "cs": {"//", "/*", "*/"},
	"go": {"//", "/*", "*/"}, "php": {"//", "/*", "*/"}, "swift": {"//", "/*", "*/"},
	"py": {"#", `"""`, `"""`}, "sh": {"#", `"""`, `"""`}, "bash": {"#", `"""`, `"""`},
	"zsh": {"#", `"""`, `"""`}, "fish": {"#", `"""`, `"""`}, "rb": {"#", `"""`, `"""`},
	"pl": {"#", `"""`, `"""`}, "r": {"#", `"""`, `"""`},
	"html": {"", "<!--", "-->"}, "xml": {"", "<!--", "-->"}, "svg": {"", "<!--", "-->"},
	"css": {"", "/*", "*/"}, "scss": {"", "/*", "*/"}, "sass": {"", "/*", "*/"}, "less": {"", "/*", "*/"},
	"sql": {"--", "/*", "*/"},
	"hs":  {"--", "{-", "-}"},
	"ml":  {"", "(*", "*)"}, "mli": {"", "(*", "*)"},
}

// languageTable maps a lowercased extension to its language name.
// Files with unknown or absent extensions get no language and are
// excluded from per-language aggregation.
var languageTable = map[string]string{
	"rs": "Rust", "py": "Python", "js": "JavaScript", "ts": "TypeScript",
	"jsx": "JavaScript", "tsx": "TypeScript", "java": "Java", "c": "C",
	"cpp": "C++", "cc": "C++", "cxx": "C++", "h": "C/C++ Header", "hpp": "C++ Header",
	"cs": "C#", "go": "Go", "php": "PHP", "rb": "Ruby", "pl": "Perl",
	"swift": "Swift", "kt": "Kotlin", "scala": "Scala", "hs": "Haskell",
	"ml": "OCaml", "mli": "OCaml", "r": "R", "m": "Objective-C", "mm": "Objective-C++",
	"sh": "Shell", "bash": "Shell", "zsh": "Shell", "fish": "Shell", "ps1": "PowerShell",
	"html": "HTML", "htm": "HTML", "css": "CSS", "scss": "SCSS", "sass": "Sass",
	"less": "Less", "xml": "XML", "json": "JSON", "yaml": "YAML", "yml": "YAML",
	"toml": "TOML", "ini": "INI", "md": "Markdown", "sql": "SQL",
	"dockerfile": "Dockerfile", "makefile": "Makefile", "cmake": "CMake",
	"proto": "Protocol Buffers", "graphql": "GraphQL", "vue": "Vue",
	"svelte": "Svelte", "tex": "LaTeX",
}

// binaryExtensions is the fixed set of extensions treated as binary
// regardless of content: images, archives, executables, office documents.
var binaryExtensions = map[string]struct{}{
	"exe": {}, "dll": {}, "so": {}, "dylib": {}, "bin": {}, "obj": {}, "o": {},
	"a": {}, "lib": {}, "jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {},
	"ico": {}, "svg": {}, "mp3": {}, "mp4": {}, "avi": {}, "mov": {}, "wmv": {},
	"flv": {}, "zip": {}, "tar": {}, "gz": {}, "rar": {}, "7z": {}, "bz2": {},
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {}, "ppt": {}, "pptx": {},
}

// Classifier inspects one file at a time and produces a FileRecord.
// The marker and language tables are constructed configuration; there
// is no mutable global registry.
type Classifier struct {
	maxFileSize  int64
	previewLines int
	markers      map[string]commentMarkers
	languages    map[string]string
}

// NewClassifier creates a classifier with the default tables and caps.
func NewClassifier() *Classifier {
	return &Classifier{
		maxFileSize:  schema.MaxFileSize,
		previewLines: schema.PreviewLines,
		markers:      commentTable,
		languages:    languageTable,
	}
}

// Classify inspects the file at absPath and produces a FileRecord keyed
// by relPath. Files above the size cap skip content inspection entirely
// but still get a content hash, which supports external deduplication.
func (c *Classifier) Classify(absPath, relPath string, size int64) (schema.FileRecord, error) {
	name := filepath.Base(absPath)
	ext := extensionOf(name)

	rec := schema.FileRecord{
		Path:      filepath.ToSlash(relPath),
		Name:      name,
		Extension: ext,
		SizeBytes: size,
	}

	hash, err := hashFile(absPath)
	if err != nil {
		return schema.FileRecord{}, err
	}
	rec.Hash = hash

	if size > c.maxFileSize {
		rec.IsBinary = true
		rec.MIMEType = "application/octet-stream"
		return rec, nil
	}

	binary, err := c.isBinary(absPath, ext)
	if err != nil {
		return schema.FileRecord{}, err
	}
	rec.IsBinary = binary
	rec.IsText = !binary
	rec.MIMEType = mimeFromExtension(ext, binary)

	if lang, ok := c.languages[ext]; ok {
		rec.Language = lang
	}

	if binary {
		return rec, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return schema.FileRecord{}, err
	}

	// Best-effort UTF-8: invalid sequences are substituted, never fatal.
	text := strings.ToValidUTF8(string(content), "�")
	rec.Encoding = "utf-8"

	lines := splitLines(text)
	total := len(lines)
	blank := countBlankLines(lines)
	comment := c.countCommentLines(lines, ext)
	loc := total - blank - comment

	rec.LinesOfCode = &loc
	rec.BlankLines = &blank
	rec.CommentLines = &comment

	if total > 0 {
		n := min(c.previewLines, total)
		rec.ContentPreview = strings.Join(lines[:n], "\n")
	}

	return rec, nil
}

// isBinary reads at most the first 512 bytes and reports whether the file
// should be treated as binary: a null byte in the sniff window or an
// extension from the fixed binary set. Either signal is sufficient.
func (c *Classifier) isBinary(absPath, ext string) (bool, error) {
	if _, ok := binaryExtensions[ext]; ok {
		return true, nil
	}

	f, err := os.Open(absPath)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, schema.BinarySniffLen)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, err
	}
	for _, b := range buf[:n] {
		if b == 0 {
			return true, nil
		}
	}
	return false, nil
}

// countCommentLines runs the 1-state-bit scanner over trimmed lines.
// Blank lines never count as comments, even inside an open block, so the
// blank and comment counts cannot overlap and LOC cannot go negative.
func (c *Classifier) countCommentLines(lines []string, ext string) int {
	m, ok := c.markers[ext]
	if !ok {
		return 0
	}

	count := 0
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m.BlockStart != "" && m.BlockEnd != "" {
			if inBlock {
				count++
				if strings.Contains(trimmed, m.BlockEnd) {
					inBlock = false
				}
				continue
			}
			if strings.Contains(trimmed, m.BlockStart) {
				count++
				// An end marker anywhere on the opening line keeps the
				// block closed; marker positions are not tracked.
				if !strings.Contains(trimmed, m.BlockEnd) {
					inBlock = true
				}
				continue
			}
		}

		if m.Line != "" && strings.HasPrefix(trimmed, m.Line) {
			count++
		}
	}
	return count
}

// countBlankLines counts lines that trim to empty.
func countBlankLines(lines []string) int {
	count := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			count++
		}
	}
	return count
}

// splitLines splits text into lines, terminator agnostic. A single
// trailing newline does not produce a phantom empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// extensionOf returns the lowercased extension without the leading dot,
// or "" when the name has none.
func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// mimeFromExtension resolves a MIME type from the extension, falling back
// to a generic type by binary flag when the platform table has no entry.
func mimeFromExtension(ext string, binary bool) string {
	if ext != "" {
		if t := mime.TypeByExtension("." + ext); t != "" {
			// Drop parameters like "; charset=utf-8".
			if idx := strings.Index(t, ";"); idx != -1 {
				t = t[:idx]
			}
			return strings.TrimSpace(t)
		}
	}
	if binary {
		return "application/octet-stream"
	}
	return ""
}

// hashFile computes the MD5 hex digest over the raw file bytes.
func hashFile(absPath string) (string, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", absPath, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
