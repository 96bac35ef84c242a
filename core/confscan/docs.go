package confscan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/schema"
)

// docPattern pairs a documentation filename prefix with its kind tag.
// Matching is case-insensitive on the prefix.
type docPattern struct {
	Prefix string
	Kind   string
}

var docPatterns = []docPattern{
	{"README", "readme"},
	{"CHANGELOG", "changelog"},
	{"CONTRIBUTING", "contributing"},
	{"LICENSE", "license"},
	{"CODE_OF_CONDUCT", "code_of_conduct"},
	{"SECURITY", "security"},
	{"INSTALL", "install"},
	{"USAGE", "usage"},
	{"API", "api"},
}

// markdownHeader matches an ATX heading line and captures its title.
var markdownHeader = regexp.MustCompile(`^#+\s+(.+)$`)

// ScanDocumentation searches up to ConfigScanDepth directory levels for
// documentation files and derives lightweight structure from each:
// word count, badge/TOC presence and markdown section titles. A file
// that fails to read is skipped; the scan continues over the rest.
func ScanDocumentation(root string) []schema.DocumentationFile {
	candidates := listFilesBounded(root, schema.ConfigScanDepth)

	var docs []schema.DocumentationFile
	for _, dp := range docPatterns {
		for _, rel := range candidates {
			name := strings.ToUpper(filepath.Base(rel))
			if !strings.HasPrefix(name, dp.Prefix) {
				continue
			}

			raw, err := os.ReadFile(filepath.Join(root, rel))
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Failed to read documentation file %s", rel), err)
				continue
			}
			content := string(raw)

			docs = append(docs, schema.DocumentationFile{
				Path:      filepath.ToSlash(rel),
				Kind:      dp.Kind,
				Content:   content,
				WordCount: len(strings.Fields(content)),
				HasBadges: strings.Contains(content, "[![") || strings.Contains(content, "!["),
				HasTOC:    hasTableOfContents(content),
				Sections:  extractMarkdownSections(content),
			})
		}
	}
	return docs
}

func hasTableOfContents(content string) bool {
	return strings.Contains(strings.ToLower(content), "table of contents") ||
		strings.Contains(content, "## Contents") ||
		strings.Contains(content, "# Contents")
}

// extractMarkdownSections collects the titles of all ATX headings.
func extractMarkdownSections(content string) []string {
	var sections []string
	for _, line := range strings.Split(content, "\n") {
		if m := markdownHeader.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			sections = append(sections, m[1])
		}
	}
	return sections
}
