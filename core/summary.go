package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huangsam/repolens/schema"
)

// summaryLanguageFloor hides languages below this byte percentage from
// the summary's language line.
const summaryLanguageFloor = 5.0

// GenerateSummary renders the human-readable digest attached to every
// analysis. Identity and popularity lines appear only when external
// metadata was fetched.
func GenerateSummary(analysis *schema.RepositoryAnalysis) string {
	var lines []string

	if metadata := analysis.Metadata; metadata != nil {
		lines = append(lines, fmt.Sprintf("Repository: %s", metadata.FullName))
		if metadata.Description != "" {
			lines = append(lines, fmt.Sprintf("Description: %s", metadata.Description))
		}
		lines = append(lines, fmt.Sprintf(
			"Stars: %d, Forks: %d, Open Issues: %d",
			metadata.Stars, metadata.Forks, metadata.OpenIssues))
	} else {
		lines = append(lines, fmt.Sprintf("Repository: %s", analysis.URL))
	}

	if lang := analysis.ProjectInfo.PrimaryLanguage; lang != "" {
		lines = append(lines, fmt.Sprintf("Primary Language: %s", lang))
	}

	metrics := analysis.CodeMetrics
	lines = append(lines, fmt.Sprintf(
		"Total Files: %d, Lines of Code: %d, Size: %d KB",
		metrics.TotalFiles, metrics.TotalLOC, metrics.TotalSize/1024))

	lines = append(lines, fmt.Sprintf(
		"Contributors: %d, Total Commits: %d",
		len(analysis.GitAnalysis.Contributors), analysis.GitAnalysis.TotalCommits))

	if frameworks := analysis.ProjectInfo.Frameworks; len(frameworks) > 0 {
		lines = append(lines, fmt.Sprintf("Frameworks: %s", strings.Join(frameworks, ", ")))
	}
	if types := analysis.ProjectInfo.ProjectTypes; len(types) > 0 {
		lines = append(lines, fmt.Sprintf("Project Types: %s", strings.Join(types, ", ")))
	}

	if top := topLanguages(metrics.LanguageStats); len(top) > 0 {
		lines = append(lines, fmt.Sprintf("Languages: %s", strings.Join(top, ", ")))
	}

	return strings.Join(lines, "\n")
}

// topLanguages lists languages above the floor, alphabetically so the
// summary is stable between runs.
func topLanguages(stats map[string]schema.LanguageStat) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	var top []string
	for _, name := range names {
		if stat := stats[name]; stat.Percentage > summaryLanguageFloor {
			top = append(top, fmt.Sprintf("%s (%.1f%%)", stat.Language, stat.Percentage))
		}
	}
	return top
}
