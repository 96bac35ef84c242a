package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/repolens/schema"
)

func TestGenerateSummaryWithMetadata(t *testing.T) {
	analysis := &schema.RepositoryAnalysis{
		URL: "https://github.com/acme/widget",
		Metadata: &schema.RepoMetadata{
			FullName:    "acme/widget",
			Description: "A widget factory",
			Stars:       42,
			Forks:       7,
			OpenIssues:  3,
		},
		CodeMetrics: schema.CodeMetrics{
			TotalFiles: 12,
			TotalLOC:   3400,
			TotalSize:  20480,
			LanguageStats: map[string]schema.LanguageStat{
				"Go":       {Language: "Go", Percentage: 80.0},
				"Makefile": {Language: "Makefile", Percentage: 2.0},
				"Shell":    {Language: "Shell", Percentage: 18.0},
			},
		},
		GitAnalysis: schema.GitAnalysis{
			TotalCommits: 150,
			Contributors: []schema.Contributor{
				{Login: "alice", Contributions: 100},
				{Login: "bob", Contributions: 50},
			},
		},
		ProjectInfo: schema.ProjectInfo{
			PrimaryLanguage: "Go",
			Frameworks:      []string{"React"},
			ProjectTypes:    []string{"cli-application"},
		},
	}

	summary := GenerateSummary(analysis)
	lines := strings.Split(summary, "\n")

	assert.Equal(t, []string{
		"Repository: acme/widget",
		"Description: A widget factory",
		"Stars: 42, Forks: 7, Open Issues: 3",
		"Primary Language: Go",
		"Total Files: 12, Lines of Code: 3400, Size: 20 KB",
		"Contributors: 2, Total Commits: 150",
		"Frameworks: React",
		"Project Types: cli-application",
		"Languages: Go (80.0%), Shell (18.0%)",
	}, lines)
}

func TestGenerateSummaryLocalMode(t *testing.T) {
	analysis := &schema.RepositoryAnalysis{
		URL: "/home/me/projects/widget",
		CodeMetrics: schema.CodeMetrics{
			TotalFiles: 3,
			TotalLOC:   120,
			TotalSize:  4096,
		},
	}

	summary := GenerateSummary(analysis)

	assert.Contains(t, summary, "Repository: /home/me/projects/widget")
	assert.NotContains(t, summary, "Stars:")
	assert.NotContains(t, summary, "Description:")
	assert.Contains(t, summary, "Total Files: 3, Lines of Code: 120, Size: 4 KB")
	assert.Contains(t, summary, "Contributors: 0, Total Commits: 0")
}

func TestTopLanguagesFloor(t *testing.T) {
	stats := map[string]schema.LanguageStat{
		"Go":     {Language: "Go", Percentage: 94.9},
		"YAML":   {Language: "YAML", Percentage: 5.0},
		"Python": {Language: "Python", Percentage: 5.1},
	}

	// Exactly 5% stays below the floor; only strictly greater shows.
	assert.Equal(t, []string{"Go (94.9%)", "Python (5.1%)"}, topLanguages(stats))
}
