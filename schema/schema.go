// Package schema has the data model, constants and helpers for all parts of repolens.
package schema

import "time"

// FileRecord describes a single classified file within the repository tree.
// Line counts are present only when the file was classified as text and
// read under the size cap; binary files never carry them.
type FileRecord struct {
	Path           string `json:"path" yaml:"path"`                                 // Relative path from the repository root
	Name           string `json:"name" yaml:"name"`                                 // Base file name
	Extension      string `json:"extension,omitempty" yaml:"extension,omitempty"`   // Extension without the leading dot, lowercased
	SizeBytes      int64  `json:"size_bytes" yaml:"size_bytes"`                     // Size from filesystem metadata
	LinesOfCode    *int   `json:"lines_of_code,omitempty" yaml:"lines_of_code,omitempty"`
	BlankLines     *int   `json:"blank_lines,omitempty" yaml:"blank_lines,omitempty"`
	CommentLines   *int   `json:"comment_lines,omitempty" yaml:"comment_lines,omitempty"`
	Language       string `json:"language,omitempty" yaml:"language,omitempty"`     // Resolved from the extension table
	MIMEType       string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	IsBinary       bool   `json:"is_binary" yaml:"is_binary"`
	IsText         bool   `json:"is_text" yaml:"is_text"`
	Encoding       string `json:"encoding,omitempty" yaml:"encoding,omitempty"`     // Label of the decode used for text files
	Hash           string `json:"hash" yaml:"hash"`                                 // MD5 over raw bytes, always computed
	ContentPreview string `json:"content_preview,omitempty" yaml:"content_preview,omitempty"`
}

// TotalLines returns the total line count of a text file, or zero when
// the file carries no line counts.
func (f *FileRecord) TotalLines() int {
	var total int
	if f.LinesOfCode != nil {
		total += *f.LinesOfCode
	}
	if f.BlankLines != nil {
		total += *f.BlankLines
	}
	if f.CommentLines != nil {
		total += *f.CommentLines
	}
	return total
}

// LOC returns the lines-of-code count, treating files without one
// (binary or size-capped) as zero.
func (f *FileRecord) LOC() int {
	if f.LinesOfCode == nil {
		return 0
	}
	return *f.LinesOfCode
}

// DirectoryRecord is one level of the repository tree. It owns its files
// and child directories exclusively; the structure is a strict tree with
// no shared nodes. TotalSize is built bottom-up: direct file sizes plus
// the totals of all descendants.
type DirectoryRecord struct {
	Path           string            `json:"path" yaml:"path"`
	Name           string            `json:"name" yaml:"name"`
	FileCount      int               `json:"file_count" yaml:"file_count"`
	SubdirCount    int               `json:"subdirectory_count" yaml:"subdirectory_count"`
	TotalSize      int64             `json:"total_size" yaml:"total_size"`
	Files          []FileRecord      `json:"files" yaml:"files"`
	Subdirectories []DirectoryRecord `json:"subdirectories" yaml:"subdirectories"`
}

// LanguageStat aggregates per-language counters across all text files
// that resolved to that language.
type LanguageStat struct {
	Language     string  `json:"language" yaml:"language"`
	FileCount    int     `json:"file_count" yaml:"file_count"`
	LinesOfCode  int     `json:"lines_of_code" yaml:"lines_of_code"`
	BlankLines   int     `json:"blank_lines" yaml:"blank_lines"`
	CommentLines int     `json:"comment_lines" yaml:"comment_lines"`
	TotalBytes   int64   `json:"total_bytes" yaml:"total_bytes"`
	Percentage   float64 `json:"percentage" yaml:"percentage"` // Share of total analyzed text bytes
}

// CodeMetrics holds repository-wide totals derived from the directory tree.
// Totals cover text files only; the rankings cover every file.
type CodeMetrics struct {
	TotalFiles        int                     `json:"total_files" yaml:"total_files"`
	TotalLines        int                     `json:"total_lines" yaml:"total_lines"`
	TotalLOC          int                     `json:"total_loc" yaml:"total_loc"`
	TotalBlankLines   int                     `json:"total_blank_lines" yaml:"total_blank_lines"`
	TotalCommentLines int                     `json:"total_comment_lines" yaml:"total_comment_lines"`
	TotalSize         int64                   `json:"total_size" yaml:"total_size"`
	LanguageStats     map[string]LanguageStat `json:"language_stats" yaml:"language_stats"`
	AverageFileSize   float64                 `json:"average_file_size" yaml:"average_file_size"`
	LargestFiles      []FileRecord            `json:"largest_files" yaml:"largest_files"`
	MostComplexFiles  []FileRecord            `json:"most_complex_files" yaml:"most_complex_files"`
}

// ConfigFile is a recognized manifest with optional structured extraction.
// Content is always retained verbatim; Dependencies and Scripts are nil
// when the ecosystem has no extractor or parsing failed.
type ConfigFile struct {
	Path         string            `json:"path" yaml:"path"`
	Ecosystem    Ecosystem         `json:"ecosystem" yaml:"ecosystem"`
	Content      string            `json:"content" yaml:"content"`
	Dependencies map[string]string `json:"parsed_dependencies,omitempty" yaml:"parsed_dependencies,omitempty"`
	Scripts      map[string]string `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

// DocumentationFile is a recognized documentation artifact (README,
// CHANGELOG, LICENSE and friends).
type DocumentationFile struct {
	Path      string   `json:"path" yaml:"path"`
	Kind      string   `json:"kind" yaml:"kind"`
	Content   string   `json:"content" yaml:"content"`
	WordCount int      `json:"word_count" yaml:"word_count"`
	HasBadges bool     `json:"has_badges" yaml:"has_badges"`
	HasTOC    bool     `json:"has_toc" yaml:"has_toc"`
	Sections  []string `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// ProjectInfo carries inferred project-type and technology tags.
// Tags are additive; nothing here is mutually exclusive.
type ProjectInfo struct {
	PrimaryLanguage   string   `json:"primary_language,omitempty" yaml:"primary_language,omitempty"`
	ProjectTypes      []string `json:"project_type" yaml:"project_type"`
	Frameworks        []string `json:"frameworks" yaml:"frameworks"`
	BuildTools        []string `json:"build_tools" yaml:"build_tools"`
	PackageManagers   []string `json:"package_managers" yaml:"package_managers"`
	TestingFrameworks []string `json:"testing_frameworks" yaml:"testing_frameworks"`
	CICDTools         []string `json:"ci_cd_tools" yaml:"ci_cd_tools"`
	DeploymentConfigs []string `json:"deployment_configs" yaml:"deployment_configs"`
}

// SecurityInfo carries lexical security heuristics. OutdatedDependencies
// lists "name: version" specs whose version contains a wildcard or the
// literal "latest"; no vulnerability database is consulted.
type SecurityInfo struct {
	HasSecurityPolicy    bool     `json:"has_security_policy" yaml:"has_security_policy"`
	HasDependabot        bool     `json:"has_dependabot" yaml:"has_dependabot"`
	HasCodeQL            bool     `json:"has_codeql" yaml:"has_codeql"`
	OutdatedDependencies []string `json:"outdated_dependencies" yaml:"outdated_dependencies"`
}

// Contributor identifies someone who committed to the repository. When
// derived from local history only Login (author name) and Contributions
// are meaningful; API-fetched contributors fill the remaining fields and
// replace the git-derived list in the final aggregate.
type Contributor struct {
	Login         string `json:"login" yaml:"login"`
	ID            int64  `json:"id" yaml:"id"`
	AvatarURL     string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	ProfileURL    string `json:"html_url,omitempty" yaml:"html_url,omitempty"`
	Contributions int    `json:"contributions" yaml:"contributions"`
}

// CommitRecord is one commit observed during the bounded history walk.
// Additions, Deletions and FilesChanged are placeholders; the bounded
// walk does not compute line-level diff stats.
type CommitRecord struct {
	SHA          string    `json:"sha" yaml:"sha"`
	Message      string    `json:"message" yaml:"message"`
	Author       string    `json:"author" yaml:"author"`
	Date         time.Time `json:"date" yaml:"date"`
	Additions    int       `json:"additions" yaml:"additions"`
	Deletions    int       `json:"deletions" yaml:"deletions"`
	FilesChanged int       `json:"files_changed" yaml:"files_changed"`
}

// TouchedFile pairs a path with how many visited commit trees contained it.
type TouchedFile struct {
	Path    string `json:"path" yaml:"path"`
	Touches int    `json:"touches" yaml:"touches"`
}

// GitAnalysis is the outcome of the bounded history walk. TotalCommits
// counts visited commits only and must not be read as full history depth
// on large repositories.
type GitAnalysis struct {
	TotalCommits     int            `json:"total_commits" yaml:"total_commits"`
	Contributors     []Contributor  `json:"contributors" yaml:"contributors"`
	RecentCommits    []CommitRecord `json:"recent_commits" yaml:"recent_commits"`
	CommitFrequency  map[string]int `json:"commit_frequency" yaml:"commit_frequency"` // "YYYY-MM" -> count
	MostTouchedFiles []TouchedFile  `json:"most_active_files" yaml:"most_active_files"`
	BranchCount      int            `json:"branch_count" yaml:"branch_count"`
	TagCount         int            `json:"tag_count" yaml:"tag_count"`
	FirstCommitDate  *time.Time     `json:"first_commit_date,omitempty" yaml:"first_commit_date,omitempty"`
	LastCommitDate   *time.Time     `json:"last_commit_date,omitempty" yaml:"last_commit_date,omitempty"`
}

// RepositoryAnalysis is the aggregate record produced once per analysis
// run. It is never mutated after the orchestrator returns it, except to
// attach the optional Narrative.
type RepositoryAnalysis struct {
	URL           string              `json:"url" yaml:"url"`
	AnalyzedAt    time.Time           `json:"analyzed_at" yaml:"analyzed_at"`
	Metadata      *RepoMetadata       `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	FileStructure DirectoryRecord     `json:"file_structure" yaml:"file_structure"`
	CodeMetrics   CodeMetrics         `json:"code_metrics" yaml:"code_metrics"`
	GitAnalysis   GitAnalysis         `json:"git_analysis" yaml:"git_analysis"`
	ProjectInfo   ProjectInfo         `json:"project_info" yaml:"project_info"`
	ConfigFiles   []ConfigFile        `json:"config_files" yaml:"config_files"`
	Documentation []DocumentationFile `json:"documentation" yaml:"documentation"`
	SecurityInfo  SecurityInfo        `json:"security_info" yaml:"security_info"`
	Releases      []Release           `json:"releases" yaml:"releases"`
	RecentIssues  []Issue             `json:"recent_issues" yaml:"recent_issues"`
	Summary       string              `json:"analysis_summary" yaml:"analysis_summary"`
	Narrative     string              `json:"ai_insights,omitempty" yaml:"ai_insights,omitempty"`
}
