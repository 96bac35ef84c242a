package schema

import "time"

// Account is a GitHub account reference as returned by the REST API.
type Account struct {
	Login     string `json:"login" yaml:"login"`
	ID        int64  `json:"id" yaml:"id"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
	HTMLURL   string `json:"html_url" yaml:"html_url"`
}

// License is the license block of the repository metadata.
type License struct {
	Key    string `json:"key" yaml:"key"`
	Name   string `json:"name" yaml:"name"`
	SPDXID string `json:"spdx_id,omitempty" yaml:"spdx_id,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

// RepoMetadata is the externally fetched repository record. The core
// pipeline treats it as opaque input; only identity and counter fields
// feed the generated summary.
type RepoMetadata struct {
	ID              int64            `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	FullName        string           `json:"full_name" yaml:"full_name"`
	Description     string           `json:"description,omitempty" yaml:"description,omitempty"`
	Homepage        string           `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	HTMLURL         string           `json:"html_url" yaml:"html_url"`
	CloneURL        string           `json:"clone_url" yaml:"clone_url"`
	Owner           Account          `json:"owner" yaml:"owner"`
	Private         bool             `json:"private" yaml:"private"`
	Fork            bool             `json:"fork" yaml:"fork"`
	Archived        bool             `json:"archived" yaml:"archived"`
	Stars           int              `json:"stargazers_count" yaml:"stargazers_count"`
	Watchers        int              `json:"watchers_count" yaml:"watchers_count"`
	Forks           int              `json:"forks_count" yaml:"forks_count"`
	OpenIssues      int              `json:"open_issues_count" yaml:"open_issues_count"`
	License         *License         `json:"license,omitempty" yaml:"license,omitempty"`
	Topics          []string         `json:"topics" yaml:"topics"`
	DefaultBranch   string           `json:"default_branch" yaml:"default_branch"`
	SizeKB          int64            `json:"size" yaml:"size"`
	Language        string           `json:"language,omitempty" yaml:"language,omitempty"`
	Languages       map[string]int64 `json:"languages,omitempty" yaml:"languages,omitempty"`
	CreatedAt       time.Time        `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" yaml:"updated_at"`
	PushedAt        time.Time        `json:"pushed_at" yaml:"pushed_at"`
}

// Release is one published release, bounded by the fetch limit.
type Release struct {
	TagName     string     `json:"tag_name" yaml:"tag_name"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Draft       bool       `json:"draft" yaml:"draft"`
	Prerelease  bool       `json:"prerelease" yaml:"prerelease"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`
	Author      Account    `json:"author" yaml:"author"`
}

// Issue is one recent issue, bounded by the fetch limit. Pull requests
// are filtered out by the client.
type Issue struct {
	Number    int        `json:"number" yaml:"number"`
	Title     string     `json:"title" yaml:"title"`
	State     string     `json:"state" yaml:"state"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" yaml:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
	Author    Account    `json:"user" yaml:"user"`
	Labels    []string   `json:"labels" yaml:"labels"`
	Comments  int        `json:"comments" yaml:"comments"`
}
