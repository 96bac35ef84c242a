// Package gh is a small GitHub REST v3 client covering the endpoints
// the analysis pipeline consumes. It is deliberately not a full SDK.
package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	giturls "github.com/whilp/git-urls"

	"github.com/huangsam/repolens/schema"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "repolens/1.0"
)

// Client talks to the GitHub REST API. A zero token means anonymous
// access with the usual low rate limits.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient returns a client with a sane request timeout.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// ParseRepoURL extracts (owner, repo) from an HTTPS, SSH or scp-style
// GitHub URL. Non-GitHub hosts are rejected.
func ParseRepoURL(raw string) (string, string, error) {
	parsed, err := giturls.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse repository URL %q: %w", raw, err)
	}
	if parsed.Hostname() != "github.com" {
		return "", "", fmt.Errorf("not a GitHub repository URL: %q", raw)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("invalid GitHub repository URL: %q", raw)
	}
	owner := segments[0]
	repo := strings.TrimSuffix(segments[1], ".git")
	return owner, repo, nil
}

// RepoMetadata fetches the repository record and, best effort, its
// per-language byte counts. A failed languages call leaves the map nil.
func (c *Client) RepoMetadata(ctx context.Context, owner, repo string) (*schema.RepoMetadata, error) {
	var metadata schema.RepoMetadata
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	if err := c.getJSON(ctx, url, &metadata); err != nil {
		return nil, err
	}

	var languages map[string]int64
	langURL := fmt.Sprintf("%s/repos/%s/%s/languages", c.baseURL, owner, repo)
	if err := c.getJSON(ctx, langURL, &languages); err == nil {
		metadata.Languages = languages
	}

	return &metadata, nil
}

// Contributors fetches the ranked contributor list.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]schema.Contributor, error) {
	var contributors []schema.Contributor
	url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=100", c.baseURL, owner, repo)
	if err := c.getJSON(ctx, url, &contributors); err != nil {
		return nil, err
	}
	return contributors, nil
}

// Releases fetches up to limit published releases, newest first.
func (c *Client) Releases(ctx context.Context, owner, repo string, limit int) ([]schema.Release, error) {
	var releases []schema.Release
	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d", c.baseURL, owner, repo, limit)
	if err := c.getJSON(ctx, url, &releases); err != nil {
		return nil, err
	}
	return releases, nil
}

// issueWire is the REST shape of an issue. The issues endpoint also
// returns pull requests; those carry a pull_request key and are
// dropped during conversion.
type issueWire struct {
	Number    int            `json:"number"`
	Title     string         `json:"title"`
	State     string         `json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ClosedAt  *time.Time     `json:"closed_at"`
	User      schema.Account `json:"user"`
	Labels    []struct {
		Name string `json:"name"`
	} `json:"labels"`
	Comments    int             `json:"comments"`
	PullRequest json.RawMessage `json:"pull_request"`
}

// RecentIssues fetches up to limit recently updated issues, excluding
// pull requests.
func (c *Client) RecentIssues(ctx context.Context, owner, repo string, limit int) ([]schema.Issue, error) {
	var wires []issueWire
	url := fmt.Sprintf("%s/repos/%s/%s/issues?state=all&per_page=%d&sort=updated", c.baseURL, owner, repo, limit)
	if err := c.getJSON(ctx, url, &wires); err != nil {
		return nil, err
	}

	issues := make([]schema.Issue, 0, len(wires))
	for _, wire := range wires {
		if len(wire.PullRequest) > 0 {
			continue
		}
		labels := make([]string, 0, len(wire.Labels))
		for _, label := range wire.Labels {
			labels = append(labels, label.Name)
		}
		issues = append(issues, schema.Issue{
			Number:    wire.Number,
			Title:     wire.Title,
			State:     wire.State,
			CreatedAt: wire.CreatedAt,
			UpdatedAt: wire.UpdatedAt,
			ClosedAt:  wire.ClosedAt,
			Author:    wire.User,
			Labels:    labels,
			Comments:  wire.Comments,
		})
	}
	return issues, nil
}

// getJSON performs one authenticated GET and decodes the body. Any
// non-2xx status is an error carrying a response snippet.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: %s: %s", url, resp.Status, strings.TrimSpace(string(snippet)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
