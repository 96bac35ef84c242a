package gitstats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/repolens/schema"
)

var testAuthor = object.Signature{Name: "Alice", Email: "alice@example.com"}

// commitFile writes rel into the worktree and commits it with the given
// author timestamp. Returns the commit hash.
func commitFile(t *testing.T, repo *git.Repository, dir, rel, message string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(message+"\n"), 0o644))
	_, err = wt.Add(rel)
	require.NoError(t, err)

	sig := testAuthor
	sig.When = when
	hash, err := wt.Commit(message, &git.CommitOptions{Author: &sig, Parents: parents})
	require.NoError(t, err)
	return hash
}

// initTestRepo creates a repository with three commits by one author,
// touching one more file per commit, across two calendar months.
func initTestRepo(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	commitFile(t, repo, dir, "a.txt", "first commit", time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC))
	commitFile(t, repo, dir, "b.txt", "second commit", time.Date(2023, 1, 20, 12, 0, 0, 0, time.UTC))
	head := commitFile(t, repo, dir, "c.txt", "third commit", time.Date(2023, 2, 5, 12, 0, 0, 0, time.UTC))
	return dir, repo, head
}

func TestAnalyzeThreeCommits(t *testing.T) {
	dir, repo, head := initTestRepo(t)
	_, err := repo.CreateTag("v1.0.0", head, nil)
	require.NoError(t, err)

	analysis, err := NewAnalyzer().Analyze(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.TotalCommits)
	require.Len(t, analysis.Contributors, 1)
	assert.Equal(t, "Alice", analysis.Contributors[0].Login)
	assert.Equal(t, 3, analysis.Contributors[0].Contributions)
	assert.Len(t, analysis.RecentCommits, 3)

	// The walk runs newest first.
	assert.Equal(t, head.String(), analysis.RecentCommits[0].SHA)
	assert.Equal(t, "third commit", analysis.RecentCommits[0].Message)

	require.NotNil(t, analysis.FirstCommitDate)
	require.NotNil(t, analysis.LastCommitDate)
	assert.True(t, analysis.FirstCommitDate.Equal(time.Date(2023, 2, 5, 12, 0, 0, 0, time.UTC)))
	assert.True(t, analysis.LastCommitDate.Equal(time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, map[string]int{"2023-01": 2, "2023-02": 1}, analysis.CommitFrequency)

	assert.Equal(t, 1, analysis.BranchCount)
	assert.Equal(t, 1, analysis.TagCount)
}

func TestAnalyzeTouchCounts(t *testing.T) {
	dir, _, _ := initTestRepo(t)

	analysis, err := NewAnalyzer().Analyze(dir)
	require.NoError(t, err)

	// a.txt appears in all three commit trees, b.txt in two, c.txt in one.
	require.Len(t, analysis.MostTouchedFiles, 3)
	assert.Equal(t, "a.txt", analysis.MostTouchedFiles[0].Path)
	assert.Equal(t, 3, analysis.MostTouchedFiles[0].Touches)
	assert.Equal(t, "b.txt", analysis.MostTouchedFiles[1].Path)
	assert.Equal(t, 2, analysis.MostTouchedFiles[1].Touches)
	assert.Equal(t, "c.txt", analysis.MostTouchedFiles[2].Path)
	assert.Equal(t, 1, analysis.MostTouchedFiles[2].Touches)
}

func TestAnalyzeMergeHistoryTimeOrder(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	// A side branch commit newer than the whole first-parent line.
	base := commitFile(t, repo, dir, "a.txt", "base", time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC))
	mainline := commitFile(t, repo, dir, "b.txt", "mainline", time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC))
	branch := commitFile(t, repo, dir, "c.txt", "branch", time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC), base)
	commitFile(t, repo, dir, "d.txt", "merge", time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC), mainline, branch)

	analysis, err := NewAnalyzer().Analyze(dir)
	require.NoError(t, err)
	require.Len(t, analysis.RecentCommits, 4)

	messages := make([]string, len(analysis.RecentCommits))
	for i, commit := range analysis.RecentCommits {
		messages[i] = commit.Message
	}
	assert.Equal(t, []string{"merge", "branch", "mainline", "base"}, messages)

	require.NotNil(t, analysis.FirstCommitDate)
	require.NotNil(t, analysis.LastCommitDate)
	assert.True(t, analysis.FirstCommitDate.Equal(time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC)))
	assert.True(t, analysis.LastCommitDate.Equal(time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestAnalyzeCaps(t *testing.T) {
	dir, _, head := initTestRepo(t)

	capped := &Analyzer{maxCommits: 2, maxTreeEntries: 1, recentLimit: 1, topTouched: 5}
	analysis, err := capped.Analyze(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.TotalCommits)
	require.Len(t, analysis.RecentCommits, 1)
	assert.Equal(t, head.String(), analysis.RecentCommits[0].SHA)

	// Each commit tree contributes exactly one entry, and entries walk
	// in name order, so only a.txt accumulates touches.
	require.Len(t, analysis.MostTouchedFiles, 1)
	assert.Equal(t, "a.txt", analysis.MostTouchedFiles[0].Path)
	assert.Equal(t, 2, analysis.MostTouchedFiles[0].Touches)
}

func TestAnalyzeNotARepository(t *testing.T) {
	_, err := NewAnalyzer().Analyze(t.TempDir())
	assert.Error(t, err)
}

func TestAnalyzeEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = NewAnalyzer().Analyze(dir)
	assert.Error(t, err)
}

func TestRankContributorsTieBreak(t *testing.T) {
	ranked := rankContributors(map[string]*schema.Contributor{
		"b:b@x": {Login: "bob", Contributions: 2},
		"a:a@x": {Login: "alice", Contributions: 2},
		"c:c@x": {Login: "carol", Contributions: 5},
	})

	logins := make([]string, len(ranked))
	for i, c := range ranked {
		logins[i] = c.Login
	}
	assert.Equal(t, []string{"carol", "alice", "bob"}, logins)
}
