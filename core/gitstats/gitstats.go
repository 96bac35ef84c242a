// Package gitstats walks local git history with hard resource caps and
// aggregates contributor, frequency and file-touch statistics.
package gitstats

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/huangsam/repolens/schema"
)

// Analyzer bounds the history walk. The caps keep wall-clock and memory
// proportional to the limits, not to repository size.
type Analyzer struct {
	maxCommits     int // commits visited from head
	maxTreeEntries int // entries visited per commit tree
	recentLimit    int // commits retained in the recent list
	topTouched     int // paths retained in the touch ranking
}

// NewAnalyzer returns an analyzer with the default caps.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		maxCommits:     schema.MaxCommits,
		maxTreeEntries: schema.MaxTreeEntries,
		recentLimit:    schema.RecentCommitLimit,
		topTouched:     schema.TopTouchedLimit,
	}
}

// Analyze opens the repository at repoPath and walks commits reachable
// from head, newest first. An unopenable repository aborts the whole
// analysis; history is not optional.
//
// FirstCommitDate follows traversal order: it is the first commit
// visited, which is the most recent one. LastCommitDate is the oldest
// commit the bounded walk reached.
func (a *Analyzer) Analyze(repoPath string) (*schema.GitAnalysis, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", repoPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve head of %s: %w", repoPath, err)
	}

	// Committer-time order keeps merge histories newest first; the
	// default DFS order would interleave branches.
	commitIter, err := repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("read commit log of %s: %w", repoPath, err)
	}
	defer commitIter.Close()

	analysis := &schema.GitAnalysis{
		CommitFrequency: make(map[string]int),
	}
	contributors := make(map[string]*schema.Contributor)
	touches := make(map[string]int)

	visited := 0
	err = commitIter.ForEach(func(commit *object.Commit) error {
		if visited >= a.maxCommits {
			return storer.ErrStop
		}
		visited++

		when := commit.Author.When
		if analysis.FirstCommitDate == nil {
			first := when
			analysis.FirstCommitDate = &first
		}
		last := when
		analysis.LastCommitDate = &last

		analysis.CommitFrequency[when.Format("2006-01")]++

		key := commit.Author.Name + ":" + commit.Author.Email
		if entry, ok := contributors[key]; ok {
			entry.Contributions++
		} else {
			contributors[key] = &schema.Contributor{
				Login:         commit.Author.Name,
				Contributions: 1,
			}
		}

		if len(analysis.RecentCommits) < a.recentLimit {
			analysis.RecentCommits = append(analysis.RecentCommits, schema.CommitRecord{
				SHA:     commit.Hash.String(),
				Message: commit.Message,
				Author:  commit.Author.Name,
				Date:    when,
			})
		}

		a.countTreeTouches(commit, touches)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk commits of %s: %w", repoPath, err)
	}

	analysis.TotalCommits = visited
	analysis.Contributors = rankContributors(contributors)
	analysis.MostTouchedFiles = rankTouchedFiles(touches, a.topTouched)
	analysis.BranchCount = countRefs(repo.Branches())
	analysis.TagCount = countRefs(repo.Tags())

	return analysis, nil
}

// countTreeTouches walks one commit tree pre-order, bumping a per-path
// counter, and gives up after maxTreeEntries entries. A commit whose
// tree cannot be loaded contributes nothing.
func (a *Analyzer) countTreeTouches(commit *object.Commit, touches map[string]int) {
	tree, err := commit.Tree()
	if err != nil {
		return
	}
	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()

	entries := 0
	for {
		name, _, err := walker.Next()
		if err != nil {
			return // io.EOF ends the walk; other errors end it early
		}
		entries++
		if entries > a.maxTreeEntries {
			return
		}
		touches[name]++
	}
}

// rankContributors orders by contribution count descending, then login
// ascending so equal counts stay deterministic.
func rankContributors(byKey map[string]*schema.Contributor) []schema.Contributor {
	ranked := make([]schema.Contributor, 0, len(byKey))
	for _, entry := range byKey {
		ranked = append(ranked, *entry)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Contributions != ranked[j].Contributions {
			return ranked[i].Contributions > ranked[j].Contributions
		}
		return ranked[i].Login < ranked[j].Login
	})
	return ranked
}

func rankTouchedFiles(touches map[string]int, limit int) []schema.TouchedFile {
	ranked := make([]schema.TouchedFile, 0, len(touches))
	for path, count := range touches {
		ranked = append(ranked, schema.TouchedFile{Path: path, Touches: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Touches != ranked[j].Touches {
			return ranked[i].Touches > ranked[j].Touches
		}
		return ranked[i].Path < ranked[j].Path
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func countRefs(iter storer.ReferenceIter, err error) int {
	if err != nil {
		return 0
	}
	count := 0
	_ = iter.ForEach(func(*plumbing.Reference) error {
		count++
		return nil
	})
	return count
}
