package gitwork

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initSourceRepo builds a one-commit repository that can serve as a
// local clone source.
func initSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# src\n"), 0o644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Alice", Email: "alice@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestClonePath(t *testing.T) {
	manager := NewManager("/work")
	assert.Equal(t, filepath.Join("/work", "widget"), manager.ClonePath("widget"))
}

func TestCloneFreshAndStale(t *testing.T) {
	src := initSourceRepo(t)
	manager := NewManager(t.TempDir())

	repoPath, err := manager.Clone(context.Background(), src, "widget")
	require.NoError(t, err)
	assert.Equal(t, manager.ClonePath("widget"), repoPath)
	assert.FileExists(t, filepath.Join(repoPath, "README.md"))

	// A stale checkout at the same path gets replaced.
	stale := filepath.Join(repoPath, "leftover.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	repoPath, err = manager.Clone(context.Background(), src, "widget")
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(repoPath, "README.md"))
}

func TestCleanup(t *testing.T) {
	manager := NewManager(t.TempDir())
	repoPath := manager.ClonePath("widget")
	require.NoError(t, os.MkdirAll(repoPath, 0o755))

	require.NoError(t, manager.Cleanup(repoPath, true))
	assert.DirExists(t, repoPath)

	require.NoError(t, manager.Cleanup(repoPath, false))
	assert.NoDirExists(t, repoPath)

	require.NoError(t, manager.Cleanup("", false))
}
