// Package gitwork manages the local working directory used for clones.
package gitwork

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Manager places clones under a shared work directory, one subdirectory
// per repository name.
type Manager struct {
	workDir string
}

// NewManager returns a manager rooted at workDir. The directory is
// expected to exist; contract validation creates it.
func NewManager(workDir string) *Manager {
	return &Manager{workDir: workDir}
}

// ClonePath is where a repository with the given name ends up.
func (m *Manager) ClonePath(repoName string) string {
	return filepath.Join(m.workDir, repoName)
}

// Clone removes any stale checkout and clones cloneURL fresh. History
// analysis needs full history, so the clone is never shallow.
func (m *Manager) Clone(ctx context.Context, cloneURL, repoName string) (string, error) {
	repoPath := m.ClonePath(repoName)

	if _, err := os.Stat(repoPath); err == nil {
		if err := os.RemoveAll(repoPath); err != nil {
			return "", fmt.Errorf("remove stale clone %s: %w", repoPath, err)
		}
	}

	_, err := git.PlainCloneContext(ctx, repoPath, false, &git.CloneOptions{
		URL: cloneURL,
	})
	if err != nil {
		return "", fmt.Errorf("clone %s: %w", cloneURL, err)
	}
	return repoPath, nil
}

// Cleanup deletes a clone after analysis unless the caller asked to
// keep it.
func (m *Manager) Cleanup(repoPath string, keep bool) error {
	if keep || repoPath == "" {
		return nil
	}
	return os.RemoveAll(repoPath)
}
