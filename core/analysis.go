package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/huangsam/repolens/core/agg"
	"github.com/huangsam/repolens/core/confscan"
	"github.com/huangsam/repolens/core/fswalk"
	"github.com/huangsam/repolens/core/gitstats"
	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/internal/gh"
	"github.com/huangsam/repolens/internal/gitwork"
	"github.com/huangsam/repolens/schema"
)

// Analyzer wires the pipeline stages together. The stages run as a
// single sequential pass per repository; every stage consumes data
// passed in and returns a freshly built result.
type Analyzer struct {
	cfg     *contract.Config
	github  *gh.Client
	clones  *gitwork.Manager
	walker  *fswalk.Walker
	history *gitstats.Analyzer
}

// NewAnalyzer builds an analyzer from validated config.
func NewAnalyzer(cfg *contract.Config) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		github:  gh.NewClient(cfg.Token),
		clones:  gitwork.NewManager(cfg.WorkDir),
		walker:  fswalk.NewWalker(fswalk.NewClassifier()),
		history: gitstats.NewAnalyzer(),
	}
}

// AnalyzeRemote runs the full pipeline against a GitHub repository URL.
// Metadata fetch, clone and history are mandatory; contributor, release
// and issue fetches degrade to empty results with a warning.
func (a *Analyzer) AnalyzeRemote(ctx context.Context, repoURL string) (*schema.RepositoryAnalysis, error) {
	// --- 1. Resolve the repository identity ---
	owner, repo, err := gh.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	contract.LogInfo(fmt.Sprintf("Analyzing repository %s/%s", owner, repo))

	// --- 2. Fetch GitHub data ---
	metadata, err := a.github.RepoMetadata(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetch repository metadata: %w", err)
	}

	contributors, err := a.github.Contributors(ctx, owner, repo)
	if err != nil {
		contract.LogWarn("Failed to fetch contributors", err)
	}
	releases, err := a.github.Releases(ctx, owner, repo, schema.ReleaseFetchLimit)
	if err != nil {
		contract.LogWarn("Failed to fetch releases", err)
	}
	issues, err := a.github.RecentIssues(ctx, owner, repo, schema.IssueFetchLimit)
	if err != nil {
		contract.LogWarn("Failed to fetch recent issues", err)
	}

	// --- 3. Clone and walk history ---
	cloneURL := metadata.CloneURL
	if cloneURL == "" {
		cloneURL = repoURL
	}
	contract.LogInfo(fmt.Sprintf("Cloning %s", cloneURL))
	repoPath, err := a.clones.Clone(ctx, cloneURL, repo)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := a.clones.Cleanup(repoPath, a.cfg.KeepClone); err != nil {
			contract.LogWarn("Failed to clean up clone", err)
		}
	}()

	contract.LogInfo("Analyzing git history")
	gitAnalysis, err := a.history.Analyze(repoPath)
	if err != nil {
		return nil, err
	}
	// API contributors are richer than the name:email fallback derived
	// from commits, so they win when the fetch succeeded.
	if len(contributors) > 0 {
		gitAnalysis.Contributors = contributors
	}

	// --- 4. Structural analysis of the working tree ---
	analysis, err := a.analyzeTree(repoPath, repoURL, metadata, gitAnalysis)
	if err != nil {
		return nil, err
	}
	analysis.Releases = releases
	analysis.RecentIssues = issues
	analysis.Summary = GenerateSummary(analysis)
	return analysis, nil
}

// AnalyzeLocal runs the structural pipeline against an existing working
// tree without any network calls. Git history is included when the path
// is a repository and skipped with a warning when it is not.
func (a *Analyzer) AnalyzeLocal(path string) (*schema.RepositoryAnalysis, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", path, err)
	}
	contract.LogInfo(fmt.Sprintf("Analyzing local tree %s", absPath))

	gitAnalysis := &schema.GitAnalysis{CommitFrequency: make(map[string]int)}
	if fromHistory, err := a.history.Analyze(absPath); err != nil {
		contract.LogWarn("Skipping git history", err)
	} else {
		gitAnalysis = fromHistory
	}

	analysis, err := a.analyzeTree(absPath, absPath, nil, gitAnalysis)
	if err != nil {
		return nil, err
	}
	analysis.Summary = GenerateSummary(analysis)
	return analysis, nil
}

// analyzeTree runs walk, metrics, config/doc scans, detection and
// security against a local root. Only a failed root walk is fatal; all
// sub-scans isolate per-item failures internally.
func (a *Analyzer) analyzeTree(root, url string, metadata *schema.RepoMetadata, gitAnalysis *schema.GitAnalysis) (*schema.RepositoryAnalysis, error) {
	contract.LogInfo("Walking file structure")
	tree, err := a.walker.Walk(root)
	if err != nil {
		return nil, err
	}

	contract.LogInfo("Computing code metrics")
	metrics := agg.ComputeMetrics(&tree)

	contract.LogInfo("Scanning configuration and documentation")
	configs := confscan.ScanConfigFiles(root)
	docs := confscan.ScanDocumentation(root)

	contract.LogInfo("Detecting project type")
	projectInfo := DetectProjectInfo(configs, &tree)
	securityInfo := ScanSecurity(root, &tree, configs)

	return &schema.RepositoryAnalysis{
		URL:           url,
		AnalyzedAt:    time.Now().UTC(),
		Metadata:      metadata,
		FileStructure: tree,
		CodeMetrics:   metrics,
		GitAnalysis:   *gitAnalysis,
		ProjectInfo:   projectInfo,
		ConfigFiles:   configs,
		Documentation: docs,
		SecurityInfo:  securityInfo,
		Releases:      []schema.Release{},
		RecentIssues:  []schema.Issue{},
	}, nil
}
