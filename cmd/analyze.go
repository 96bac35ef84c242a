package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/huangsam/repolens/core"
	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/internal/outwriter"
	"github.com/huangsam/repolens/internal/runstore"
)

// analyzeCmd runs the full remote analysis pipeline.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <repo-url>",
	Short: "Analyze a GitHub repository end to end.",
	Long: `Fetch repository metadata, clone the repository, and run the full
structural analysis pipeline against it.

The pipeline walks every file, classifies text vs binary content, counts
lines and comments per language, extracts declared dependencies from
manifests, detects project type and frameworks, runs lexical security
checks, and aggregates bounded git history statistics.

Examples:
  # Analyze a repository and print the JSON record
  repolens analyze https://github.com/fatih/color

  # Write a YAML report to a file
  repolens analyze https://github.com/fatih/color --output yaml --output-file report.yaml

  # Render a human-readable report with tables
  repolens analyze https://github.com/fatih/color --output text

  # Authenticated access for private repositories or higher rate limits
  repolens analyze https://github.com/acme/internal --token $GITHUB_TOKEN`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := runAnalyze(rootCtx, args[0]); err != nil {
			contract.LogFatal("Cannot run repository analysis", err)
		}
	},
}

// runAnalyze executes the remote pipeline with run tracking around it.
func runAnalyze(ctx context.Context, repoURL string) error {
	store := openRunStore()
	defer func() { _ = store.Close() }()

	start := time.Now()
	runID, err := store.BeginRun(start, repoURL)
	if err != nil {
		contract.LogWarn("Failed to record run start", err)
	}

	analysis, err := core.NewAnalyzer(cfg).AnalyzeRemote(ctx, repoURL)
	if endErr := store.EndRun(runID, time.Now(), analysis, err); endErr != nil {
		contract.LogWarn("Failed to record run end", endErr)
	}
	if err != nil {
		return err
	}

	return outwriter.NewOutWriter().WriteAnalysis(analysis, cfg)
}

// openRunStore opens the configured run-tracking store, degrading to a
// disabled store when the database cannot be opened.
func openRunStore() *runstore.Store {
	store, err := runstore.NewStore(cfg.RunDBPath)
	if err != nil {
		contract.LogWarn("Run tracking disabled", err)
		store, _ = runstore.NewStore("")
	}
	return store
}
