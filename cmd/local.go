package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/huangsam/repolens/core"
	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/internal/outwriter"
)

// localCmd analyzes an existing working tree without network access.
var localCmd = &cobra.Command{
	Use:   "local [path]",
	Short: "Analyze an already-cloned working tree.",
	Long: `Run the structural analysis pipeline against a local directory
without fetching anything from GitHub.

Git history statistics are included when the path is a git repository
and skipped with a warning otherwise.

Examples:
  # Analyze the current directory
  repolens local

  # Analyze a checkout and render a text report
  repolens local ~/src/myproject --output text`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		if err := runLocal(path); err != nil {
			contract.LogFatal("Cannot run local analysis", err)
		}
	},
}

func runLocal(path string) error {
	store := openRunStore()
	defer func() { _ = store.Close() }()

	start := time.Now()
	runID, err := store.BeginRun(start, path)
	if err != nil {
		contract.LogWarn("Failed to record run start", err)
	}

	analysis, err := core.NewAnalyzer(cfg).AnalyzeLocal(path)
	if endErr := store.EndRun(runID, time.Now(), analysis, err); endErr != nil {
		contract.LogWarn("Failed to record run end", endErr)
	}
	if err != nil {
		return err
	}

	return outwriter.NewOutWriter().WriteAnalysis(analysis, cfg)
}
