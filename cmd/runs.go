package cmd

import (
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/repolens/internal/contract"
)

const (
	defaultRunListLimit = 20
	timeDisplayLayout   = "2006-01-02 15:04:05"
	timeDisplayUnit     = time.Millisecond
)

// runsCmd shows the tracked analysis-run history.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent analysis runs.",
	Long: `List recent analysis runs from the run-tracking database,
newest first.

Examples:
  # Show the last 20 runs
  repolens runs

  # Show more history
  repolens runs --limit 100`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runRuns(); err != nil {
			contract.LogFatal("Cannot list runs", err)
		}
	},
}

func runRuns() error {
	store := openRunStore()
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(viper.GetInt("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		contract.LogInfo("No runs recorded yet")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Run", "Repository", "Started", "Duration", "Files", "Commits", "Status"})

	var data [][]string
	for _, run := range runs {
		duration := "-"
		if run.EndTime != nil {
			duration = run.EndTime.Sub(run.StartTime).Round(timeDisplayUnit).String()
		}
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			run.RepoURL,
			run.StartTime.Local().Format(timeDisplayLayout),
			duration,
			strconv.Itoa(run.TotalFiles),
			strconv.Itoa(run.TotalCommits),
			run.Status,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
