package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/repolens/core"
	"github.com/huangsam/repolens/core/agg"
	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/internal/outwriter"
	"github.com/huangsam/repolens/schema"
)

// exportCmd flattens an analysis into a per-file dataset.
var exportCmd = &cobra.Command{
	Use:   "export <repo-url|path>",
	Short: "Export the per-file dataset to Parquet.",
	Long: `Run the analysis pipeline and export one row per classified file
to a Parquet dataset for downstream querying.

A GitHub URL triggers the full remote pipeline; any other argument is
treated as a local path.

Examples:
  # Export a remote repository
  repolens export https://github.com/fatih/color --output-file files.parquet

  # Export a local checkout, then query it
  repolens export ~/src/myproject --output-file files.parquet
  duckdb -c "SELECT language, count(*) FROM read_parquet('files.parquet') GROUP BY 1"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := runExport(args[0]); err != nil {
			contract.LogFatal("Cannot run export", err)
		}
	},
}

func runExport(target string) error {
	if format := viper.GetString("format"); format != string(schema.ParquetOut) {
		return fmt.Errorf("unsupported export format '%s'. only parquet is supported", format)
	}
	if cfg.OutputFile == "" {
		return fmt.Errorf("export requires --output-file")
	}

	analyzer := core.NewAnalyzer(cfg)

	var analysis *schema.RepositoryAnalysis
	var err error
	if strings.Contains(target, "github.com") {
		analysis, err = analyzer.AnalyzeRemote(rootCtx, target)
	} else {
		analysis, err = analyzer.AnalyzeLocal(target)
	}
	if err != nil {
		return err
	}

	files := agg.Flatten(&analysis.FileStructure)
	rows := outwriter.ConvertFileRecords(analysis, files)
	if err := outwriter.WriteFilesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	contract.LogInfo(fmt.Sprintf("Exported %d file records to: %s", len(rows), cfg.OutputFile))
	return nil
}
