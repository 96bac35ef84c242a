package outwriter

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/huangsam/repolens/schema"
)

var (
	sectionColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	missColor    = color.New(color.FgHiBlack)
	flagColor    = color.New(color.FgYellow, color.Bold)
)

// printTextAnalysis renders the human-readable report: the summary block
// followed by language, ranking and security tables. Tables always go to
// stdout; redirecting a rendered table into a file is not useful.
func printTextAnalysis(analysis *schema.RepositoryAnalysis) error {
	fmt.Println(sectionColor.Sprint("Overview"))
	fmt.Println(analysis.Summary)
	fmt.Println()

	if err := printLanguageTable(analysis); err != nil {
		return err
	}
	if err := printFileRankingTable("Largest Files", analysis.CodeMetrics.LargestFiles, sizeCell); err != nil {
		return err
	}
	if err := printFileRankingTable("Most Complex Files", analysis.CodeMetrics.MostComplexFiles, locCell); err != nil {
		return err
	}
	if err := printTouchedTable(analysis); err != nil {
		return err
	}
	return printSecurityTable(analysis)
}

func printLanguageTable(analysis *schema.RepositoryAnalysis) error {
	stats := analysis.CodeMetrics.LanguageStats
	if len(stats) == 0 {
		return nil
	}
	fmt.Println(sectionColor.Sprint("Languages"))

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Language", "Files", "LOC", "Bytes", "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range sortedLanguageNames(stats) {
		stat := stats[name]
		data = append(data, []string{
			stat.Language,
			strconv.Itoa(stat.FileCount),
			strconv.Itoa(stat.LinesOfCode),
			strconv.FormatInt(stat.TotalBytes, 10),
			fmt.Sprintf("%.1f%%", stat.Percentage),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

// printFileRankingTable renders a rank/path/value table for one of the
// precomputed file rankings.
func printFileRankingTable(title string, files []schema.FileRecord, cell func(*schema.FileRecord) (string, string)) error {
	if len(files) == 0 {
		return nil
	}
	fmt.Println(sectionColor.Sprint(title))

	var header string
	maxPath := maxTablePathWidth()
	var data [][]string
	for i := range files {
		value, column := cell(&files[i])
		header = column
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncatePath(files[i].Path, maxPath),
			value,
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Path", header})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func sortedLanguageNames(stats map[string]schema.LanguageStat) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sizeCell(f *schema.FileRecord) (string, string) {
	return strconv.FormatInt(f.SizeBytes, 10), "Bytes"
}

func locCell(f *schema.FileRecord) (string, string) {
	return strconv.Itoa(f.LOC()), "LOC"
}

func printTouchedTable(analysis *schema.RepositoryAnalysis) error {
	touched := analysis.GitAnalysis.MostTouchedFiles
	if len(touched) == 0 {
		return nil
	}
	fmt.Println(sectionColor.Sprint("Most Touched Files"))

	maxPath := maxTablePathWidth()
	var data [][]string
	for i, entry := range touched {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncatePath(entry.Path, maxPath),
			strconv.Itoa(entry.Touches),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Path", "Touches"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func printSecurityTable(analysis *schema.RepositoryAnalysis) error {
	fmt.Println(sectionColor.Sprint("Security Posture"))

	info := analysis.SecurityInfo
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Check", "Status"})
	data := [][]string{
		{"Security policy", presenceLabel(info.HasSecurityPolicy)},
		{"Dependabot workflow", presenceLabel(info.HasDependabot)},
		{"CodeQL workflow", presenceLabel(info.HasCodeQL)},
		{"Unpinned dependencies", countLabel(len(info.OutdatedDependencies))},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func presenceLabel(present bool) string {
	if present {
		return okColor.Sprint("present")
	}
	return missColor.Sprint("missing")
}

func countLabel(count int) string {
	if count == 0 {
		return okColor.Sprint("0")
	}
	return flagColor.Sprint(strconv.Itoa(count))
}

// maxTablePathWidth calculates the maximum width for file paths in table
// output based on terminal width.
func maxTablePathWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		termWidth = 80
	}

	// Reserve space for the rank and value columns plus borders and padding
	available := termWidth - 35
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}

// truncatePath truncates a file path to a maximum width with ellipsis prefix.
func truncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}
