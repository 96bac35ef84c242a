// Package agg rolls the classified directory tree up into repository-wide
// code metrics: totals, per-language statistics and file rankings.
package agg

import (
	"sort"

	"github.com/huangsam/repolens/schema"
)

// Flatten collects every FileRecord across all tree levels in pre-order.
func Flatten(dir *schema.DirectoryRecord) []schema.FileRecord {
	var all []schema.FileRecord
	collect(dir, &all)
	return all
}

func collect(dir *schema.DirectoryRecord, all *[]schema.FileRecord) {
	*all = append(*all, dir.Files...)
	for i := range dir.Subdirectories {
		collect(&dir.Subdirectories[i], all)
	}
}

// ComputeMetrics traverses the full tree and derives CodeMetrics.
// Only text files contribute to totals and language statistics; the
// largest-file and most-complex-file rankings cover every file.
func ComputeMetrics(dir *schema.DirectoryRecord) schema.CodeMetrics {
	all := Flatten(dir)

	metrics := schema.CodeMetrics{
		LanguageStats: make(map[string]schema.LanguageStat),
	}

	for i := range all {
		f := &all[i]
		if !f.IsText {
			continue
		}

		metrics.TotalFiles++
		metrics.TotalSize += f.SizeBytes
		metrics.TotalLines += f.TotalLines()
		metrics.TotalLOC += f.LOC()
		if f.BlankLines != nil {
			metrics.TotalBlankLines += *f.BlankLines
		}
		if f.CommentLines != nil {
			metrics.TotalCommentLines += *f.CommentLines
		}

		if f.Language == "" {
			continue
		}
		stat := metrics.LanguageStats[f.Language]
		stat.Language = f.Language
		stat.FileCount++
		stat.LinesOfCode += f.LOC()
		if f.BlankLines != nil {
			stat.BlankLines += *f.BlankLines
		}
		if f.CommentLines != nil {
			stat.CommentLines += *f.CommentLines
		}
		stat.TotalBytes += f.SizeBytes
		metrics.LanguageStats[f.Language] = stat
	}

	// Percentages are shares of total analyzed text bytes. A zero
	// denominator yields zero, never NaN.
	for lang, stat := range metrics.LanguageStats {
		if metrics.TotalSize > 0 {
			stat.Percentage = float64(stat.TotalBytes) / float64(metrics.TotalSize) * 100.0
		}
		metrics.LanguageStats[lang] = stat
	}

	metrics.LargestFiles = rankBySize(all, schema.TopFileLimit)
	metrics.MostComplexFiles = rankByLOC(all, schema.TopFileLimit)

	if metrics.TotalFiles > 0 {
		metrics.AverageFileSize = float64(metrics.TotalSize) / float64(metrics.TotalFiles)
	}

	return metrics
}

// rankBySize stable-sorts all files descending by byte size and truncates.
func rankBySize(all []schema.FileRecord, limit int) []schema.FileRecord {
	ranked := make([]schema.FileRecord, len(all))
	copy(ranked, all)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SizeBytes > ranked[j].SizeBytes
	})
	return truncate(ranked, limit)
}

// rankByLOC stable-sorts all files descending by lines of code and
// truncates. Files without a LOC value sort as zero.
func rankByLOC(all []schema.FileRecord, limit int) []schema.FileRecord {
	ranked := make([]schema.FileRecord, len(all))
	copy(ranked, all)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LOC() > ranked[j].LOC()
	})
	return truncate(ranked, limit)
}

func truncate(files []schema.FileRecord, limit int) []schema.FileRecord {
	if len(files) > limit {
		return files[:limit]
	}
	return files
}
