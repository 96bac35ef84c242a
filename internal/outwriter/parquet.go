package outwriter

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/repolens/schema"
)

// FileRow is the flattened per-file dataset row for parquet export.
// The schema is derived from the struct tags.
type FileRow struct {
	// AnalyzedAt is when the analysis run producing this row happened
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	// RepoURL identifies the analyzed repository or local path
	RepoURL string `parquet:"repo_url,snappy"`

	// Path is the file path relative to the repository root
	Path string `parquet:"path,snappy"`

	// Extension is the lowercased extension without the leading dot
	Extension string `parquet:"extension,snappy"`

	// SizeBytes is the file size from filesystem metadata
	SizeBytes int64 `parquet:"size_bytes,snappy"`

	// LinesOfCode is nullable; binary and size-capped files carry none
	LinesOfCode *int32 `parquet:"lines_of_code,optional,snappy"`

	// BlankLines is nullable, same rule as LinesOfCode
	BlankLines *int32 `parquet:"blank_lines,optional,snappy"`

	// CommentLines is nullable, same rule as LinesOfCode
	CommentLines *int32 `parquet:"comment_lines,optional,snappy"`

	// Language resolved from the extension table, empty when unknown
	Language string `parquet:"language,snappy"`

	// MIMEType guessed from the extension
	MIMEType string `parquet:"mime_type,snappy"`

	// IsBinary marks files excluded from text metrics
	IsBinary bool `parquet:"is_binary,snappy"`

	// Hash is the MD5 of the raw file bytes
	Hash string `parquet:"hash,snappy"`
}

// ConvertFileRecords flattens an analysis into parquet rows.
func ConvertFileRecords(analysis *schema.RepositoryAnalysis, files []schema.FileRecord) []FileRow {
	rows := make([]FileRow, 0, len(files))
	for i := range files {
		f := &files[i]
		rows = append(rows, FileRow{
			AnalyzedAt:   analysis.AnalyzedAt,
			RepoURL:      analysis.URL,
			Path:         f.Path,
			Extension:    f.Extension,
			SizeBytes:    f.SizeBytes,
			LinesOfCode:  toInt32Ptr(f.LinesOfCode),
			BlankLines:   toInt32Ptr(f.BlankLines),
			CommentLines: toInt32Ptr(f.CommentLines),
			Language:     f.Language,
			MIMEType:     f.MIMEType,
			IsBinary:     f.IsBinary,
			Hash:         f.Hash,
		})
	}
	return rows
}

// WriteFilesParquet writes the flattened file rows to a Parquet file.
func WriteFilesParquet(rows []FileRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[FileRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

func toInt32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	converted := int32(*v)
	return &converted
}
