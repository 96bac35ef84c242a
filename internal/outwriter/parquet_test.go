package outwriter

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/repolens/schema"
)

func TestFileRowStructTags(t *testing.T) {
	rowSchema := parquet.SchemaOf(new(FileRow))
	require.NotNil(t, rowSchema)

	expectedColumns := []string{
		"analyzed_at",
		"repo_url",
		"path",
		"extension",
		"size_bytes",
		"lines_of_code",
		"blank_lines",
		"comment_lines",
		"language",
		"mime_type",
		"is_binary",
		"hash",
	}
	for _, colName := range expectedColumns {
		_, ok := rowSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestConvertFileRecords(t *testing.T) {
	loc := 100
	analysis := sampleAnalysis()
	files := []schema.FileRecord{
		{
			Path:        "src/main.go",
			Extension:   "go",
			SizeBytes:   2048,
			LinesOfCode: &loc,
			Language:    "Go",
			MIMEType:    "text/x-go",
			Hash:        "abc123",
		},
		{
			Path:      "logo.png",
			Extension: "png",
			SizeBytes: 512,
			IsBinary:  true,
			Hash:      "def456",
		},
	}

	rows := ConvertFileRecords(analysis, files)
	require.Len(t, rows, 2)

	assert.Equal(t, analysis.URL, rows[0].RepoURL)
	assert.Equal(t, analysis.AnalyzedAt, rows[0].AnalyzedAt)
	assert.Equal(t, "src/main.go", rows[0].Path)
	require.NotNil(t, rows[0].LinesOfCode)
	assert.Equal(t, int32(100), *rows[0].LinesOfCode)

	// Binary files carry no line counts.
	assert.Nil(t, rows[1].LinesOfCode)
	assert.True(t, rows[1].IsBinary)
}

func TestWriteFilesParquetRoundTrip(t *testing.T) {
	loc := 42
	analysis := sampleAnalysis()
	rows := ConvertFileRecords(analysis, []schema.FileRecord{
		{Path: "a.go", Extension: "go", SizeBytes: 100, LinesOfCode: &loc, Language: "Go", Hash: "h1"},
		{Path: "b.bin", Extension: "bin", SizeBytes: 9000, IsBinary: true, Hash: "h2"},
	})

	path := filepath.Join(t.TempDir(), "files.parquet")
	require.NoError(t, WriteFilesParquet(rows, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[FileRow](file)
	defer func() { _ = reader.Close() }()

	readBack := make([]FileRow, reader.NumRows())
	n, err := reader.Read(readBack)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, "a.go", readBack[0].Path)
	require.NotNil(t, readBack[0].LinesOfCode)
	assert.Equal(t, int32(42), *readBack[0].LinesOfCode)
	assert.True(t, readBack[1].IsBinary)
	assert.True(t, readBack[0].AnalyzedAt.Equal(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)))
}
