// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the supported output formats behind a clean API.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis emits the full analysis record in the configured format.
// The parquet format is handled by the export command and rejected here.
func (ow *OutWriter) WriteAnalysis(analysis *schema.RepositoryAnalysis, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.YAMLOut:
		return printYAMLAnalysis(analysis, cfg)
	case schema.TextOut:
		return printTextAnalysis(analysis)
	case schema.ParquetOut:
		return fmt.Errorf("parquet output requires the export command")
	default:
		return printJSONAnalysis(analysis, cfg)
	}
}

// printJSONAnalysis handles opening the file and writing indented JSON.
func printJSONAnalysis(analysis *schema.RepositoryAnalysis, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeUnlessStdout(file)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(analysis); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 Wrote JSON to %s\n", cfg.OutputFile)
	}
	return nil
}

// printYAMLAnalysis handles opening the file and writing YAML.
func printYAMLAnalysis(analysis *schema.RepositoryAnalysis, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeUnlessStdout(file)

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(analysis); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 Wrote YAML to %s\n", cfg.OutputFile)
	}
	return nil
}

func closeUnlessStdout(file *os.File) {
	if file != os.Stdout {
		_ = file.Close()
	}
}
