// Package contract provides configuration and shared utilities for
// internal architecture.
package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/repolens/schema"
)

// Default values for configuration.
const (
	DefaultWorkDirName = "repolens"
	DefaultRunDBName   = ".repolens_runs.db"
)

// Config holds the validated runtime configuration for an analysis run.
// Raw flag and file inputs are parsed into this struct by
// ProcessAndValidate; nothing reads viper directly below cmd.
type Config struct {
	Token      string            // GitHub API token, empty for anonymous access
	WorkDir    string            // Directory where repositories are cloned
	Output     schema.OutputMode // Aggregate output format
	OutputFile string            // Output destination, empty means stdout
	KeepClone  bool              // Keep the cloned working tree after the run
	RunDBPath  string            // SQLite run-tracking database, empty disables tracking
}

// ConfigRawInput holds the raw inputs from flags, env and config file.
// Viper unmarshals into this struct before validation.
type ConfigRawInput struct {
	Token      string `mapstructure:"token"`
	WorkDir    string `mapstructure:"workdir"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	KeepClone  bool   `mapstructure:"keep-clone"`
	RunDB      string `mapstructure:"run-db"`
}

// ProcessAndValidate parses and validates the raw inputs and populates
// the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.Token = strings.TrimSpace(input.Token)
	cfg.KeepClone = input.KeepClone
	cfg.OutputFile = input.OutputFile

	// --- 1. Output format ---
	mode := schema.OutputMode(strings.ToLower(input.Output))
	if mode == "" {
		mode = schema.JSONOut
	}
	if _, ok := schema.ValidOutputModes[mode]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be json, yaml, text, parquet", input.Output)
	}
	cfg.Output = mode

	// --- 2. Working directory ---
	cfg.WorkDir = input.WorkDir
	if cfg.WorkDir == "" {
		cfg.WorkDir = filepath.Join(os.TempDir(), DefaultWorkDirName)
	}
	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", cfg.WorkDir, err)
	}

	// --- 3. Run-tracking database ---
	switch input.RunDB {
	case "none":
		cfg.RunDBPath = "" // disables tracking
	case "":
		cfg.RunDBPath = GetRunDBFilePath()
	default:
		cfg.RunDBPath = input.RunDB
	}

	return nil
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultRunDBName
	}
	return filepath.Join(homeDir, DefaultRunDBName)
}

// SelectOutputFile returns the appropriate file handle for output based
// on the provided path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo logs a progress message to stderr, keeping stdout clean for
// the structured output.
func LogInfo(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "%s\n", msg)
}
