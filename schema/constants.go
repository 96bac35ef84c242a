package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the aggregate output.
	OutputMode string

	// Ecosystem names a language/package-manager convention associated
	// with a manifest file, e.g. "npm" or "cargo".
	Ecosystem string
)

// All output modes supported.
const (
	JSONOut    OutputMode = "json" // default
	YAMLOut    OutputMode = "yaml"
	TextOut    OutputMode = "text"
	ParquetOut OutputMode = "parquet"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	JSONOut:    {},
	YAMLOut:    {},
	TextOut:    {},
	ParquetOut: {},
}

// Ecosystems with structured dependency extraction. Every other tag is
// matched and retained verbatim but yields no parsed data.
const (
	NPMEcosystem    Ecosystem = "npm"
	CargoEcosystem  Ecosystem = "cargo"
	PipEcosystem    Ecosystem = "pip"
	PythonEcosystem Ecosystem = "python" // pyproject.toml
)

// Resource-safety caps. The commit and tree-entry caps bound wall-clock
// and memory per repository; they are hard limits, not sampling.
const (
	MaxFileSize       = 1_000_000 // bytes; larger files skip content inspection
	PreviewLines      = 50        // first N lines kept as content preview
	BinarySniffLen    = 512       // bytes inspected for the null-byte check
	MaxCommits        = 1000      // commits visited per history walk
	MaxTreeEntries    = 100       // tree entries visited per commit
	RecentCommitLimit = 50        // commits retained in the recent list
	TopFileLimit      = 10        // entries in largest/most-complex rankings
	TopTouchedLimit   = 20        // entries in the most-touched ranking
	ConfigScanDepth   = 3         // directory levels searched for manifests
)

// Fetch limits for the external GitHub collaborator.
const (
	ReleaseFetchLimit = 10
	IssueFetchLimit   = 20
)
