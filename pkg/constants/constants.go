package constants

// CLIName is the name used in user-facing output to refer to the command
const CLIName = "spawncheck"

// DefaultOutputDir is the directory fix artifacts are written to when no override is configured
const DefaultOutputDir = "fixed_configs"

// FixedFileSuffix and ReportFileSuffix are appended to the input basename for the generated artifacts
const (
	FixedFileSuffix  = "_FIXED.json"
	ReportFileSuffix = "_FIX_REPORT.txt"
)

// ConfigFileName is the optional configuration file looked up in the working directory
const ConfigFileName = ".spawncheck.yaml"

// EnvPrefix is the prefix for environment variable overrides (SPAWNCHECK_OUTPUT_DIR, ...)
const EnvPrefix = "SPAWNCHECK"

// MaxConcurrentChecks limits the number of files validated in parallel by the check command
const MaxConcurrentChecks = 8
