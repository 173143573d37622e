package logger

// Output controls what categories of CLI output are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - results, errors, final status
//	1 (-v)      - + progress, table summaries, reload notices
//	2 (-vv)     - + config values, timing
//	3 (-vvv)    - + full table dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Command results
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress     // Per-file progress during validation
	OutputTableSummary // Feature and segment counts of loaded tables
	OutputReload       // Watcher reload notices

	// Level 2 (-vv) - Detailed
	OutputConfig // Config values loaded/applied
	OutputTiming // Operation timing

	// Level 3 (-vvv) - Full dump
	OutputDataDump // Full table contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:     VerbosityInfo,
	OutputTableSummary: VerbosityInfo,
	OutputReload:       VerbosityInfo,

	OutputConfig: VerbosityDebug,
	OutputTiming: VerbosityDebug,

	OutputDataDump: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputUserStatus:   "status",
	OutputProgress:     "progress",
	OutputTableSummary: "table-summary",
	OutputReload:       "reload",
	OutputConfig:       "config",
	OutputTiming:       "timing",
	OutputDataDump:     "data-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
