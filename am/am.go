// Package am holds the otml configuration ("I am").
//
// Configuration is read with Viper from TOML files and OTML_* environment
// variables. See Load for the precedence order.
package am

// Config represents the otml configuration
type Config struct {
	Simulation   SimulationConfig   `mapstructure:"simulation" json:"simulation" yaml:"simulation" toml:"simulation"`
	FeatureTable FeatureTableConfig `mapstructure:"feature_table" json:"feature_table" yaml:"feature_table" toml:"feature_table"`
	Log          LogConfig          `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	Random       RandomConfig       `mapstructure:"random" json:"random" yaml:"random" toml:"random"`
}

// SimulationConfig names the run
type SimulationConfig struct {
	Name string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
}

// FeatureTableConfig locates the segment inventory
type FeatureTableConfig struct {
	Path   string `mapstructure:"path" json:"path" yaml:"path" toml:"path"`         // Inventory file
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format"` // auto, json, yaml, toml, csv, tsv (default: auto)
	Schema string `mapstructure:"schema" json:"schema" yaml:"schema" toml:"schema"` // Feature-only document for csv/tsv inventories (optional)
}

// LogConfig configures the global logger
type LogConfig struct {
	File      string `mapstructure:"file" json:"file" yaml:"file" toml:"file"`                     // Log file, empty = stdout
	JSON      bool   `mapstructure:"json" json:"json" yaml:"json" toml:"json"`                     // Structured JSON output
	Verbosity int    `mapstructure:"verbosity" json:"verbosity" yaml:"verbosity" toml:"verbosity"` // Same scale as -v count
}

// RandomConfig seeds the process-wide random source
type RandomConfig struct {
	RandomSeed bool  `mapstructure:"random_seed" json:"random_seed" yaml:"random_seed" toml:"random_seed"` // true = seed from entropy, ignore Seed
	Seed       int64 `mapstructure:"seed" json:"seed" yaml:"seed" toml:"seed"`
}

// Supported feature table formats
var FeatureTableFormats = []string{"auto", "json", "yaml", "yml", "toml", "csv", "tsv"}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
