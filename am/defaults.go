package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("simulation.name", "otml")

	v.SetDefault("feature_table.path", "")
	v.SetDefault("feature_table.format", "auto")
	v.SetDefault("feature_table.schema", "")

	v.SetDefault("log.file", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("random.random_seed", true)
	v.SetDefault("random.seed", 1)
}

// BindSensitiveEnvVars explicitly binds configuration that is commonly
// overridden per run to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("feature_table.path", "OTML_FEATURE_TABLE_PATH")
	v.BindEnv("feature_table.format", "OTML_FEATURE_TABLE_FORMAT")
	v.BindEnv("log.file", "OTML_LOG_FILE")
	v.BindEnv("random.seed", "OTML_RANDOM_SEED")
}

// GetFeatureTableFormat returns the configured format, "auto" when unset
func (c *Config) GetFeatureTableFormat() string {
	if c.FeatureTable.Format == "" {
		return "auto"
	}
	return c.FeatureTable.Format
}

// GetSimulationName returns the simulation name (default: otml)
func (c *Config) GetSimulationName() string {
	if c.Simulation.Name == "" {
		return "otml"
	}
	return c.Simulation.Name
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Simulation: %s, FeatureTable: {Path: %s, Format: %s}, Log: {Verbosity: %d}}",
		c.GetSimulationName(), c.FeatureTable.Path, c.GetFeatureTableFormat(), c.Log.Verbosity)
}
