package am

import (
	"slices"
	"strings"

	"github.com/teranos/otml/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Empty feature_table.path is valid here; commands that need a table
	// report it when loading
	format := strings.ToLower(c.GetFeatureTableFormat())
	if !slices.Contains(FeatureTableFormats, format) {
		return errors.WithHintf(
			errors.Newf("feature_table.format %q is not supported", c.FeatureTable.Format),
			"use one of: %s", strings.Join(FeatureTableFormats, ", "))
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if !c.Random.RandomSeed && c.Random.Seed < 0 {
		return errors.Newf("random.seed must be >= 0, got %d", c.Random.Seed)
	}

	return nil
}
