package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/otml/cmd/otml/commands"
	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/internal/randutil"
	"github.com/teranos/otml/logger"
)

var rootCmd = &cobra.Command{
	Use:   "otml",
	Short: "otml - feature-based segment model",
	Long: `otml - feature-based segment model for phonological learning.

Segments are symbols of an inventory whose features are declared in a
feature table. otml loads, validates and queries those tables and runs the
segment unification used to match transducer arc labels.

Available commands:
  table   - Show, validate and watch feature tables
  segment - Unify operands and test natural classes
  am      - Manage otml configuration ("I am")
  version - Show version information

Examples:
  otml table show inventory.json     # Show a feature table
  otml segment unify b '{p,b}'       # Unify a segment with a natural class
  otml am show                       # Show current configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commands.LoadConfig(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		verbosity, _ := cmd.Flags().GetCount("verbose")
		verbosity = max(verbosity, cfg.Log.Verbosity)
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.InitializeWithOptions(logger.Options{
			JSON:      jsonOutput || cfg.Log.JSON,
			Verbosity: verbosity,
			File:      cfg.Log.File,
		}); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		if logger.ShouldOutput(verbosity, logger.OutputConfig) {
			logger.Debugw("Config loaded", "config", cfg.String())
		}

		if cfg.Random.RandomSeed {
			randutil.Reseed()
		} else {
			randutil.Seed(cfg.Random.Seed)
			logger.Debugw("Random source seeded", "seed", cfg.Random.Seed)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: am.toml cascade)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results and logs as JSON")

	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.TableCmd)
	rootCmd.AddCommand(commands.SegmentCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorw("Command failed", "error", err)
		verbosity, _ := rootCmd.PersistentFlags().GetCount("verbose")
		if logger.ShouldOutput(verbosity, logger.OutputErrors) {
			fmt.Fprintln(os.Stderr, err)
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
			}
		}
		logger.Cleanup()
		os.Exit(1)
	}
}
