package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/otml/display"
	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
	"github.com/teranos/otml/inventory"
	"github.com/teranos/otml/logger"
)

// TableCmd groups the feature table commands
var TableCmd = &cobra.Command{
	Use:   "table",
	Short: "Inspect and validate feature tables",
	Long: `Inspect and validate segment inventories.

An inventory declares features and assigns every segment symbol one value
per feature. JSON, YAML, TOML, CSV and TSV sources are understood; the
format is taken from the file extension. CSV and TSV inventories read
their feature declarations from --schema when one is given, otherwise
every column is a binary (+/-) feature.

When no file is given the inventory named by feature_table.path in am.toml
(or OTML_FEATURE_TABLE_PATH) is used.

Examples:
  otml table show inventory.json
  otml table show --format yaml inventory.toml
  otml table show --schema features.yaml inventory.csv
  otml table validate *.json
  otml table watch`,
}

var tableShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show a feature table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTableShow,
}

var tableValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate one or more inventories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTableValidate,
}

var tableWatchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reload a feature table whenever its file changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTableWatch,
}

var (
	tableFormat   string
	tableFeatures bool
)

func init() {
	TableCmd.PersistentFlags().String("schema", "", "Feature declarations for CSV/TSV inventories")
	tableShowCmd.Flags().StringVar(&tableFormat, "format", "text", "Output format: text, json, yaml")
	tableShowCmd.Flags().BoolVar(&tableFeatures, "features", false, "Show only the feature declarations")

	TableCmd.AddCommand(tableShowCmd)
	TableCmd.AddCommand(tableValidateCmd)
	TableCmd.AddCommand(tableWatchCmd)
}

func runTableShow(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd, firstArg(args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format := tableFormat
	if display.ShouldOutputJSON(cmd) {
		format = "json"
	}

	switch format {
	case "text":
		if tableFeatures {
			return display.RenderSchema(out, table.Features())
		}
		if logger.ShouldOutput(verbosity(cmd), logger.OutputDataDump) {
			fmt.Fprint(out, table.String())
			return nil
		}
		if logger.ShouldOutput(verbosity(cmd), logger.OutputTableSummary) {
			fmt.Fprintf(out, "%d features, %d segments\n", table.FeatureCount(), len(table.Alphabet()))
		}
		return display.RenderFeatureTable(out, table)
	case "json":
		if tableFeatures {
			return display.WriteJSON(out, table.Features().All())
		}
		return inventory.EncodeJSON(out, table)
	case "yaml":
		return inventory.EncodeYAML(out, table)
	}
	return errors.WithHint(errors.Newf("unsupported format: %s", format), "supported: text, json, yaml")
}

// validationResult is one line of `table validate` output
type validationResult struct {
	File       string `json:"file"`
	Features   int    `json:"features,omitempty"`
	Segments   int    `json:"segments,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

func runTableValidate(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	schema, _ := cmd.Flags().GetString("schema")
	if schema == "" {
		schema = cfg.FeatureTable.Schema
	}
	results := make([]validationResult, len(args))

	showProgress := logger.ShouldOutput(verbosity(cmd), logger.OutputProgress)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		g.Go(func() error {
			if showProgress {
				logger.Infow("Validating inventory", logger.FieldFile, path)
			}
			results[i] = validateFile(path, schema)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		if err := display.WriteJSON(out, results); err != nil {
			return err
		}
	} else if logger.ShouldOutput(verbosity(cmd), logger.OutputUserStatus) {
		showTiming := logger.ShouldOutput(verbosity(cmd), logger.OutputTiming)
		for _, r := range results {
			timing := ""
			if showTiming {
				timing = fmt.Sprintf(" (%dms)", r.DurationMS)
			}
			if r.Error != "" {
				fmt.Fprintf(out, "✗ %s: %s%s\n", r.File, r.Error, timing)
				continue
			}
			fmt.Fprintf(out, "✓ %s: %d features, %d segments%s\n", r.File, r.Features, r.Segments, timing)
		}
	}

	if failed > 0 {
		return errors.Newf("%d of %d inventories are invalid", failed, len(args))
	}
	return nil
}

func validateFile(path, schema string) validationResult {
	start := time.Now()
	table, err := inventory.Load(path, inventory.FormatAuto, schema)
	result := validationResult{File: path, DurationMS: time.Since(start).Milliseconds()}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Features = table.FeatureCount()
	result.Segments = len(table.Alphabet())
	return result
}

func runTableWatch(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	path, format := firstArg(args), inventory.FormatAuto
	if path == "" {
		path = cfg.FeatureTable.Path
		if format, err = inventory.ParseFormat(cfg.FeatureTable.Format); err != nil {
			return err
		}
	}
	if path == "" {
		return errors.WithHint(errors.New("no feature table to watch"),
			"pass a file or set feature_table.path in am.toml")
	}
	schema, _ := cmd.Flags().GetString("schema")
	if schema == "" {
		schema = cfg.FeatureTable.Schema
	}

	w, err := inventory.NewWatcher(path, format, inventory.WithSchema(schema))
	if err != nil {
		return err
	}
	w.OnReload(func(table *grammar.FeatureTable) {
		if logger.ShouldOutput(verbosity(cmd), logger.OutputDataDump) {
			fmt.Print(table.String())
		}
		pterm.Success.Printf("%s reloaded: %d features, %d segments\n", path, table.FeatureCount(), len(table.Alphabet()))
		if logger.ShouldOutput(verbosity(cmd), logger.OutputReload) {
			logger.Infow("Feature table reloaded", logger.FieldFile, path, logger.FieldSegments, len(table.Alphabet()))
		}
	})
	w.OnError(func(err error) {
		pterm.Warning.Printf("%s not reloaded, keeping previous table: %v\n", path, err)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	table := w.Current()
	pterm.Info.Printf("Watching %s (%d segments), press Ctrl+C to stop\n", path, len(table.Alphabet()))
	logger.Debugw("Watch started", logger.FieldFile, path, logger.FieldSegments, len(table.Alphabet()))

	<-ctx.Done()
	pterm.Println()
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
