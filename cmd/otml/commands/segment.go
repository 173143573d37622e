package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/otml/display"
	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
	"github.com/teranos/otml/internal/randutil"
)

// SegmentCmd groups commands over the segments of a feature table
var SegmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Unify and classify segments",
	Long: `Work with the segments of a feature table.

Unification operands are written as:
  *        the Joker, which matches anything
  -        the Null segment
  {p,b,d}  a set of symbols (a natural class restriction)
  b        any symbol of the table

Features are written as label=value pairs.

Examples:
  otml segment unify b '{p,b}'
  otml segment unify '*' d
  otml segment match b voice=+ cons=+
  otml segment class voice=+
  otml segment random -n 5
  otml segment random -n 5 --weight p=3 --weight b=0`,
}

var segmentUnifyCmd = &cobra.Command{
	Use:   "unify <a> <b>",
	Short: "Unify two operands",
	Args:  cobra.ExactArgs(2),
	RunE:  runSegmentUnify,
}

var segmentMatchCmd = &cobra.Command{
	Use:   "match <symbol> <label=value>...",
	Short: "Test whether a segment has a feature bundle",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSegmentMatch,
}

var segmentClassCmd = &cobra.Command{
	Use:   "class <label=value>...",
	Short: "List the natural class a feature bundle describes",
	RunE:  runSegmentClass,
}

var segmentRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Draw random symbols from the alphabet",
	Args:  cobra.NoArgs,
	RunE:  runSegmentRandom,
}

var (
	segmentFile   string
	randomCount   int
	randomWeights []string
)

func init() {
	SegmentCmd.PersistentFlags().StringVarP(&segmentFile, "file", "f", "", "Inventory file (default: feature_table.path)")
	segmentRandomCmd.Flags().IntVarP(&randomCount, "count", "n", 1, "Number of symbols to draw")
	segmentRandomCmd.Flags().StringArrayVar(&randomWeights, "weight", nil, "Relative weight as symbol=N (repeatable, unlisted symbols weigh 1)")

	SegmentCmd.AddCommand(segmentUnifyCmd)
	SegmentCmd.AddCommand(segmentMatchCmd)
	SegmentCmd.AddCommand(segmentClassCmd)
	SegmentCmd.AddCommand(segmentRandomCmd)
}

// unifyResult is the JSON shape of `segment unify`
type unifyResult struct {
	Left   string `json:"left"`
	Right  string `json:"right"`
	Match  bool   `json:"match"`
	Result string `json:"result,omitempty"`
}

func runSegmentUnify(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd, segmentFile)
	if err != nil {
		return err
	}

	left, err := parseOperand(table, args[0])
	if err != nil {
		return err
	}
	right, err := parseOperand(table, args[1])
	if err != nil {
		return err
	}

	result, ok := grammar.Intersect(left, right)
	res := unifyResult{Left: operandString(left), Right: operandString(right), Match: ok}
	if ok {
		res.Result = operandString(result)
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, res)
	}
	if !ok {
		fmt.Fprintln(out, "no match")
		return nil
	}
	fmt.Fprintln(out, res.Result)
	return nil
}

func runSegmentMatch(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd, segmentFile)
	if err != nil {
		return err
	}

	segment, err := table.Segment(args[0])
	if err != nil {
		return err
	}
	bundle, err := parseBundle(table, args[1:])
	if err != nil {
		return err
	}

	match := segment.HasFeatureBundle(bundle)
	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, map[string]interface{}{
			"segment": display.NewSegmentView(segment),
			"bundle":  bundle,
			"match":   match,
		})
	}
	fmt.Fprintln(out, match)
	return nil
}

func runSegmentClass(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd, segmentFile)
	if err != nil {
		return err
	}

	bundle, err := parseBundle(table, args)
	if err != nil {
		return err
	}
	class := table.NaturalClass(bundle)

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, display.NewSegmentViews(class))
	}
	if len(class) == 0 {
		fmt.Fprintln(out, "no segments")
		return nil
	}
	return display.RenderSegments(out, table.FeatureOrder(), class)
}

func runSegmentRandom(cmd *cobra.Command, args []string) error {
	if randomCount < 1 {
		return errors.Newf("--count must be at least 1, got %d", randomCount)
	}
	table, err := loadTable(cmd, segmentFile)
	if err != nil {
		return err
	}
	if len(table.Alphabet()) == 0 {
		return errors.New("feature table has no segments")
	}

	symbols := make([]string, randomCount)
	if len(randomWeights) == 0 {
		for i := range symbols {
			symbols[i] = table.RandomSymbol()
		}
	} else {
		options, err := parseWeights(table, randomWeights)
		if err != nil {
			return err
		}
		for i := range symbols {
			if symbols[i], err = randutil.ChooseByWeight(options); err != nil {
				return errors.WithHint(err, "give at least one symbol a positive weight")
			}
		}
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, symbols)
	}
	for _, s := range symbols {
		fmt.Fprintln(out, s)
	}
	return nil
}

// parseWeights turns symbol=N pairs into draw weights over the alphabet.
// Symbols not listed keep weight 1; weight 0 excludes a symbol.
func parseWeights(table *grammar.FeatureTable, pairs []string) ([]randutil.Weighted[string], error) {
	weights := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		symbol, value, ok := strings.Cut(pair, "=")
		symbol = strings.TrimSpace(symbol)
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if !ok || symbol == "" || err != nil || n < 0 {
			return nil, errors.WithHint(
				errors.Categorize(errors.Newf("malformed weight %q", pair), errors.ErrInvalidInput),
				"write weights as symbol=N with N >= 0, e.g. p=3")
		}
		if !table.IsValidSymbol(symbol) {
			return nil, errors.Categorize(errors.Wrapf(grammar.ErrUnknownSymbol, "%q", symbol), errors.ErrNotFound)
		}
		weights[symbol] = n
	}

	alphabet := table.Alphabet()
	options := make([]randutil.Weighted[string], len(alphabet))
	for i, symbol := range alphabet {
		w, listed := weights[symbol]
		if !listed {
			w = 1
		}
		options[i] = randutil.Weighted[string]{Value: symbol, Weight: w}
	}
	return options, nil
}
