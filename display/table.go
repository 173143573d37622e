package display

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/teranos/otml/grammar"
)

// FeatureGrid returns the table as rows of cells: a header of feature labels,
// then one row per segment in inventory order.
func FeatureGrid(table *grammar.FeatureTable) [][]string {
	header := append([]string{"Segment/Feature"}, table.FeatureOrder()...)
	grid := [][]string{header}
	for _, row := range table.Rows() {
		grid = append(grid, append([]string{row.Symbol}, row.Values...))
	}
	return grid
}

// RenderFeatureTable writes the table as a boxed grid
func RenderFeatureTable(w io.Writer, table *grammar.FeatureTable) error {
	return pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithWriter(w).
		WithData(FeatureGrid(table)).
		Render()
}

// RenderSchema writes one row per feature with its legal values
func RenderSchema(w io.Writer, features *grammar.FeatureList) error {
	data := [][]string{{"#", "Feature", "Values"}}
	for i, f := range features.All() {
		data = append(data, []string{pterm.Sprint(i), f.Label, pterm.Sprint(f.Values)})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

// SegmentView is the JSON shape of a segment
type SegmentView struct {
	Symbol   string            `json:"symbol"`
	Features map[string]string `json:"features,omitempty"`
}

// NewSegmentView converts a segment for output
func NewSegmentView(s grammar.Segment) SegmentView {
	return SegmentView{Symbol: s.Symbol(), Features: s.Features()}
}

// NewSegmentViews converts segments for output
func NewSegmentViews(segments []grammar.Segment) []SegmentView {
	views := make([]SegmentView, len(segments))
	for i, s := range segments {
		views[i] = NewSegmentView(s)
	}
	return views
}

// RenderSegments writes segments as a table over the given feature order
func RenderSegments(w io.Writer, order []string, segments []grammar.Segment) error {
	data := [][]string{append([]string{"Segment"}, order...)}
	for _, s := range segments {
		row := []string{s.Symbol()}
		for _, label := range order {
			v, _ := s.Value(label)
			row = append(row, v)
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}
