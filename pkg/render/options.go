package render

// RenderOptions carry per-request adjustments applied before the table is
// rendered, without rebuilding the view tree.
type RenderOptions struct {
	// Themes are added to the table's stack. With Only set they replace it.
	Themes []string
	Only   bool
	// Vars are passed to the top level data_table block, including an
	// optional "themes" override.
	Vars map[string]any
}
