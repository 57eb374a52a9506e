package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the loaded template.
type RenderOptions struct {
	// Values pre-populates controls keyed by field mapping developer name.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field mapping developer
	// name.
	Errors map[string][]string
	// Mappings, when set, lets renderers show the Data Import field each
	// element writes to.
	Mappings map[string]string
}
