package render

// RenderOptions describe per-call data that renderers can use to customise
// their output without touching the compiled form.
type RenderOptions struct {
	// Title heads the rendered document.
	Title string
	// Errors surfaces validation feedback keyed by field name. Renderers merge
	// it with the failures of the control tree.
	Errors ErrorMapping
	// ShowErrors renders the failures of the control tree even before the
	// user has interacted with it.
	ShowErrors bool
}
