package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request presentation data. None of it changes the
// wizard state being drawn.
type RenderOptions struct {
	// Theme supplies tokens, CSS variables and asset URLs resolved from a
	// go-theme manifest. Nil renders unthemed markup.
	Theme *theme.RendererConfig
	// Locale and Translator localise chrome labels, section titles and field
	// labels. Missing translations fall back to the schema text.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	// Errors attaches messages to fields of the current step, keyed by field
	// name. Keys that match no field are shown as step-level messages.
	Errors map[string][]string
	// ShowMissing marks empty required fields of the current step with the
	// localised "required" message.
	ShowMissing bool
	// Action is the form submission target. Empty keeps the current URL.
	Action string
	// Hidden fields are emitted alongside the wizard navigation inputs.
	Hidden []HiddenField
}
