package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput    = "input"
	NameSelect   = "select"
	NameCheckbox = "checkbox"
)
