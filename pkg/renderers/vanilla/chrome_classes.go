package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassWizard  ChromeClass = "fw-wizard"
	ClassSidebar ChromeClass = "fw-sidebar"
	ClassHeader  ChromeClass = "fw-topbar"
	ClassStepper ChromeClass = "fw-stepper"
	ClassSection ChromeClass = "fw-section"
	ClassEntries ChromeClass = "fw-entries"
	ClassGrid    ChromeClass = "fw-grid"
	ClassActions ChromeClass = "fw-actions"
	ClassErrors  ChromeClass = "fw-errors"
)

// ChromeClasses adds classes to the page chrome. Non-empty fields are appended
// to the default class; tokens starting with "fw-" are dropped.
type ChromeClasses struct {
	Wizard  string
	Sidebar string
	Header  string
	Stepper string
	Section string
	Entries string
	Grid    string
	Actions string
	Errors  string
}

func (c ChromeClasses) resolve() map[string]string {
	pick := func(override string, def ChromeClass) string {
		if cls := sanitizeClassList(override); cls != "" {
			return string(def) + " " + cls
		}
		return string(def)
	}
	return map[string]string{
		"wizard":  pick(c.Wizard, ClassWizard),
		"sidebar": pick(c.Sidebar, ClassSidebar),
		"header":  pick(c.Header, ClassHeader),
		"stepper": pick(c.Stepper, ClassStepper),
		"section": pick(c.Section, ClassSection),
		"entries": pick(c.Entries, ClassEntries),
		"grid":    pick(c.Grid, ClassGrid),
		"actions": pick(c.Actions, ClassActions),
		"errors":  pick(c.Errors, ClassErrors),
	}
}
