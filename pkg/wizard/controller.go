package wizard

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger for transition tracing. Defaults to a no-op
// logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithCompactLayout starts the session in the small-viewport layout.
func WithCompactLayout(compact bool) Option {
	return func(c *Controller) {
		c.compact = compact
	}
}

// WithState resumes from a previously captured state instead of Init.
func WithState(st State) Option {
	return func(c *Controller) {
		resumed := st.Clone()
		c.resume = &resumed
	}
}

// Controller owns the state of one interactive session and applies
// transitions to the current step. It is not safe for concurrent use.
type Controller struct {
	form    *Form
	state   State
	logger  zerolog.Logger
	compact bool
	resume  *State
}

// New compiles s and initialises a session.
func New(s schema.Schema, options ...Option) *Controller {
	c := &Controller{
		form:   Compile(s),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.resume != nil {
		c.state = *c.resume
		c.resume = nil
		if step := c.clampStep(c.state.Step); step != c.state.Step {
			c.logger.Debug().Int("from", c.state.Step).Int("to", step).Msg("wizard resumed step out of range")
			c.state.Step = step
		}
	} else {
		c.state = c.form.Init(c.compact)
	}

	c.logger.Debug().
		Int("steps", c.form.Steps()).
		Bool("compact", c.state.Layout.Compact).
		Msg("wizard session initialised")
	return c
}

// clampStep keeps a resumed step inside the compiled form.
func (c *Controller) clampStep(step int) int {
	if last := c.form.Steps() - 1; step > last {
		step = last
	}
	if step < 0 {
		step = 0
	}
	return step
}

// Form exposes the compiled form.
func (c *Controller) Form() *Form {
	return c.form
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state.Clone()
}

// Step returns the current step.
func (c *Controller) Step() int {
	return c.state.Step
}

// Section returns the section shown at the current step.
func (c *Controller) Section() (schema.Section, bool) {
	return c.form.Section(c.state.Step)
}

// Advance completes the current step and moves forward.
func (c *Controller) Advance() {
	from := c.state.Step
	c.state = c.form.Advance(c.state, from)
	c.logger.Debug().Int("from", from).Int("to", c.state.Step).Msg("wizard advance")
}

// Retreat moves back one step.
func (c *Controller) Retreat() {
	from := c.state.Step
	c.state = c.form.Retreat(c.state, from)
	c.logger.Debug().Int("from", from).Int("to", c.state.Step).Msg("wizard retreat")
}

// Jump moves to target from the navigation panel.
func (c *Controller) Jump(target int) {
	c.state = c.form.Jump(c.state, target)
	c.logger.Debug().Int("target", target).Int("step", c.state.Step).Msg("wizard jump")
}

// SetField records input for a field of the current section.
func (c *Controller) SetField(name string, in Input) {
	c.state = c.form.SetField(c.state, c.form.IsMulti(c.state.Step), name, in)
}

// SetEntryField records input for a field of a specific entry of the current
// multi-entry section.
func (c *Controller) SetEntryField(entry int, name string, in Input) {
	c.state = c.form.SetField(c.state, c.form.IsMulti(c.state.Step), name, in, entry)
}

// Value reads a field of the current section, from the active entry for
// multi-entry sections.
func (c *Controller) Value(name string) Value {
	if c.form.IsMulti(c.state.Step) {
		entry, _ := c.Entries().ActiveEntry()
		v, _ := entry.Values.Lookup(name)
		return v
	}
	v, _ := c.state.Shared.Lookup(name)
	return v
}

// IsSectionValid reports whether the section at step satisfies its required
// fields.
func (c *Controller) IsSectionValid(step int) bool {
	return c.form.IsSectionValid(c.state, step)
}

// CanAdvance reports whether the Next/Submit action is enabled.
func (c *Controller) CanAdvance() bool {
	return c.form.IsSectionValid(c.state, c.state.Step)
}

// IsStepComplete reports whether step was completed.
func (c *Controller) IsStepComplete(step int) bool {
	return c.state.IsStepComplete(step)
}

// IsLastStep reports whether the current step is the final one.
func (c *Controller) IsLastStep() bool {
	return c.form.IsLastStep(c.state.Step)
}

// Entries returns the entry list of the current section.
func (c *Controller) Entries() EntryList {
	return c.state.EntriesFor(c.currentTitle())
}

// AddEntry appends an entry to the current section.
func (c *Controller) AddEntry() {
	title := c.currentTitle()
	c.state = c.form.AddEntry(c.state, title)
	list := c.state.EntriesFor(title)
	c.logger.Debug().Str("section", title).Int("entries", len(list.Entries)).Msg("wizard entry added")
}

// RemoveEntry removes the entry at index from the current section.
func (c *Controller) RemoveEntry(index int) {
	title := c.currentTitle()
	c.state = c.form.RemoveEntry(c.state, title, index)
	list := c.state.EntriesFor(title)
	c.logger.Debug().Str("section", title).Int("index", index).Int("entries", len(list.Entries)).Msg("wizard entry removed")
}

// SelectEntry activates the entry at index in the current section.
func (c *Controller) SelectEntry(index int) {
	c.state = c.form.SelectEntry(c.state, c.currentTitle(), index)
}

// ToggleDrawer opens or closes the navigation panel.
func (c *Controller) ToggleDrawer() {
	c.state = c.form.ToggleDrawer(c.state)
}

// ToggleMinimize collapses or expands the navigation panel.
func (c *Controller) ToggleMinimize() {
	c.state = c.form.ToggleMinimize(c.state)
}

// DrawerWidth returns the current navigation panel width.
func (c *Controller) DrawerWidth() int {
	return DrawerWidth(c.state.Layout)
}

// GridColumns returns the field column count for the current step.
func (c *Controller) GridColumns(smallScreen bool) int {
	return c.form.GridColumns(c.state.Step, smallScreen)
}

// Collect gathers all answers in step order.
func (c *Controller) Collect() []SectionValues {
	return c.form.Collect(c.state)
}

// Snapshot captures everything a renderer needs to draw the current step.
func (c *Controller) Snapshot() Snapshot {
	return NewSnapshot(c.form, c.state)
}

func (c *Controller) currentTitle() string {
	return c.form.titleAt(c.state.Step)
}
