package render

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// HiddenAction is the name of the submit buttons that carry a navigation
// action ("next", "jump:2", "remove-entry:1").
const HiddenAction = "_action"

// Action names understood by ApplyAction.
const (
	ActionNext           = "next"
	ActionBack           = "back"
	ActionJump           = "jump"
	ActionAddEntry       = "add-entry"
	ActionRemoveEntry    = "remove-entry"
	ActionSelectEntry    = "select-entry"
	ActionToggleDrawer   = "toggle-drawer"
	ActionToggleMinimize = "toggle-minimize"
)

// ErrUnknownAction is returned by ParseAction for unrecognised names or
// malformed indexes.
var ErrUnknownAction = errors.New("render: unknown action")

// Action is a parsed navigation request. Index is only meaningful for jump
// and the entry actions.
type Action struct {
	Name  string
	Index int
}

// ActionValue formats an action as posted by a button.
func ActionValue(name string, index ...int) string {
	if len(index) == 0 {
		return name
	}
	return name + ":" + strconv.Itoa(index[0])
}

func (a Action) String() string {
	if takesIndex(a.Name) {
		return ActionValue(a.Name, a.Index)
	}
	return a.Name
}

// ParseAction parses "name" or "name:index".
func ParseAction(raw string) (Action, error) {
	name, rawIndex, hasIndex := strings.Cut(strings.TrimSpace(raw), ":")
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case ActionNext, ActionBack, ActionAddEntry, ActionToggleDrawer, ActionToggleMinimize:
		if hasIndex {
			return Action{}, fmt.Errorf("%w: %q takes no index", ErrUnknownAction, raw)
		}
		return Action{Name: name}, nil
	case ActionJump, ActionRemoveEntry, ActionSelectEntry:
		index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
		if !hasIndex || err != nil {
			return Action{}, fmt.Errorf("%w: %q needs an index", ErrUnknownAction, raw)
		}
		return Action{Name: name, Index: index}, nil
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

// ApplyAction dispatches a parsed action to the controller. Entry actions
// target the current step's section. Next is ignored while the step has
// empty required fields, as the rendered button is disabled then.
func ApplyAction(c *wizard.Controller, a Action) {
	switch a.Name {
	case ActionNext:
		if c.CanAdvance() {
			c.Advance()
		}
	case ActionBack:
		c.Retreat()
	case ActionJump:
		c.Jump(a.Index)
	case ActionAddEntry:
		c.AddEntry()
	case ActionRemoveEntry:
		c.RemoveEntry(a.Index)
	case ActionSelectEntry:
		c.SelectEntry(a.Index)
	case ActionToggleDrawer:
		c.ToggleDrawer()
	case ActionToggleMinimize:
		c.ToggleMinimize()
	}
}

// ApplyValues writes posted values for the fields of the current step into
// the controller. Checkboxes read the last posted value so a hidden "false"
// followed by a checked "true" resolves to checked. Names that are not on the
// current step are ignored.
func ApplyValues(c *wizard.Controller, values url.Values) {
	for _, field := range c.Snapshot().Fields {
		posted, ok := values[field.Name]
		if !ok || len(posted) == 0 {
			continue
		}
		last := posted[len(posted)-1]
		if field.Kind == schema.FieldTypeCheckbox {
			checked, _ := strconv.ParseBool(last)
			c.SetField(field.Name, wizard.CheckedInput(checked))
			continue
		}
		c.SetField(field.Name, wizard.TextInput(last))
	}
}

func takesIndex(name string) bool {
	switch name {
	case ActionJump, ActionRemoveEntry, ActionSelectEntry:
		return true
	default:
		return false
	}
}
