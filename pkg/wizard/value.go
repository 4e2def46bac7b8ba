package wizard

import (
	"encoding/json"
	"fmt"
)

// ValueKind identifies what a Value holds.
type ValueKind uint8

const (
	// KindNone marks the zero Value (never written).
	KindNone ValueKind = iota
	// KindString holds raw text, including numbers and dates as typed.
	KindString
	// KindBool holds a checkbox checked-state.
	KindBool
)

// Value is a single field answer.
type Value struct {
	kind ValueKind
	text string
	flag bool
}

// StringValue wraps raw input text.
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// BoolValue wraps a checkbox state.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Kind reports the stored variant.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsEmpty reports whether the value counts as unanswered: never written or an
// empty string. A false checkbox is an answer.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.text == ""
	case KindBool:
		return false
	default:
		return true
	}
}

// String renders the value as text; booleans become "true"/"false" and the
// zero value becomes "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.text
	case KindBool:
		if v.flag {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Bool returns the checkbox state. Non-boolean values report false.
func (v Value) Bool() bool {
	return v.kind == KindBool && v.flag
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(other Value) bool {
	return v == other
}

// MarshalJSON encodes strings as JSON strings, booleans as JSON booleans and
// the zero value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.text)
	case KindBool:
		return json.Marshal(v.flag)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts strings, booleans and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch typed := raw.(type) {
	case nil:
		*v = Value{}
	case string:
		*v = StringValue(typed)
	case bool:
		*v = BoolValue(typed)
	default:
		return fmt.Errorf("wizard: unsupported value %s", string(data))
	}
	return nil
}

// Values maps field names onto answers.
type Values map[string]Value

// Lookup returns the stored value and whether one exists.
func (vs Values) Lookup(name string) (Value, bool) {
	if vs == nil {
		return Value{}, false
	}
	v, ok := vs[name]
	return v, ok
}

// StringOr returns the stored text or def when nothing was written.
func (vs Values) StringOr(name, def string) string {
	v, ok := vs.Lookup(name)
	if !ok || v.kind == KindNone {
		return def
	}
	return v.String()
}

// BoolOr returns the stored checkbox state or def when no boolean was written.
func (vs Values) BoolOr(name string, def bool) bool {
	v, ok := vs.Lookup(name)
	if !ok || v.kind != KindBool {
		return def
	}
	return v.flag
}

// Filled reports whether name holds a non-empty answer.
func (vs Values) Filled(name string) bool {
	v, ok := vs.Lookup(name)
	return ok && !v.IsEmpty()
}

// Clone copies the map.
func (vs Values) Clone() Values {
	if vs == nil {
		return nil
	}
	out := make(Values, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}

// Input is one change event coming from a control: the raw text of the
// control and, for checkboxes, its checked-state.
type Input struct {
	Text    string
	Checked bool
}

// TextInput builds an Input for text-like controls.
func TextInput(text string) Input {
	return Input{Text: text}
}

// CheckedInput builds an Input for a checkbox.
func CheckedInput(checked bool) Input {
	return Input{Checked: checked}
}
