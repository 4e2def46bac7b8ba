package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const orderedDoc = `{
  "Zeta": {
    "canAddMultiple": false,
    "fields": [
      { "name": "z2", "label": "Z2", "required": true },
      { "name": "z1", "label": "Z1", "required": false, "type": "number" }
    ]
  },
  "Alpha": {
    "canAddMultiple": true,
    "fields": [
      { "name": "kind", "label": "Kind", "required": false, "type": "dropdown", "options": ["B", "A"] },
      { "name": "agree", "label": "Agree", "required": true, "type": "checkbox", "index": 3, "API": "https://example.test" }
    ]
  }
}`

func TestDecodeJSON_PreservesOrder(t *testing.T) {
	s, err := DecodeJSON(strings.NewReader(orderedDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if diff := cmp.Diff([]string{"Zeta", "Alpha"}, s.Titles()); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}

	zeta, _ := s.Section(0)
	if zeta.Fields[0].Name != "z2" || zeta.Fields[1].Name != "z1" {
		t.Fatalf("field order not preserved: %+v", zeta.Fields)
	}
	if zeta.Fields[0].Kind() != FieldTypeText {
		t.Fatalf("expected default text type, got %q", zeta.Fields[0].Type)
	}

	alpha, _ := s.Section(1)
	if !alpha.AllowMultipleEntries {
		t.Fatalf("expected Alpha to allow multiple entries")
	}
	if diff := cmp.Diff([]string{"B", "A"}, alpha.Fields[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	agree := alpha.Fields[1]
	if agree.Index == nil || *agree.Index != 3 || agree.API != "https://example.test" {
		t.Fatalf("metadata not carried through: %+v", agree)
	}
}

func TestFormat_CanonicalShape(t *testing.T) {
	s := New(
		Section{
			Title: "Cover",
			Fields: []Field{
				{Name: "plan", Label: "Plan", Required: true, Type: FieldTypeText},
				{Name: "tier", Label: "Tier", Type: FieldTypeDropdown, Options: []string{"Gold", "Silver"}},
				{Name: "notes", Label: "Notes", Type: FieldTypeNumber, Options: []string{"ignored"}},
			},
		},
	)

	got, err := Format(s)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	want := `{
  "Cover": {
    "canAddMultiple": false,
    "fields": [
      {
        "name": "plan",
        "label": "Plan",
        "required": true
      },
      {
        "name": "tier",
        "label": "Tier",
        "required": false,
        "type": "dropdown",
        "options": [
          "Gold",
          "Silver"
        ]
      },
      {
        "name": "notes",
        "label": "Notes",
        "required": false,
        "type": "number"
      }
    ]
  }
}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("formatted document mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_DoesNotEscapeMarkup(t *testing.T) {
	s := New(Section{Title: "Terms & <Conditions>", Fields: []Field{}})
	got, err := Format(s)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(got, `"Terms & <Conditions>"`) {
		t.Fatalf("expected raw title in output, got %s", got)
	}
}

func TestFormat_EmptySchema(t *testing.T) {
	got, err := Format(Schema{})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != "{}" {
		t.Fatalf("expected {}, got %q", got)
	}
}

func TestDecodeJSON_RejectsTrailingContent(t *testing.T) {
	docs := map[string]string{
		"second object": `{"A": {"canAddMultiple": false, "fields": []}} {"B": {"canAddMultiple": false, "fields": []}}`,
		"stray scalar":  `{"A": {"canAddMultiple": false, "fields": []}} 1`,
		"unterminated":  `{"A": {"canAddMultiple": false, "fields": []}`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeJSON(strings.NewReader(doc)); !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestRoundTrip_JSON(t *testing.T) {
	first, err := DecodeJSON(strings.NewReader(orderedDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	text, err := Format(first)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	second, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_YAML(t *testing.T) {
	doc := `
Second:
  canAddMultiple: true
  fields:
    - { name: b, label: B, required: true, type: date }
First:
  canAddMultiple: false
  fields:
    - name: a
      label: A
      required: false
      type: dropdown
      options: [x, y]
`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"Second", "First"}, s.Titles()); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
	first, _ := s.Section(1)
	if first.Fields[0].Kind() != FieldTypeDropdown {
		t.Fatalf("expected dropdown, got %q", first.Fields[0].Type)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":        "   ",
		"array root":   `[1, 2]`,
		"unknown type": `{"A": {"canAddMultiple": false, "fields": [{"name": "x", "label": "X", "required": false, "type": "color"}]}}`,
		"scalar":       `just text`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error for %q", doc)
			}
		})
	}
}

func TestParse_UnknownTypeIsTyped(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"A": {"canAddMultiple": false, "fields": [{"name": "x", "label": "X", "required": false, "type": "color"}]}}`))
	if !errors.Is(err, ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
}

func TestSchema_UnmarshalJSON(t *testing.T) {
	var s Schema
	if err := s.UnmarshalJSON([]byte(orderedDoc)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Len() != 2 || s.FieldCount() != 4 {
		t.Fatalf("unexpected shape: %d sections, %d fields", s.Len(), s.FieldCount())
	}
}
