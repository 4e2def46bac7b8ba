package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ContentType is the MIME type of the exported document.
const ContentType = "application/json"

type fieldFile struct {
	Name     string   `json:"name" yaml:"name"`
	Label    string   `json:"label" yaml:"label"`
	Required bool     `json:"required" yaml:"required"`
	Type     string   `json:"type,omitempty" yaml:"type,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
	Index    *int     `json:"index,omitempty" yaml:"index,omitempty"`
	API      string   `json:"API,omitempty" yaml:"API,omitempty"`
}

type sectionFile struct {
	CanAddMultiple bool        `json:"canAddMultiple" yaml:"canAddMultiple"`
	Fields         []fieldFile `json:"fields" yaml:"fields"`
}

// Parse decodes a JSON or YAML document. JSON is attempted first when the
// payload starts with an object brace.
func Parse(data []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Schema{}, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
	}
	if trimmed[0] == '{' {
		if s, err := DecodeJSON(bytes.NewReader(trimmed)); err == nil {
			return s, nil
		}
	}
	s, err := DecodeYAML(trimmed)
	if err != nil {
		return Schema{}, err
	}
	return s, nil
}

// DecodeJSON reads a schema document from r, keeping section order.
func DecodeJSON(r io.Reader) (Schema, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return Schema{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Schema{}, fmt.Errorf("%w: expected object at document root", ErrInvalidDocument)
	}

	var out Schema
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Schema{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		title, ok := keyTok.(string)
		if !ok {
			return Schema{}, fmt.Errorf("%w: expected section title", ErrInvalidDocument)
		}

		var raw sectionFile
		if err := dec.Decode(&raw); err != nil {
			return Schema{}, fmt.Errorf("%w: section %q: %v", ErrInvalidDocument, title, err)
		}
		section, err := raw.toSection(title)
		if err != nil {
			return Schema{}, err
		}
		out.Sections = append(out.Sections, section)
	}

	if _, err := dec.Token(); err != nil {
		return Schema{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Schema{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return Schema{}, fmt.Errorf("%w: unexpected %v after the root object", ErrInvalidDocument, tok)
	}
	return out, nil
}

// DecodeYAML reads a YAML document with the same shape as the JSON format.
func DecodeYAML(data []byte) (Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Schema{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Schema{}, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return Schema{}, fmt.Errorf("%w: expected mapping at document root", ErrInvalidDocument)
	}

	var out Schema
	for i := 0; i+1 < len(node.Content); i += 2 {
		title := node.Content[i].Value
		var raw sectionFile
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return Schema{}, fmt.Errorf("%w: section %q: %v", ErrInvalidDocument, title, err)
		}
		section, err := raw.toSection(title)
		if err != nil {
			return Schema{}, err
		}
		out.Sections = append(out.Sections, section)
	}
	return out, nil
}

func (raw sectionFile) toSection(title string) (Section, error) {
	section := Section{
		Title:                title,
		AllowMultipleEntries: raw.CanAddMultiple,
		Fields:               make([]Field, 0, len(raw.Fields)),
	}
	for _, rf := range raw.Fields {
		kind, err := ParseFieldType(rf.Type)
		if err != nil {
			return Section{}, fmt.Errorf("section %q field %q: %w", title, rf.Name, err)
		}
		section.Fields = append(section.Fields, Field{
			Name:     rf.Name,
			Label:    rf.Label,
			Required: rf.Required,
			Type:     kind,
			Options:  rf.Options,
			Index:    rf.Index,
			API:      rf.API,
		})
	}
	return section, nil
}

// MarshalJSON emits the canonical compact document. Section order follows the
// schema; `type` is omitted for text fields and `options` is only written for
// dropdowns.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, section := range s.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.MarshalNoEscape(section.Title)
		if err != nil {
			return nil, fmt.Errorf("schema: encode title %q: %w", section.Title, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		body, err := json.MarshalNoEscape(fromSection(section))
		if err != nil {
			return nil, fmt.Errorf("schema: encode section %q: %w", section.Title, err)
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an ordered document into s.
func (s *Schema) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// EncodeJSON writes the document with two-space indentation. Markup
// characters are written as is.
func EncodeJSON(w io.Writer, s Schema) error {
	var buf bytes.Buffer
	if len(s.Sections) == 0 {
		buf.WriteString("{}")
	} else {
		buf.WriteString("{\n")
		for i, section := range s.Sections {
			key, err := json.MarshalNoEscape(section.Title)
			if err != nil {
				return fmt.Errorf("schema: encode title %q: %w", section.Title, err)
			}
			body, err := indentSection(section)
			if err != nil {
				return fmt.Errorf("schema: encode section %q: %w", section.Title, err)
			}
			buf.WriteString("  ")
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(body)
			if i < len(s.Sections)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteByte('}')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// indentSection encodes one section body nested one level under the root.
func indentSection(section Section) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("  ", "  ")
	if err := enc.Encode(fromSection(section)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Format returns the indented JSON text of s.
func Format(s Schema) (string, error) {
	var sb strings.Builder
	if err := EncodeJSON(&sb, s); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func fromSection(section Section) sectionFile {
	out := sectionFile{
		CanAddMultiple: section.AllowMultipleEntries,
		Fields:         make([]fieldFile, 0, len(section.Fields)),
	}
	for _, field := range section.Fields {
		ff := fieldFile{
			Name:     field.Name,
			Label:    field.Label,
			Required: field.Required,
			Index:    field.Index,
			API:      field.API,
		}
		if kind := field.Kind(); kind != FieldTypeText {
			ff.Type = string(kind)
		}
		if field.Kind() == FieldTypeDropdown && field.Options != nil {
			ff.Options = append([]string{}, field.Options...)
		}
		out.Fields = append(out.Fields, ff)
	}
	return out
}
