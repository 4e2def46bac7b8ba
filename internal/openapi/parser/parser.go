package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formwizard/pkg/openapi"
)

// OrderExtension positions a property among its siblings.
const OrderExtension = "x-order"

// requestMediaTypes are tried in order before any other media type.
var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Operations converts a Document into operations keyed by operationId.
// Operations without an id are keyed "<method>:<path>".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]pkgopenapi.Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if op, ok := collectOperation(method, path, operation); ok {
				operations[op.ID] = op
			}
		}
	}
	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func collectOperation(method, path string, operation *openapi3.Operation) (pkgopenapi.Operation, bool) {
	if operation == nil {
		return pkgopenapi.Operation{}, false
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	op, err := pkgopenapi.NewOperation(id, strings.ToUpper(method), path, requestSchema(operation.RequestBody))
	if err != nil {
		return pkgopenapi.Operation{}, false
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	return op, true
}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if body == nil {
		return pkgopenapi.Schema{}
	}
	if body.Value == nil {
		return pkgopenapi.Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema, nil)
		}
	}
	for _, mt := range content {
		if mt != nil {
			return convertSchema(mt.Schema, nil)
		}
	}
	return pkgopenapi.Schema{}
}

// convertSchema copies ref into the public Schema. seen holds the nodes on
// the current path; a node reached again keeps only its reference.
func convertSchema(ref *openapi3.SchemaRef, seen map[*openapi3.Schema]bool) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil || seen[ref.Value] {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	if seen == nil {
		seen = make(map[*openapi3.Schema]bool)
	}
	seen[ref.Value] = true
	defer delete(seen, ref.Value)

	src := ref.Value
	out := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Order:       orderHint(src.Extensions),
	}
	if len(src.Enum) > 0 {
		out.Enum = append([]any(nil), src.Enum...)
	}
	if src.Items != nil {
		items := convertSchema(src.Items, seen)
		out.Items = &items
	}
	mergeProperties(&out, src, seen)
	for _, member := range src.AllOf {
		if member == nil || member.Value == nil || seen[member.Value] {
			continue
		}
		merged := convertSchema(member, seen)
		if out.Type == "" {
			out.Type = merged.Type
		}
		if out.Title == "" {
			out.Title = merged.Title
		}
		out.Required = append(out.Required, merged.Required...)
		for name, prop := range merged.Properties {
			if out.Properties == nil {
				out.Properties = make(map[string]pkgopenapi.Schema)
			}
			if _, exists := out.Properties[name]; !exists {
				out.Properties[name] = prop
			}
		}
	}
	return out
}

func mergeProperties(out *pkgopenapi.Schema, src *openapi3.Schema, seen map[*openapi3.Schema]bool) {
	out.Required = append(out.Required, src.Required...)
	if len(src.Properties) == 0 {
		return
	}
	out.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
	for name, prop := range src.Properties {
		out.Properties[name] = convertSchema(prop, seen)
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func orderHint(extensions map[string]any) int {
	raw, ok := extensions[OrderExtension]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}
