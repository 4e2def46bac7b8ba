package formwizard

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-formwizard/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formwizard/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// NewLoader constructs an OpenAPI loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs the kin-openapi backed parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// ImportOpenAPI loads src, finds operationID and maps its request body onto a
// wizard schema.
func ImportOpenAPI(ctx context.Context, loader pkgopenapi.Loader, src pkgopenapi.Source, operationID string, options ...pkgopenapi.ImportOption) (schema.Schema, error) {
	if loader == nil {
		loader = NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("formwizard: load openapi: %w", err)
	}
	operations, err := NewParser().Operations(ctx, doc)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("formwizard: %w", err)
	}
	return pkgopenapi.ImportOperation(operations, operationID, options...)
}
