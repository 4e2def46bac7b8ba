package formwizard

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	pkgopenapi "github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

func quoteWizard() schema.Schema {
	return schema.New(
		schema.Section{
			Title: "Create quote",
			Fields: []schema.Field{
				{Name: "applicant_name", Label: "Applicant Name", Required: true, Type: schema.FieldTypeText},
				{Name: "start_date", Label: "Start Date", Type: schema.FieldTypeDate},
				{Name: "cover", Label: "Cover", Type: schema.FieldTypeDropdown, Options: []string{"basic", "full"}},
			},
		},
		schema.Section{
			Title:                "Vehicles",
			AllowMultipleEntries: true,
			Fields: []schema.Field{
				{Name: "insured", Label: "Insured", Type: schema.FieldTypeCheckbox},
				{Name: "make", Label: "Make", Required: true, Type: schema.FieldTypeText},
			},
		},
	)
}

func TestImportOpenAPI_File(t *testing.T) {
	got, err := ImportOpenAPI(context.Background(), nil, pkgopenapi.SourceFromFile("testdata/quotes.yaml"), "createQuote")
	require.NoError(t, err)
	if diff := cmp.Diff(quoteWizard(), got); diff != "" {
		t.Fatalf("imported schema mismatch (-want +got):\n%s", diff)
	}
}

func TestImportOpenAPI_HTTP(t *testing.T) {
	doc, err := os.ReadFile("testdata/quotes.yaml")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(doc)
	}))
	defer srv.Close()

	src, err := pkgopenapi.SourceFromURL(srv.URL + "/openapi.yaml")
	require.NoError(t, err)

	_, err = ImportOpenAPI(context.Background(), NewLoader(), src, "createQuote")
	require.Error(t, err, "http loading is disabled by default")

	loader := NewLoader(pkgopenapi.WithHTTPClient(srv.Client()), pkgopenapi.WithHTTPFallback(5*time.Second))
	got, err := ImportOpenAPI(context.Background(), loader, src, "createQuote")
	require.NoError(t, err)
	require.Equal(t, quoteWizard(), got)

	missing, err := pkgopenapi.SourceFromURL(srv.URL + "/missing.yaml")
	require.NoError(t, err)
	_, err = ImportOpenAPI(context.Background(), loader, missing, "createQuote")
	require.Error(t, err)
}

func TestImportOpenAPI_UnknownOperation(t *testing.T) {
	_, err := ImportOpenAPI(context.Background(), nil, pkgopenapi.SourceFromFile("testdata/quotes.yaml"), "deleteQuote")
	require.ErrorIs(t, err, pkgopenapi.ErrOperationNotFound)
}

func TestRenderPreset(t *testing.T) {
	out, err := RenderPreset(context.Background(), "insurance", "tui")
	require.NoError(t, err)
	require.Contains(t, string(out), "Policy (1/")

	_, err = RenderPreset(context.Background(), "missing", "")
	require.Error(t, err)
}

func TestEmbeddedFS(t *testing.T) {
	entries, err := fs.ReadDir(EmbeddedTemplates(), ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	entries, err = fs.ReadDir(EmbeddedAssets(), ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}
