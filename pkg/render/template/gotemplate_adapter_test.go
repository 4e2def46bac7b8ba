package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplateWithSlug(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("step-title", map[string]any{"title": "Insured Details #2"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "step-title.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"app": "formwizard"}))
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global.tmpl", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("register filter: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"label": "Premium Due"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
	if err := engine.RegisterFilter("", nil); err == nil {
		t.Fatalf("empty filter registration must fail")
	}
}

func TestGoTemplateEngine_RenderStringWithTranslator(t *testing.T) {
	engine := newEngine(t, gotemplate.WithTemplateFunc(render.TemplateI18nFuncs(nil, nil)))

	out, err := engine.Render(`{{ translate("en", "wizard.next", "Next") }}`, nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "Next" {
		t.Fatalf("translate fallback = %q", out)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"PDPA Consent":        "pdpa-consent",
		"  Insured Details  ": "insured-details",
		"date_of_birth":       "date-of-birth",
		"--":                  "",
	}
	for in, want := range cases {
		if got := gotemplate.Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew_RequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
	if _, err := gotemplate.New(gotemplate.WithGoTemplateOptions()); err == nil {
		t.Fatalf("go-template options must not stand in for a template source")
	}
}

func TestGoTemplateEngine_StructData(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGoTemplateOptions())

	type step struct {
		Title string `json:"title"`
	}
	out, err := engine.RenderString(`{{ title|slug }}`, step{Title: "PDPA Consent"})
	if err != nil {
		t.Fatalf("render struct data: %v", err)
	}
	if out != "pdpa-consent" {
		t.Fatalf("struct data render = %q", out)
	}

	if _, err := engine.RenderString(`{{ x }}`, []string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
