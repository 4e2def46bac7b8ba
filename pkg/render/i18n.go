package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a key is
// looked up without a configured Translator.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key cannot be
// translated. args carries a map with the "default" text as its first item.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Labels are the chrome strings shown around the fields. AddEntry is followed
// by the section title ("Add Insured Details").
type Labels struct {
	Next        string `json:"next"`
	Back        string `json:"back"`
	Submit      string `json:"submit"`
	AddEntry    string `json:"addEntry"`
	RemoveEntry string `json:"removeEntry"`
	Sections    string `json:"sections"`
	Required    string `json:"required"`
	Yes         string `json:"yes"`
	No          string `json:"no"`
}

// DefaultLabels returns the English chrome strings.
func DefaultLabels() Labels {
	return Labels{
		Next:        "Next",
		Back:        "Back",
		Submit:      "Submit",
		AddEntry:    "Add",
		RemoveEntry: "Remove",
		Sections:    "Sections",
		Required:    "This field is required",
		Yes:         "Yes",
		No:          "No",
	}
}

// LocalizeLabels translates the chrome strings using the `wizard.*` keys.
func LocalizeLabels(opts RenderOptions) Labels {
	labels := DefaultLabels()
	if opts.Translator == nil && opts.OnMissing == nil {
		return labels
	}
	tr := func(key, fallback string) string {
		return translate(opts.Locale, "wizard."+key, fallback, opts.Translator, opts.OnMissing)
	}
	labels.Next = tr("next", labels.Next)
	labels.Back = tr("back", labels.Back)
	labels.Submit = tr("submit", labels.Submit)
	labels.AddEntry = tr("addEntry", labels.AddEntry)
	labels.RemoveEntry = tr("removeEntry", labels.RemoveEntry)
	labels.Sections = tr("sections", labels.Sections)
	labels.Required = tr("required", labels.Required)
	labels.Yes = tr("yes", labels.Yes)
	labels.No = tr("no", labels.No)
	return labels
}

// LocalizeSnapshot translates step titles (`section.<title>`) and field
// labels (`field.<name>`) in place. Without a translator the snapshot is left
// as is.
func LocalizeSnapshot(snap *wizard.Snapshot, opts RenderOptions) {
	if snap == nil || opts.Translator == nil {
		return
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	for i := range snap.Steps {
		snap.Steps[i].Title = translate(opts.Locale, "section."+snap.Steps[i].Title, snap.Steps[i].Title, opts.Translator, onMissing)
	}
	snap.Title = translate(opts.Locale, "section."+snap.Title, snap.Title, opts.Translator, onMissing)
	for i := range snap.Fields {
		snap.Fields[i].Label = translate(opts.Locale, "field."+snap.Fields[i].Name, snap.Fields[i].Label, opts.Translator, onMissing)
	}
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	if len(args) > 0 {
		if params, ok := args[0].(map[string]any); ok {
			if fallback, ok := params["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
