package render

import "strings"

// TemplateI18nFuncs returns helpers for template engines (for example via
// gotemplate.WithTemplateFunc). The helper signature is:
//
//	translate(locale, key, fallback) string
//
// Missing keys fall back to the supplied text, then the key itself.
func TemplateI18nFuncs(t Translator, onMissing MissingTranslationHandler) map[string]any {
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return map[string]any{
		"translate": func(locale, key string, fallback ...string) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			def := ""
			if len(fallback) > 0 {
				def = fallback[0]
			}
			return translate(locale, key, def, t, onMissing)
		},
	}
}
