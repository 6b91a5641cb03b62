package render

// Options describe per-request data that renderers can use to customise
// their output without mutating the view.
type Options struct {
	// Errors surfaces server-side validation feedback keyed by question id.
	// Form-level messages live under the empty key.
	Errors map[string][]string
	// Locale selects the UI language (ENGLISH, SPANISH, RUSSIAN). Question
	// titles and answers are author content and are never translated.
	Locale string
	// Translator resolves UI chrome labels for the locale. When nil,
	// renderers fall back to their built-in English strings.
	Translator Translator
	// OnMissing controls the string emitted when a translation is missing.
	OnMissing MissingTranslationHandler
	// Theme and Variant select the visual theme for renderers that support
	// theming (the HTML renderer maps these onto its manifest set).
	Theme   string
	Variant string
}
