// Package html renders read-only template and form detail pages. Author
// content is sanitized before it reaches the template engine; the engine's
// autoescaping covers the rest.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/render"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/render/template"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/render/template/gotemplate"
)

const (
	templateDetailName = "template_detail"
	formDetailName     = "form_detail"

	defaultVariant = "LIGHT"
)

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	engine   template.TemplateRenderer
	policy   *bluemonday.Policy
	manifest theme.Manifest
}

// Option configures the HTML renderer.
type Option func(*Renderer)

// WithEngine overrides the template engine. The default engine loads the
// embedded template bundle.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithPolicy overrides the sanitizer policy applied to author content.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithManifest replaces the built-in theme manifest.
func WithManifest(manifest theme.Manifest) Option {
	return func(r *Renderer) {
		r.manifest = manifest
	}
}

// New constructs an HTML renderer with the embedded templates, a strict
// sanitizer policy, and the built-in LIGHT/DARK theme manifest.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		policy:   bluemonday.StrictPolicy(),
		manifest: defaultManifest(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.engine == nil {
		templates, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("html: embedded templates: %w", err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(templates))
		if err != nil {
			return nil, fmt.Errorf("html: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the output media type.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the template detail page, or the form detail page when the
// view carries a filled form.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if view.Template == nil {
		return nil, errors.New("html: view template is required")
	}

	name := templateDetailName
	if view.Form != nil {
		name = formDetailName
	}

	out, err := r.engine.RenderTemplate(name, r.buildContext(view, opts))
	if err != nil {
		return nil, fmt.Errorf("html: render %s: %w", name, err)
	}
	return []byte(out), nil
}

var _ render.Renderer = (*Renderer)(nil)

func (r *Renderer) buildContext(view render.View, opts render.Options) map[string]any {
	tpl := view.Template

	answers := view.Answers
	if answers == nil && view.Form != nil {
		answers = view.Form.Answers
	}

	questions := make([]map[string]any, 0, len(tpl.Questions))
	for _, q := range tpl.Questions {
		entry := map[string]any{
			"id":          q.ID,
			"title":       r.clean(q.Title),
			"description": r.clean(q.Description),
			"type":        string(q.Type),
			"errors":      opts.Errors[q.ID],
		}
		if q.HasOptions() {
			entry["options"] = r.cleanAll(q.Options)
		}
		if view.Form != nil {
			value := answers.Get(q.ID)
			if q.Type == model.QuestionCheckbox {
				entry["selections"] = r.cleanAll(model.SplitSelections(value))
			} else {
				entry["answer"] = r.clean(value)
			}
		}
		questions = append(questions, entry)
	}

	data := map[string]any{
		"labels": r.labels(opts),
		"template": map[string]any{
			"title":       r.clean(tpl.Title),
			"description": r.clean(tpl.Description),
			"topic":       r.clean(tpl.Topic),
			"tags":        r.cleanAll(tpl.Tags),
			"public":      tpl.Public,
			"author":      r.authorName(tpl),
			"image_url":   tpl.ImageURL,
		},
		"questions":   questions,
		"form_errors": opts.Errors[""],
		"theme":       r.themeContext(opts),
	}

	if view.Form != nil {
		if view.Form.User != nil {
			data["respondent"] = r.clean(view.Form.User.Name)
		}
		if !view.Form.CreatedAt.IsZero() {
			data["submitted_at"] = view.Form.CreatedAt.Format("2006-01-02 15:04")
		}
	}
	return data
}

func (r *Renderer) labels(opts render.Options) map[string]any {
	return map[string]any{
		"questions":  render.Localize(opts, render.LabelQuestions, "Questions"),
		"answers":    render.Localize(opts, render.LabelAnswers, "Answers"),
		"topic":      render.Localize(opts, render.LabelTopic, "Topic"),
		"tags":       render.Localize(opts, render.LabelTags, "Tags"),
		"author":     render.Localize(opts, render.LabelAuthor, "Author"),
		"submitted":  render.Localize(opts, render.LabelSubmitted, "Submitted"),
		"public":     render.Localize(opts, render.LabelPublic, "Public"),
		"restricted": render.Localize(opts, render.LabelRestricted, "Restricted"),
		"no_answer":  render.Localize(opts, render.LabelNoAnswer, "No answer"),
	}
}

func (r *Renderer) themeContext(opts render.Options) map[string]any {
	cfg := r.themeConfig(opts.Variant)
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}

// themeConfig resolves the variant's tokens over the manifest base and
// derives the CSS custom properties the page inlines.
func (r *Renderer) themeConfig(variant string) theme.RendererConfig {
	if variant == "" {
		variant = defaultVariant
	}

	tokens := make(map[string]string, len(r.manifest.Tokens))
	for key, value := range r.manifest.Tokens {
		tokens[key] = value
	}
	selected, ok := r.manifest.Variants[variant]
	if !ok {
		variant = defaultVariant
		selected = r.manifest.Variants[variant]
	}
	for key, value := range selected.Tokens {
		tokens[key] = value
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return theme.RendererConfig{
		Theme:   r.manifest.Name,
		Variant: variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}
}

func (r *Renderer) clean(s string) string {
	return r.policy.Sanitize(s)
}

func (r *Renderer) cleanAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, r.clean(s))
	}
	return out
}

func (r *Renderer) authorName(tpl *model.Template) string {
	if tpl.Author == nil {
		return ""
	}
	return r.clean(tpl.Author.Name)
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

func defaultManifest() theme.Manifest {
	return theme.Manifest{
		Name:    "formsapp",
		Version: "1.0.0",
		Tokens: map[string]string{
			"font-family": "system-ui, sans-serif",
			"accent":      "#2563eb",
		},
		Variants: map[string]theme.Variant{
			"LIGHT": {
				Tokens: map[string]string{
					"background": "#ffffff",
					"foreground": "#111827",
				},
			},
			"DARK": {
				Tokens: map[string]string{
					"background": "#111827",
					"foreground": "#f9fafb",
				},
			},
		},
	}
}
