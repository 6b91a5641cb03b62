package render

import (
	"context"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// View is the data a renderer presents: a template and, when rendering a
// filled form, the form plus its answer set. Renderers treat it as read-only.
type View struct {
	Template *model.Template
	Form     *model.FilledForm
	Answers  model.AnswerSet
}

// Renderer converts a view into a byte representation (terminal text, HTML).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, options Options) ([]byte, error)
}
