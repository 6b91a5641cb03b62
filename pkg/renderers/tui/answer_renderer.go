package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/render"
)

// AnswerRenderer drives per-question terminal prompts for filling and editing
// forms. Each question type maps onto exactly one prompt kind; an unknown
// type aborts the session rather than guessing.
type AnswerRenderer struct {
	driver   PromptDriver
	pageSize int
}

// NewAnswerRenderer constructs an answer renderer with defaults (survey
// driver).
func NewAnswerRenderer(options ...Option) (*AnswerRenderer, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return &AnswerRenderer{driver: cfg.driver, pageSize: cfg.pageSize}, nil
}

// Collect prompts for every question in order and returns the resulting
// answer set. Existing answers prefill the prompts, so the same call serves
// both first fill and edit. Questions may be left unanswered; empty values
// are kept in place so the set stays aligned with the question list.
func (r *AnswerRenderer) Collect(ctx context.Context, questions model.QuestionList, answers model.AnswerSet) (model.AnswerSet, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	merged := model.InitAnswers(questions)
	for _, q := range questions {
		merged.Set(q.ID, answers.Get(q.ID))
	}

	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.promptQuestion(ctx, q, merged); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (r *AnswerRenderer) promptQuestion(ctx context.Context, q model.Question, answers model.AnswerSet) error {
	switch q.Type {
	case model.QuestionSingleLine:
		return r.promptText(ctx, q, answers, false)
	case model.QuestionMultiLine:
		return r.promptText(ctx, q, answers, true)
	case model.QuestionInteger:
		return r.promptText(ctx, q, answers, false)
	case model.QuestionCheckbox:
		return r.promptCheckbox(ctx, q, answers)
	default:
		return fmt.Errorf("tui: unknown question type %q", q.Type)
	}
}

// promptText re-asks until the per-type rule accepts the input. An invalid
// entry leaves the committed value untouched, mirroring a rejected keystroke.
func (r *AnswerRenderer) promptText(ctx context.Context, q model.Question, answers model.AnswerSet, multiline bool) error {
	committed := answers.Get(q.ID)
	for {
		var value string
		var err error
		if multiline {
			value, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: q.Title,
				Default: committed,
				Help:    q.Description,
			})
		} else {
			value, err = r.driver.Input(ctx, InputConfig{
				Message: q.Title,
				Default: committed,
				Help:    q.Description,
			})
		}
		if err != nil {
			return err
		}
		if err := model.ValidateAnswerInput(q.Type, value); err != nil {
			if infoErr := r.driver.Info(ctx, sentence(err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		answers.Set(q.ID, value)
		return nil
	}
}

func (r *AnswerRenderer) promptCheckbox(ctx context.Context, q model.Question, answers model.AnswerSet) error {
	if len(q.Options) == 0 {
		return nil
	}
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  q.Title,
		Options:  q.Options,
		Defaults: indicesOf(q.Options, answers.Selected(q.ID)),
		Help:     q.Description,
		PageSize: r.pageSize,
	})
	if err != nil {
		return err
	}
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(q.Options) {
			selected = append(selected, q.Options[idx])
		}
	}
	answers.SetSelections(q.ID, selected)
	return nil
}

// Name reports the renderer identifier.
func (r *AnswerRenderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *AnswerRenderer) ContentType() string {
	return "application/json"
}

// Render runs the prompt session for the view's template and serializes the
// collected answers as JSON.
func (r *AnswerRenderer) Render(ctx context.Context, view render.View, _ render.Options) ([]byte, error) {
	if view.Template == nil {
		return nil, errors.New("tui: view template is required")
	}
	answers := view.Answers
	if answers == nil && view.Form != nil {
		answers = view.Form.Answers
	}
	collected, err := r.Collect(ctx, view.Template.Questions, answers)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(collected.Serialize())
	if err != nil {
		return nil, fmt.Errorf("tui: encode answers: %w", err)
	}
	return out, nil
}

var _ render.Renderer = (*AnswerRenderer)(nil)

// sentence presents a validation error the way the form UI words it:
// capitalised and terminated.
func sentence(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return ""
	}
	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + "."
}
