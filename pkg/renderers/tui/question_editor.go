package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// MaxQuestionDescriptionLen caps the optional helper text under a question
// title.
const MaxQuestionDescriptionLen = 100

// QuestionEditor drives the authoring loop over a template's question list.
// The list is owned by the caller; the editor mutates it in place and keeps
// no copy, so aborting mid-session leaves earlier edits applied.
type QuestionEditor struct {
	driver   PromptDriver
	pageSize int
}

// NewQuestionEditor constructs a question editor with defaults (survey
// driver).
func NewQuestionEditor(options ...Option) (*QuestionEditor, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return &QuestionEditor{driver: cfg.driver, pageSize: cfg.pageSize}, nil
}

const (
	actionAdd = iota
	actionEdit
	actionRemove
	actionMove
	actionDone
)

// Run loops the authoring menu until the user picks Done or aborts.
func (e *QuestionEditor) Run(ctx context.Context, questions *model.QuestionList) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if questions == nil {
		return errors.New("tui: question list is required")
	}

	actions := []string{"Add question", "Edit question", "Remove question", "Move question", "Done"}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := e.driver.Select(ctx, SelectConfig{
			Message:  fmt.Sprintf("Questions (%d)", len(*questions)),
			Options:  actions,
			PageSize: e.pageSize,
		})
		if err != nil {
			return err
		}
		switch choice {
		case actionAdd:
			err = e.addQuestion(ctx, questions)
		case actionEdit:
			err = e.editQuestion(ctx, questions)
		case actionRemove:
			err = e.removeQuestion(ctx, questions)
		case actionMove:
			err = e.moveQuestion(ctx, questions)
		case actionDone:
			return nil
		default:
			return fmt.Errorf("tui: unknown editor action %d", choice)
		}
		if err != nil {
			return err
		}
	}
}

func (e *QuestionEditor) addQuestion(ctx context.Context, questions *model.QuestionList) error {
	q := model.NewQuestion()

	title, err := e.promptTitle(ctx, "")
	if err != nil {
		return err
	}
	q.Title = title

	qType, err := e.promptType(ctx, q.Type)
	if err != nil {
		return err
	}
	q.Type = qType

	description, err := e.promptDescription(ctx, "", q.Type)
	if err != nil {
		return err
	}
	q.Description = description

	displayed, err := e.driver.Confirm(ctx, ConfirmConfig{
		Message: "Show answers in the results table?",
	})
	if err != nil {
		return err
	}
	q.DisplayedInTable = displayed

	if q.Type == model.QuestionCheckbox {
		options, err := e.promptNewOptions(ctx)
		if err != nil {
			return err
		}
		q.Options = options
	}

	questions.Add(q)
	return nil
}

func (e *QuestionEditor) editQuestion(ctx context.Context, questions *model.QuestionList) error {
	id, err := e.pickQuestion(ctx, *questions, "Edit which question?")
	if err != nil || id == "" {
		return err
	}

	fields := []string{"Title", "Description", "Type", "Displayed in table", "Options", "Back"}
	for {
		q := questions.Find(id)
		if q == nil {
			return nil
		}
		choice, err := e.driver.Select(ctx, SelectConfig{
			Message:  q.Title,
			Options:  fields,
			PageSize: e.pageSize,
		})
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			title, err := e.promptTitle(ctx, q.Title)
			if err != nil {
				return err
			}
			if err := questions.SetField(id, model.FieldTitle, title); err != nil {
				return err
			}
		case 1:
			description, err := e.promptDescription(ctx, q.Description, q.Type)
			if err != nil {
				return err
			}
			if err := questions.SetField(id, model.FieldDescription, description); err != nil {
				return err
			}
		case 2:
			qType, err := e.promptType(ctx, q.Type)
			if err != nil {
				return err
			}
			if err := questions.SetField(id, model.FieldType, qType); err != nil {
				return err
			}
		case 3:
			displayed, err := e.driver.Confirm(ctx, ConfirmConfig{
				Message: "Show answers in the results table?",
				Default: q.DisplayedInTable,
			})
			if err != nil {
				return err
			}
			if err := questions.SetField(id, model.FieldDisplayedInTable, displayed); err != nil {
				return err
			}
		case 4:
			if q.Type != model.QuestionCheckbox {
				if err := e.driver.Info(ctx, "Only checkbox questions have options."); err != nil {
					return err
				}
				continue
			}
			if err := e.editOptions(ctx, questions, id); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (e *QuestionEditor) editOptions(ctx context.Context, questions *model.QuestionList, id string) error {
	for {
		q := questions.Find(id)
		if q == nil {
			return nil
		}
		rows := make([]string, 0, len(q.Options)+2)
		for i, option := range q.Options {
			label := option
			if label == "" {
				label = "(empty)"
			}
			rows = append(rows, fmt.Sprintf("%d. %s", i+1, label))
		}
		rows = append(rows, "Add option", "Done")

		choice, err := e.driver.Select(ctx, SelectConfig{
			Message:  "Options",
			Options:  rows,
			PageSize: e.pageSize,
		})
		if err != nil {
			return err
		}
		switch {
		case choice == len(rows)-1:
			return nil
		case choice == len(rows)-2:
			if err := questions.AddOption(id); err != nil {
				return err
			}
			value, err := e.driver.Input(ctx, InputConfig{Message: "Option text"})
			if err != nil {
				return err
			}
			if err := questions.SetOption(id, len(questions.Find(id).Options)-1, value); err != nil {
				return err
			}
		case choice >= 0 && choice < len(q.Options):
			action, err := e.driver.Select(ctx, SelectConfig{
				Message: rows[choice],
				Options: []string{"Edit", "Delete", "Cancel"},
			})
			if err != nil {
				return err
			}
			switch action {
			case 0:
				value, err := e.driver.Input(ctx, InputConfig{
					Message: "Option text",
					Default: q.Options[choice],
				})
				if err != nil {
					return err
				}
				if err := questions.SetOption(id, choice, value); err != nil {
					return err
				}
			case 1:
				if err := questions.RemoveOption(id, choice); err != nil {
					return err
				}
			}
		}
	}
}

func (e *QuestionEditor) removeQuestion(ctx context.Context, questions *model.QuestionList) error {
	id, err := e.pickQuestion(ctx, *questions, "Remove which question?")
	if err != nil || id == "" {
		return err
	}
	q := questions.Find(id)
	if q == nil {
		return nil
	}
	confirmed, err := e.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Remove %q?", q.Title),
	})
	if err != nil {
		return err
	}
	if confirmed {
		questions.Remove(id)
	}
	return nil
}

func (e *QuestionEditor) moveQuestion(ctx context.Context, questions *model.QuestionList) error {
	id, err := e.pickQuestion(ctx, *questions, "Move which question?")
	if err != nil || id == "" {
		return err
	}
	direction, err := e.driver.Select(ctx, SelectConfig{
		Message: "Move",
		Options: []string{"Up", "Down", "Cancel"},
	})
	if err != nil {
		return err
	}
	switch direction {
	case 0:
		questions.Move(id, -1)
	case 1:
		questions.Move(id, 1)
	}
	return nil
}

// pickQuestion returns the id of the selected question, or empty when the
// list has no questions to pick from.
func (e *QuestionEditor) pickQuestion(ctx context.Context, questions model.QuestionList, message string) (string, error) {
	if len(questions) == 0 {
		return "", e.driver.Info(ctx, "No questions yet.")
	}
	labels := make([]string, 0, len(questions))
	for _, q := range questions {
		label := q.Title
		if label == "" {
			label = q.ID
		}
		labels = append(labels, label)
	}
	choice, err := e.driver.Select(ctx, SelectConfig{
		Message:  message,
		Options:  labels,
		PageSize: e.pageSize,
	})
	if err != nil {
		return "", err
	}
	if choice < 0 || choice >= len(questions) {
		return "", nil
	}
	return questions[choice].ID, nil
}

func (e *QuestionEditor) promptTitle(ctx context.Context, current string) (string, error) {
	for {
		value, err := e.driver.Input(ctx, InputConfig{
			Message: "Question title",
			Default: current,
		})
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(value) == "" {
			if err := e.driver.Info(ctx, "Title is required."); err != nil {
				return "", err
			}
			continue
		}
		if utf8.RuneCountInString(value) > model.MaxQuestionTitleLen {
			if err := e.driver.Info(ctx, fmt.Sprintf("Title cannot exceed %d characters.", model.MaxQuestionTitleLen)); err != nil {
				return "", err
			}
			continue
		}
		return value, nil
	}
}

// promptDescription caps the helper text only for single-line questions; the
// other types take unrestricted prompt text.
func (e *QuestionEditor) promptDescription(ctx context.Context, current string, qType model.QuestionType) (string, error) {
	for {
		value, err := e.driver.Input(ctx, InputConfig{
			Message: "Description (optional)",
			Default: current,
		})
		if err != nil {
			return "", err
		}
		if qType == model.QuestionSingleLine && utf8.RuneCountInString(value) > MaxQuestionDescriptionLen {
			if err := e.driver.Info(ctx, fmt.Sprintf("Description cannot exceed %d characters.", MaxQuestionDescriptionLen)); err != nil {
				return "", err
			}
			continue
		}
		return value, nil
	}
}

func (e *QuestionEditor) promptType(ctx context.Context, current model.QuestionType) (model.QuestionType, error) {
	types := model.QuestionTypes()
	labels := make([]string, 0, len(types))
	defaultIndex := 0
	for i, t := range types {
		labels = append(labels, t.Label())
		if t == current {
			defaultIndex = i
		}
	}
	choice, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Answer type",
		Options:      labels,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if choice < 0 || choice >= len(types) {
		return current, nil
	}
	return types[choice], nil
}

func (e *QuestionEditor) promptNewOptions(ctx context.Context) ([]string, error) {
	options := []string{}
	for {
		value, err := e.driver.Input(ctx, InputConfig{
			Message: "Option text (empty to finish)",
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(value) == "" {
			return options, nil
		}
		options = append(options, value)
	}
}
