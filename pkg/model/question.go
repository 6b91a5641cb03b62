package model

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"
)

// QuestionType is the closed set of question kinds a template can contain.
// Rendering and validation rules are a total function of this tag; editors and
// renderers switch exhaustively over it.
type QuestionType string

const (
	QuestionSingleLine QuestionType = "SINGLE_LINE"
	QuestionMultiLine  QuestionType = "MULTI_LINE"
	QuestionInteger    QuestionType = "INTEGER"
	QuestionCheckbox   QuestionType = "CHECKBOX"
)

// QuestionTypes lists every valid type in display order.
func QuestionTypes() []QuestionType {
	return []QuestionType{QuestionSingleLine, QuestionMultiLine, QuestionInteger, QuestionCheckbox}
}

// Valid reports whether t is a member of the closed type set.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleLine, QuestionMultiLine, QuestionInteger, QuestionCheckbox:
		return true
	default:
		return false
	}
}

// Label returns the human-readable name used in selection prompts.
func (t QuestionType) Label() string {
	switch t {
	case QuestionSingleLine:
		return "Single-line"
	case QuestionMultiLine:
		return "Multi-line"
	case QuestionInteger:
		return "Integer"
	case QuestionCheckbox:
		return "Checkbox"
	default:
		return string(t)
	}
}

// Input length limits enforced at authoring/fill time. They are never
// re-checked at submission.
const (
	MaxQuestionTitleLen = 50
	MaxSingleLineLen    = 100
	MaxMultiLineLen     = 250
)

// Question is authored once and owned by a Template. Its identity is fixed
// after creation: the id is assigned client-side from a time-based token and
// replaced server-side on save.
type Question struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Type             QuestionType `json:"type"`
	DisplayedInTable bool         `json:"displayedInTable"`
	// Options is meaningful only when Type is CHECKBOX. Consumers must not
	// read it for other types.
	Options []string `json:"options,omitempty"`
}

// HasOptions reports whether Options carries meaning for this question.
func (q Question) HasOptions() bool {
	return q.Type == QuestionCheckbox
}

var lastQuestionID atomic.Int64

// newQuestionID produces a time-based token, unique within the process even
// when questions are created faster than the clock ticks.
func newQuestionID() string {
	candidate := time.Now().UnixMilli()
	for {
		last := lastQuestionID.Load()
		if candidate <= last {
			candidate = last + 1
		}
		if lastQuestionID.CompareAndSwap(last, candidate) {
			return strconv.FormatInt(candidate, 10)
		}
	}
}

// NewQuestion returns a blank question with a fresh unique id: empty title and
// description, type SINGLE_LINE, not displayed in tables, no options.
func NewQuestion() Question {
	return Question{
		ID:      newQuestionID(),
		Type:    QuestionSingleLine,
		Options: []string{},
	}
}

// QuestionField names a single editable field for SetField.
type QuestionField string

const (
	FieldTitle            QuestionField = "title"
	FieldDescription      QuestionField = "description"
	FieldType             QuestionField = "type"
	FieldDisplayedInTable QuestionField = "displayedInTable"
	FieldOptions          QuestionField = "options"
)

// QuestionList is the ordered question collection owned by a template. Editors
// operate on a list owned by their caller; they never keep a copy.
type QuestionList []Question

// Add appends a question to the list.
func (l *QuestionList) Add(q Question) {
	*l = append(*l, q)
}

// Remove deletes the question with the given id. It reports whether anything
// was removed.
func (l *QuestionList) Remove(id string) bool {
	idx := l.index(id)
	if idx < 0 {
		return false
	}
	*l = append((*l)[:idx], (*l)[idx+1:]...)
	return true
}

// Move shifts the question with the given id by delta positions, clamping at
// the list bounds.
func (l *QuestionList) Move(id string, delta int) bool {
	idx := l.index(id)
	if idx < 0 || delta == 0 {
		return false
	}
	target := idx + delta
	if target < 0 {
		target = 0
	}
	if target >= len(*l) {
		target = len(*l) - 1
	}
	if target == idx {
		return false
	}
	q := (*l)[idx]
	rest := append((*l)[:idx], (*l)[idx+1:]...)
	*l = append(rest[:target], append(QuestionList{q}, rest[target:]...)...)
	return true
}

// Find returns a pointer to the question with the given id, or nil.
func (l QuestionList) Find(id string) *Question {
	idx := l.index(id)
	if idx < 0 {
		return nil
	}
	return &l[idx]
}

func (l QuestionList) index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

// SetField replaces a single field on the question with the given id.
// Switching the type away from CHECKBOX clears Options, so the invariant that
// options exist only for checkbox questions holds without every caller
// remembering to reset them.
func (l QuestionList) SetField(id string, field QuestionField, value any) error {
	q := l.Find(id)
	if q == nil {
		return fmt.Errorf("model: question %q not found", id)
	}
	switch field {
	case FieldTitle:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("model: field %q expects a string, got %T", field, value)
		}
		q.Title = s
	case FieldDescription:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("model: field %q expects a string, got %T", field, value)
		}
		q.Description = s
	case FieldType:
		t, ok := value.(QuestionType)
		if !ok {
			if s, isString := value.(string); isString {
				t = QuestionType(s)
				ok = true
			}
		}
		if !ok || !t.Valid() {
			return fmt.Errorf("model: invalid question type %v", value)
		}
		q.Type = t
		if t != QuestionCheckbox {
			q.Options = []string{}
		}
	case FieldDisplayedInTable:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("model: field %q expects a bool, got %T", field, value)
		}
		q.DisplayedInTable = b
	case FieldOptions:
		opts, ok := value.([]string)
		if !ok {
			return fmt.Errorf("model: field %q expects []string, got %T", field, value)
		}
		q.Options = append([]string(nil), opts...)
	default:
		return fmt.Errorf("model: unknown question field %q", field)
	}
	return nil
}

// AddOption appends an empty option to the question with the given id. The
// model does not insist on a CHECKBOX type here; the authoring UI only offers
// the operation for checkbox questions.
func (l QuestionList) AddOption(id string) error {
	q := l.Find(id)
	if q == nil {
		return fmt.Errorf("model: question %q not found", id)
	}
	q.Options = append(q.Options, "")
	return nil
}

// SetOption replaces the option text at index.
func (l QuestionList) SetOption(id string, index int, value string) error {
	q := l.Find(id)
	if q == nil {
		return fmt.Errorf("model: question %q not found", id)
	}
	if index < 0 || index >= len(q.Options) {
		return fmt.Errorf("model: option index %d out of range for question %q", index, id)
	}
	q.Options[index] = value
	return nil
}

// RemoveOption deletes the option at index. An out-of-range index leaves the
// question untouched and returns an error; it never panics.
func (l QuestionList) RemoveOption(id string, index int) error {
	q := l.Find(id)
	if q == nil {
		return fmt.Errorf("model: question %q not found", id)
	}
	if index < 0 || index >= len(q.Options) {
		return fmt.Errorf("model: option index %d out of range for question %q", index, id)
	}
	q.Options = append(q.Options[:index], q.Options[index+1:]...)
	return nil
}
