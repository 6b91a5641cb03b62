package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// checkboxDelimiter is the canonical join used for multi-select answer values
// across authoring preview, fill, and edit flows. Comma is used because option
// text may itself contain spaces; splitting trims surrounding whitespace so
// legacy ", "-joined values still reconstruct.
const checkboxDelimiter = ","

// Answer holds one respondent value for a question. QuestionID is a lookup
// reference into the owning template's question list, not ownership.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// AnswerSet is the ordered answer collection of a filled form, one entry per
// question at init time. Partially filled sets are valid and submittable.
type AnswerSet []Answer

// InitAnswers produces one empty-string answer per question, preserving the
// question order exactly.
func InitAnswers(questions QuestionList) AnswerSet {
	answers := make(AnswerSet, len(questions))
	for i, q := range questions {
		answers[i] = Answer{QuestionID: q.ID}
	}
	return answers
}

// Set replaces the value of the answer matching questionID. An unknown id is
// silently ignored: the set is left unchanged and no entry is added.
func (a AnswerSet) Set(questionID, value string) {
	for i := range a {
		if a[i].QuestionID == questionID {
			a[i].Value = value
			return
		}
	}
}

// Get returns the committed value for questionID, or the empty string.
func (a AnswerSet) Get(questionID string) string {
	for i := range a {
		if a[i].QuestionID == questionID {
			return a[i].Value
		}
	}
	return ""
}

// Selected reconstructs the checkbox selection set from the stored joined
// value, preserving insertion order.
func (a AnswerSet) Selected(questionID string) []string {
	return SplitSelections(a.Get(questionID))
}

// ToggleOption adds option to the selection set of the matching checkbox
// answer if absent, removes it if present. New options are appended, so
// insertion order is preserved. Toggling twice restores the original set.
func (a AnswerSet) ToggleOption(questionID, option string) {
	for i := range a {
		if a[i].QuestionID != questionID {
			continue
		}
		selected := SplitSelections(a[i].Value)
		found := false
		kept := selected[:0]
		for _, s := range selected {
			if s == option {
				found = true
				continue
			}
			kept = append(kept, s)
		}
		if !found {
			kept = append(kept, option)
		}
		a[i].Value = JoinSelections(kept)
		return
	}
}

// SetSelections replaces the selection set of the matching answer wholesale.
func (a AnswerSet) SetSelections(questionID string, options []string) {
	a.Set(questionID, JoinSelections(options))
}

// Serialize returns the submission payload: one {questionId, value} pair per
// answer. Selection sets are already held in their joined wire form, so values
// pass through unchanged.
func (a AnswerSet) Serialize() []Answer {
	return append([]Answer(nil), a...)
}

// SplitSelections splits a stored multi-select value into its option set,
// trimming whitespace and dropping empties.
func SplitSelections(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, checkboxDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinSelections joins an option set into the canonical stored form.
func JoinSelections(options []string) string {
	return strings.Join(options, checkboxDelimiter)
}

// ValidateAnswerInput applies the per-type input rule to a candidate value.
// A non-nil error means the keystroke must be rejected: the committed value
// stays as it was and the message is surfaced next to the field. INTEGER and
// CHECKBOX carry no client-side limits beyond the input affordance.
func ValidateAnswerInput(t QuestionType, value string) error {
	switch t {
	case QuestionSingleLine:
		if utf8.RuneCountInString(value) > MaxSingleLineLen {
			return fmt.Errorf("input cannot exceed %d characters", MaxSingleLineLen)
		}
	case QuestionMultiLine:
		if utf8.RuneCountInString(value) > MaxMultiLineLen {
			return fmt.Errorf("input cannot exceed %d characters", MaxMultiLineLen)
		}
	case QuestionInteger:
		if value == "" {
			return nil
		}
		if _, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err != nil {
			return fmt.Errorf("input must be a whole number")
		}
	case QuestionCheckbox:
	}
	return nil
}
