package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func checkboxQuestions() QuestionList {
	return QuestionList{
		{ID: "q1", Type: QuestionSingleLine},
		{ID: "q2", Type: QuestionCheckbox, Options: []string{"A", "B"}},
		{ID: "q3", Type: QuestionInteger},
	}
}

func TestInitAnswersMatchesQuestionOrder(t *testing.T) {
	questions := checkboxQuestions()
	answers := InitAnswers(questions)

	if len(answers) != len(questions) {
		t.Fatalf("expected %d answers, got %d", len(questions), len(answers))
	}
	for i, q := range questions {
		if answers[i].QuestionID != q.ID {
			t.Fatalf("answer %d references %q, want %q", i, answers[i].QuestionID, q.ID)
		}
		if answers[i].Value != "" {
			t.Fatalf("answer %d should start empty, got %q", i, answers[i].Value)
		}
	}
}

func TestSetUnknownQuestionIDIsNoOp(t *testing.T) {
	answers := InitAnswers(checkboxQuestions())
	before := append(AnswerSet(nil), answers...)

	answers.Set("nope", "value")

	if diff := cmp.Diff(before, answers); diff != "" {
		t.Fatalf("answer set changed (-want +got):\n%s", diff)
	}
}

func TestToggleOptionDoubleToggleRestores(t *testing.T) {
	answers := InitAnswers(checkboxQuestions())
	answers.SetSelections("q2", []string{"A"})

	answers.ToggleOption("q2", "B")
	if diff := cmp.Diff([]string{"A", "B"}, answers.Selected("q2")); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	answers.ToggleOption("q2", "B")
	if diff := cmp.Diff([]string{"A"}, answers.Selected("q2")); diff != "" {
		t.Fatalf("double toggle must restore original set (-want +got):\n%s", diff)
	}
}

func TestToggleSequenceLeavesOnlyB(t *testing.T) {
	answers := InitAnswers(checkboxQuestions())

	answers.ToggleOption("q2", "A")
	answers.ToggleOption("q2", "B")
	answers.ToggleOption("q2", "A")

	if got := answers.Get("q2"); got != "B" {
		t.Fatalf("expected submitted value %q, got %q", "B", got)
	}
}

func TestSplitSelectionsToleratesLegacyJoin(t *testing.T) {
	// Earlier builds joined with ", "; reconstruction must still work.
	if diff := cmp.Diff([]string{"A", "B"}, SplitSelections("A, B")); diff != "" {
		t.Fatalf("legacy join mismatch (-want +got):\n%s", diff)
	}
	if got := SplitSelections(""); got != nil {
		t.Fatalf("empty value should yield no selections, got %v", got)
	}
}

func TestSerializeCopiesAnswers(t *testing.T) {
	answers := InitAnswers(checkboxQuestions())
	answers.Set("q1", "hello")

	payload := answers.Serialize()
	payload[0].Value = "mutated"

	if answers[0].Value != "hello" {
		t.Fatalf("serialize must not alias the working set")
	}
}

func TestValidateAnswerInputBoundaries(t *testing.T) {
	atLimit := strings.Repeat("x", MaxSingleLineLen)
	if err := ValidateAnswerInput(QuestionSingleLine, atLimit); err != nil {
		t.Fatalf("value at limit must pass: %v", err)
	}
	if err := ValidateAnswerInput(QuestionSingleLine, atLimit+"x"); err == nil {
		t.Fatalf("value over limit must fail")
	}

	atLimit = strings.Repeat("x", MaxMultiLineLen)
	if err := ValidateAnswerInput(QuestionMultiLine, atLimit); err != nil {
		t.Fatalf("value at limit must pass: %v", err)
	}
	if err := ValidateAnswerInput(QuestionMultiLine, atLimit+"x"); err == nil {
		t.Fatalf("value over limit must fail")
	}

	if err := ValidateAnswerInput(QuestionInteger, "42"); err != nil {
		t.Fatalf("numeric string must pass: %v", err)
	}
	if err := ValidateAnswerInput(QuestionInteger, "forty-two"); err == nil {
		t.Fatalf("non-numeric integer input must fail")
	}
	if err := ValidateAnswerInput(QuestionInteger, ""); err != nil {
		t.Fatalf("empty integer input is allowed: %v", err)
	}

	long := strings.Repeat("y", 10_000)
	if err := ValidateAnswerInput(QuestionCheckbox, long); err != nil {
		t.Fatalf("checkbox values carry no length limit: %v", err)
	}
}

func TestValidateAnswerInputCountsCharactersNotBytes(t *testing.T) {
	// two bytes per rune in UTF-8, so byte counting would reject these
	atLimit := strings.Repeat("й", MaxSingleLineLen)
	if err := ValidateAnswerInput(QuestionSingleLine, atLimit); err != nil {
		t.Fatalf("multibyte value at limit must pass: %v", err)
	}
	if err := ValidateAnswerInput(QuestionSingleLine, atLimit+"й"); err == nil {
		t.Fatalf("multibyte value over limit must fail")
	}

	atLimit = strings.Repeat("ж", MaxMultiLineLen)
	if err := ValidateAnswerInput(QuestionMultiLine, atLimit); err != nil {
		t.Fatalf("multibyte value at limit must pass: %v", err)
	}
	if err := ValidateAnswerInput(QuestionMultiLine, atLimit+"ж"); err == nil {
		t.Fatalf("multibyte value over limit must fail")
	}
}
