package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewQuestionDefaults(t *testing.T) {
	q := NewQuestion()
	if q.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if q.Type != QuestionSingleLine {
		t.Fatalf("expected default type %s, got %s", QuestionSingleLine, q.Type)
	}
	if q.Title != "" || q.Description != "" {
		t.Fatalf("expected empty title and description")
	}
	if q.DisplayedInTable {
		t.Fatalf("expected displayedInTable to default to false")
	}
	if len(q.Options) != 0 {
		t.Fatalf("expected no options, got %v", q.Options)
	}
}

func TestNewQuestionIDsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewQuestion().ID
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d questions", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestSetFieldTypeSwitchClearsOptions(t *testing.T) {
	list := QuestionList{{ID: "q1", Type: QuestionCheckbox, Options: []string{"A", "B"}}}

	if err := list.SetField("q1", FieldType, QuestionSingleLine); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if got := list[0].Options; len(got) != 0 {
		t.Fatalf("expected options cleared on type switch, got %v", got)
	}

	if err := list.SetField("q1", FieldType, QuestionCheckbox); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if len(list[0].Options) != 0 {
		t.Fatalf("switching back must not resurrect options")
	}
}

func TestSetFieldRejectsUnknownType(t *testing.T) {
	list := QuestionList{{ID: "q1", Type: QuestionSingleLine}}
	if err := list.SetField("q1", FieldType, "RADIO"); err == nil {
		t.Fatalf("expected error for unknown question type")
	}
	if list[0].Type != QuestionSingleLine {
		t.Fatalf("failed set must leave type unchanged")
	}
}

func TestOptionOperations(t *testing.T) {
	list := QuestionList{{ID: "q1", Type: QuestionCheckbox, Options: []string{}}}

	if err := list.AddOption("q1"); err != nil {
		t.Fatalf("add option: %v", err)
	}
	if err := list.SetOption("q1", 0, "Red"); err != nil {
		t.Fatalf("set option: %v", err)
	}
	if err := list.AddOption("q1"); err != nil {
		t.Fatalf("add option: %v", err)
	}
	if diff := cmp.Diff([]string{"Red", ""}, list[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	if err := list.RemoveOption("q1", 5); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if diff := cmp.Diff([]string{"Red", ""}, list[0].Options); diff != "" {
		t.Fatalf("failed remove must not mutate (-want +got):\n%s", diff)
	}

	if err := list.RemoveOption("q1", 1); err != nil {
		t.Fatalf("remove option: %v", err)
	}
	if diff := cmp.Diff([]string{"Red"}, list[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionListRemoveAndMove(t *testing.T) {
	list := QuestionList{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	if !list.Move("c", -2) {
		t.Fatalf("expected move to succeed")
	}
	if got := []string{list[0].ID, list[1].ID, list[2].ID}; got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("unexpected order after move: %v", got)
	}

	if list.Remove("missing") {
		t.Fatalf("removing an unknown id must report false")
	}
	if !list.Remove("a") {
		t.Fatalf("expected removal of existing question")
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(list))
	}
}
