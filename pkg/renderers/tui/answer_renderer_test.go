package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string

	inputCfgs  []InputConfig
	selectCfgs []SelectConfig
	multiCfgs  []SelectConfig

	inputPos   int
	selectPos  int
	multiPos   int
	confirmPos int
	textPos    int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	return "", errors.New("no password scripted")
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiCfgs = append(s.multiCfgs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestCollect_SingleLineRejectsOverlongInput(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{strings.Repeat("x", 101), "short answer"},
	}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	questions := model.QuestionList{
		{ID: "q1", Title: "Name", Type: model.QuestionSingleLine},
	}
	answers, err := r.Collect(context.Background(), questions, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if got := answers.Get("q1"); got != "short answer" {
		t.Errorf("answer = %q", got)
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("info messages = %v", driver.infoMessages)
	}
	if driver.infoMessages[0] != "Input cannot exceed 100 characters." {
		t.Errorf("message = %q", driver.infoMessages[0])
	}
	// the re-prompt keeps the previously committed value as the default
	if driver.inputCfgs[1].Default != "" {
		t.Errorf("re-prompt default = %q", driver.inputCfgs[1].Default)
	}
}

func TestCollect_SingleLineAcceptsBoundary(t *testing.T) {
	exact := strings.Repeat("x", 100)
	driver := &stubDriver{inputs: []string{exact}}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	questions := model.QuestionList{
		{ID: "q1", Title: "Name", Type: model.QuestionSingleLine},
	}
	answers, err := r.Collect(context.Background(), questions, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers.Get("q1") != exact {
		t.Error("boundary-length answer rejected")
	}
	if len(driver.infoMessages) != 0 {
		t.Errorf("unexpected messages %v", driver.infoMessages)
	}
}

func TestCollect_MultiLineLimit(t *testing.T) {
	driver := &stubDriver{
		textAreas: []string{strings.Repeat("y", 251), strings.Repeat("y", 250)},
	}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	questions := model.QuestionList{
		{ID: "q1", Title: "Story", Type: model.QuestionMultiLine},
	}
	answers, err := r.Collect(context.Background(), questions, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(answers.Get("q1")) != 250 {
		t.Errorf("answer length = %d", len(answers.Get("q1")))
	}
	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != "Input cannot exceed 250 characters." {
		t.Errorf("messages = %v", driver.infoMessages)
	}
}

func TestCollect_IntegerReasksOnNonNumeric(t *testing.T) {
	driver := &stubDriver{inputs: []string{"abc", "-12"}}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	questions := model.QuestionList{
		{ID: "q1", Title: "Age", Type: model.QuestionInteger},
	}
	answers, err := r.Collect(context.Background(), questions, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := answers.Get("q1"); got != "-12" {
		t.Errorf("answer = %q", got)
	}
	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != "Input must be a whole number." {
		t.Errorf("messages = %v", driver.infoMessages)
	}
}

func TestCollect_IntegerAllowsEmpty(t *testing.T) {
	driver := &stubDriver{inputs: []string{""}}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	questions := model.QuestionList{
		{ID: "q1", Title: "Age", Type: model.QuestionInteger},
	}
	answers, err := r.Collect(context.Background(), questions, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if answers.Get("q1") != "" {
		t.Error("expected empty answer kept")
	}
}

func TestCollect_CheckboxJoinsSelections(t *testing.T) {
	driver := &stubDriver{multiIdx: [][]int{{0, 2}}}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	questions := model.QuestionList{
		{ID: "q1", Title: "Colors", Type: model.QuestionCheckbox, Options: []string{"Red", "Green", "Blue"}},
	}
	answers, err := r.Collect(context.Background(), questions, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := answers.Get("q1"); got != "Red,Blue" {
		t.Errorf("answer = %q", got)
	}
}

func TestCollect_CheckboxPrefillsDefaults(t *testing.T) {
	driver := &stubDriver{multiIdx: [][]int{{1}}}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	questions := model.QuestionList{
		{ID: "q1", Title: "Colors", Type: model.QuestionCheckbox, Options: []string{"Red", "Green", "Blue"}},
	}
	existing := model.AnswerSet{{QuestionID: "q1", Value: "Red, Blue"}}

	answers, err := r.Collect(context.Background(), questions, existing)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]int{0, 2}, driver.multiCfgs[0].Defaults); diff != "" {
		t.Errorf("defaults mismatch (legacy delimiter should still prefill):\n%s", diff)
	}
	if got := answers.Get("q1"); got != "Green" {
		t.Errorf("answer = %q", got)
	}
}

func TestCollect_NonCheckboxNeverReadsOptions(t *testing.T) {
	driver := &stubDriver{inputs: []string{"ok"}}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	// options present on a non-checkbox question must not surface a select
	questions := model.QuestionList{
		{ID: "q1", Title: "Name", Type: model.QuestionSingleLine, Options: []string{"stray"}},
	}
	if _, err := r.Collect(context.Background(), questions, nil); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(driver.multiCfgs) != 0 {
		t.Error("multiselect prompted for a single-line question")
	}
}

func TestCollect_EditPrefillsCommittedValues(t *testing.T) {
	driver := &stubDriver{inputs: []string{"updated"}}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	questions := model.QuestionList{
		{ID: "q1", Title: "Name", Type: model.QuestionSingleLine},
	}
	existing := model.AnswerSet{{QuestionID: "q1", Value: "original"}}

	answers, err := r.Collect(context.Background(), questions, existing)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if driver.inputCfgs[0].Default != "original" {
		t.Errorf("prefill = %q", driver.inputCfgs[0].Default)
	}
	if answers.Get("q1") != "updated" {
		t.Errorf("answer = %q", answers.Get("q1"))
	}
}

func TestCollect_UnknownTypeFails(t *testing.T) {
	r, err := NewAnswerRenderer(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	questions := model.QuestionList{
		{ID: "q1", Title: "Mystery", Type: model.QuestionType("RADIO")},
	}
	if _, err := r.Collect(context.Background(), questions, nil); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestRender_SerializesAnswers(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada"}}
	r, err := NewAnswerRenderer(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	view := render.View{
		Template: &model.Template{
			Questions: model.QuestionList{
				{ID: "q1", Title: "Name", Type: model.QuestionSingleLine},
			},
		},
	}
	out, err := r.Render(context.Background(), view, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded []model.Answer
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := []model.Answer{{QuestionID: "q1", Value: "Ada"}}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("output mismatch:\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Errorf("content type = %q", r.ContentType())
	}
}
