// Package model defines the domain entities shared across the client:
// templates with their ordered question lists, filled forms and their answer
// sets, users, tags and comments. The question type set is closed
// (SINGLE_LINE, MULTI_LINE, INTEGER, CHECKBOX) and answer values are plain
// strings; checkbox selections travel as a single comma-joined string, which
// SplitSelections and JoinSelections convert to and from slices. Input length
// and format rules live in ValidateAnswerInput so every surface rejects the
// same values with the same wording.
package model
