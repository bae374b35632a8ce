package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewTaskValidate(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		input   NewTask
		wantErr bool
	}{
		{"valid", NewTask{Title: "x", DueDate: due, Status: StatusCompleted}, false},
		{"valid default status", NewTask{Title: "x", DueDate: due}, false},
		{"missing title", NewTask{DueDate: due}, true},
		{"whitespace title", NewTask{Title: "  \t ", DueDate: due}, true},
		{"missing due date", NewTask{Title: "x"}, true},
		{"unknown status", NewTask{Title: "x", DueDate: due, Status: "archived"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tc.input
			err := input.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if input.Status == "" {
				t.Fatal("status not defaulted")
			}
		})
	}
}

func TestNewTaskValidate_DefaultsAndTrims(t *testing.T) {
	input := NewTask{Title: "  padded  ", DueDate: time.Now()}
	if err := input.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Title != "padded" {
		t.Fatalf("title not trimmed: %q", input.Title)
	}
	if input.Status != StatusPending {
		t.Fatalf("expected pending default, got %q", input.Status)
	}
}

func TestTaskPatchValidate(t *testing.T) {
	good := "new title"
	blank := "   "
	valid := StatusInProgress
	invalid := TaskStatus("archived")

	cases := []struct {
		name    string
		patch   TaskPatch
		wantErr bool
	}{
		{"empty patch", TaskPatch{}, false},
		{"title only", TaskPatch{Title: &good}, false},
		{"status only", TaskPatch{Status: &valid}, false},
		{"blank title", TaskPatch{Title: &blank}, true},
		{"invalid status", TaskPatch{Status: &invalid}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patch.Validate()
			if tc.wantErr && !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
