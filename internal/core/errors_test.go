package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"conflict", &ConflictError{Name: "Cable"}, "DB001"},
		{"transient", &TransientError{Err: errors.New("connection refused")}, "DB002"},
		{"wrapped transient", fmt.Errorf("import: %w", &TransientError{Err: errors.New("reset")}), "DB002"},
		{"no change", ErrNoChange, "DB003"},
		{"validation", &ValidationError{Field: "price", Message: "must be an integer"}, "VAL001"},
		{"not found", ErrNotFound, "INV001"},
		{"wrapped not found", fmt.Errorf("update: %w", ErrNotFound), "INV001"},
		{"empty dataset", ErrEmptyDataset, "EXP001"},
		{"unknown", errors.New("disk exploded"), "SYS001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			if msg.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, msg.Code, tt.wantCode)
			}
			if msg.Message == "" {
				t.Error("empty user message")
			}
		})
	}
}

func TestMapError_DoesNotLeakInternals(t *testing.T) {
	msg := MapError(errors.New("pq: password authentication failed for user admin"))
	if msg.Code != "SYS001" {
		t.Errorf("code = %q, want SYS001", msg.Code)
	}
	if msg.Message != "An unexpected error occurred" {
		t.Errorf("message leaks internals: %q", msg.Message)
	}
}

func TestIsTransient(t *testing.T) {
	if IsTransient(errors.New("plain")) {
		t.Error("plain error reported transient")
	}
	if !IsTransient(&TransientError{Err: errors.New("down")}) {
		t.Error("TransientError not reported transient")
	}
	wrapped := fmt.Errorf("lookup: %w", &TransientError{Err: errors.New("down")})
	if !IsTransient(wrapped) {
		t.Error("wrapped TransientError not reported transient")
	}
}

func TestConflictErrorMessage(t *testing.T) {
	err := &ConflictError{Name: "USB Cable"}
	if err.Error() != `product name "USB Cable" already exists` {
		t.Errorf("Error() = %q", err.Error())
	}
}
