package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnresolvedReference, "unknown identifier %q", "P1")

	if err.Code != ErrCodeUnresolvedReference {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnresolvedReference)
	}

	if err.Message != `unknown identifier "P1"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `UNRESOLVED_REFERENCE: unknown identifier "P1"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "create circle")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeMalformedDocument, "x"), ErrCodeMalformedDocument, true},
		{"non-matching code", New(ErrCodeMalformedDocument, "x"), ErrCodeInternal, false},
		{"wrapped error", Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInternal, true},
		{"fmt wrapped", fmt.Errorf("read: %w", New(ErrCodeUnresolvedReference, "x")), ErrCodeUnresolvedReference, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndSubject(t *testing.T) {
	err := fmt.Errorf("constraint: %w", New(ErrCodeUnresolvedReference, "unknown identifier").About("Q"))

	if got := GetCode(err); got != ErrCodeUnresolvedReference {
		t.Errorf("GetCode() = %v", got)
	}
	if got := GetSubject(err); got != "Q" {
		t.Errorf("GetSubject() = %q, want %q", got, "Q")
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidFormat, "invalid format: gif")); got != "invalid format: gif" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestCodeRecoverable(t *testing.T) {
	recoverable := []Code{ErrCodeUnsupportedElement, ErrCodeUnsupportedCoordinates, ErrCodeUnsupportedConstraint}
	for _, c := range recoverable {
		if !c.Recoverable() {
			t.Errorf("%s should be recoverable", c)
		}
	}
	fatal := []Code{ErrCodeUnresolvedReference, ErrCodeMalformedDocument, ErrCodeInternal}
	for _, c := range fatal {
		if c.Recoverable() {
			t.Errorf("%s should not be recoverable", c)
		}
	}
}
