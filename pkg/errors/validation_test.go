package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "A", false},
		{"with digits", "P12", false},
		{"with underscore", "line_1", false},
		{"unicode", "Γ", false},
		{"generated-looking", "intersection_7", false},
		{"inner hash", "A#1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "A\x00B", true},
		{"newline", "A\nB", true},
		{"leading space", " A", true},
		{"trailing space", "A ", true},
		{"reserved prefix", "#point_3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeMalformedDocument) {
				t.Errorf("expected MALFORMED_DOCUMENT, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateDocumentFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"archive", "triangle.i2g", false},
		{"bare xml", "intergeo.xml", false},
		{"upper case extension", "TRIANGLE.I2G", false},

		{"empty", "", true},
		{"with path /", "construction/intergeo.xml", true},
		{"with path \\", "dir\\a.i2g", true},
		{"wrong extension", "notes.txt", true},
		{"no extension", "construction", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	allowed := map[string]bool{"png": true, "svg": true}

	if err := ValidateFormats([]string{"png", "svg"}, allowed); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateFormats(nil, allowed); err == nil {
		t.Error("expected error for empty formats")
	}
	err := ValidateFormats([]string{"png", "gif"}, allowed)
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("expected INVALID_FORMAT, got %v", err)
	}
	if GetSubject(err) != "gif" {
		t.Errorf("subject = %q, want gif", GetSubject(err))
	}
}
