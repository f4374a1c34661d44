package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds document identifiers. Intergeo producers use
// short labels; anything longer is almost certainly a corrupted document.
const maxIdentifierLength = 256

// reservedIdentifierPrefix starts the IDs a host engine generates for
// anonymous elements.
const reservedIdentifierPrefix = "#"

// ValidateIdentifier validates a document-level element identifier.
//
// Identifiers are used verbatim as host element names and as node IDs in
// the construction graph, so the rules are conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No surrounding whitespace
//   - Maximum length of 256 characters
//   - No leading "#", which is reserved for engine-generated IDs
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeMalformedDocument, "identifier cannot be empty")
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeMalformedDocument, "identifier too long (max %d characters)", maxIdentifierLength).About(id[:32])
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedDocument, "identifier contains invalid control characters").About(id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeMalformedDocument, "identifier %q has surrounding whitespace", id).About(id)
	}

	if strings.HasPrefix(id, reservedIdentifierPrefix) {
		return New(ErrCodeMalformedDocument, "identifier %q uses the reserved prefix %q", id, reservedIdentifierPrefix).About(id)
	}

	return nil
}

// documentExtensions lists the accepted construction file extensions.
var documentExtensions = map[string]bool{
	".i2g": true, // zipped Intergeo archive
	".xml": true, // bare intergeo.xml
}

// ValidateDocumentFilename validates an uploaded or command-line document name.
// It ensures the filename is a simple basename with a known extension.
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "document filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "document filename cannot contain path separators")
	}

	if strings.Contains(filename, "\x00") {
		return New(ErrCodeInvalidPath, "document filename contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !documentExtensions[ext] {
		return New(ErrCodeInvalidPath, "unsupported document extension %q (want .i2g or .xml)", ext)
	}

	return nil
}

// ValidateFormats checks requested output formats against the allowed set.
func ValidateFormats(formats []string, allowed map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !allowed[f] {
			return New(ErrCodeInvalidFormat, "invalid format: %s", f).About(f)
		}
	}
	return nil
}
