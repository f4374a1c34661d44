package intergeo

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/intergeo/pkg/errors"
)

// Diagnostic is one skipped construct or fatal import error.
type Diagnostic struct {
	Code    errors.Code `json:"code"`
	Subject string      `json:"subject,omitempty"`
	Message string      `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Diagnostics is the append-only log of an import.
type Diagnostics struct {
	entries []Diagnostic
	logger  *log.Logger
}

func newDiagnostics(logger *log.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

// Entries returns the diagnostics in the order they were reported.
func (d *Diagnostics) Entries() []Diagnostic { return d.entries }

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int { return len(d.entries) }

// Count returns the number of diagnostics with the given code.
func (d *Diagnostics) Count(code errors.Code) int {
	n := 0
	for _, e := range d.entries {
		if e.Code == code {
			n++
		}
	}
	return n
}

func (d *Diagnostics) report(err *errors.Error) {
	d.entries = append(d.entries, Diagnostic{Code: err.Code, Subject: err.Subject, Message: err.Message})
	d.logger.Warn(err.Message, "code", err.Code, "fatal", !err.Code.Recoverable())
}

// asError returns err as an *errors.Error, wrapping foreign errors as
// internal.
func asError(err error) *errors.Error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "engine")
}
