// Package diag defines the structured diagnostics produced by every
// component that can fail: the parser (which also reports the scanner's
// lexical errors), the evaluator, and JSON conversion. A Diagnostic carries a line/column-annotated span and renders
// as a single line naming that span; it does not quote the source text.
// Diagnostics are organized into the taxonomy HCL itself needs.
package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/hcl/token"
)

// Severity distinguishes fatal diagnostics from advisory ones. The
// evaluator and parser only ever produce SeverityError; SeverityWarning
// diagnostics are built only through Warning.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "error"
}

// Kind is the closed taxonomy of failure categories a Diagnostic can carry.
type Kind uint8

const (
	KindLexical Kind = iota
	KindParse
	KindResolution
	KindType
	KindRange
	KindSemantic
	KindSerialization
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical error"
	case KindParse:
		return "parse error"
	case KindResolution:
		return "resolution error"
	case KindType:
		return "type error"
	case KindRange:
		return "range error"
	case KindSemantic:
		return "semantic error"
	case KindSerialization:
		return "serialization error"
	default:
		return "error"
	}
}

// Diagnostic is a single structured failure: a kind, a short summary, an
// optional longer detail, and the source range it is about.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Summary  string
	Detail   string
	Subject  token.Range
}

// Error implements the error interface by rendering a single line,
// "kind: summary[: detail][ (at range)]", without source text.
func (d *Diagnostic) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s", d.Kind, d.Summary)

	if d.Detail != "" {
		fmt.Fprintf(&b, ": %s", d.Detail)
	}

	if d.Subject.Start.IsValid() {
		fmt.Fprintf(&b, " (at %s)", d.Subject)
	}

	return b.String()
}

// New constructs a Diagnostic at SeverityError.
func New(kind Kind, subject token.Range, summary string, detail ...string) *Diagnostic {
	d := &Diagnostic{
		Severity: SeverityError,
		Kind:     kind,
		Summary:  summary,
		Subject:  subject,
	}

	if len(detail) > 0 {
		d.Detail = strings.Join(detail, " ")
	}

	return d
}

// Warning constructs a Diagnostic at SeverityWarning.
func Warning(kind Kind, subject token.Range, summary string, detail ...string) *Diagnostic {
	d := New(kind, subject, summary, detail...)
	d.Severity = SeverityWarning

	return d
}

// Diagnostics is an ordered collection of Diagnostic values. The zero value
// is an empty, usable Diagnostics.
type Diagnostics []*Diagnostic

// Append adds more to the receiver and returns the result.
func (ds Diagnostics) Append(more ...*Diagnostic) Diagnostics {
	return append(ds, more...)
}

// HasErrors reports whether any diagnostic in ds is at SeverityError.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Errs filters ds down to only the SeverityError diagnostics.
func (ds Diagnostics) Errs() Diagnostics {
	out := make(Diagnostics, 0, len(ds))

	for _, d := range ds {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}

	return out
}

// Error implements the error interface. A nil or empty Diagnostics is never
// an error condition by itself; callers should check HasErrors first. When
// there are errors, Error renders the first one in detail and summarizes
// how many more followed.
func (ds Diagnostics) Error() string {
	errs := ds.Errs()

	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	default:
		return errs[0].Error() + " (and " + strconv.Itoa(len(errs)-1) + " more)"
	}
}

// AsError returns ds as an error if it HasErrors, or nil otherwise. This is
// the idiomatic way for a function internally tracking Diagnostics to
// satisfy a plain `error` return type at its API boundary.
func (ds Diagnostics) AsError() error {
	if !ds.HasErrors() {
		return nil
	}

	return ds
}
