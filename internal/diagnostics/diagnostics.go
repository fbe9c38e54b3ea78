// Package diagnostics collects the warnings, errors, and fatal assertions a
// translation run can raise, keyed by the source position that triggered
// them.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/pyrrust/internal/token"
)

// Severity classifies a DiagnosticError.
type Severity int

const (
	// SeverityWarning marks a recoverable annotation/method-resolution
	// issue: translation proceeds, substituting Unknown or a best guess.
	SeverityWarning Severity = iota
	// SeverityError marks a translation that cannot proceed for this
	// function/class but does not abort the whole run.
	SeverityError
	// SeverityFatal marks an internal assertion failure (an A-* code),
	// which stops the pipeline.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityFatal:
		return "Fatal"
	default:
		return "unknown"
	}
}

// Error codes. Grouped by pass: W-ANN-* (annotation warnings), W-MET-*
// (method-resolution warnings), E-CMP-* (comprehension restrictions),
// E-ZIP-* (zip/range argument-count mismatches), E-TYP-* (type merge/
// coercion failures), A-* (internal assertion failures, always a bug).
const (
	WarnAnnMissing     = "W-ANN-001" // parameter or return left unannotated
	WarnAnnUnresolved  = "W-ANN-002" // annotation names an unknown class
	WarnMetUnknown     = "W-MET-001" // no catalog entry for (type, method)
	WarnMetAmbiguous   = "W-MET-002" // method resolves to more than one entry
	ErrCmpMultiGen     = "E-CMP-001" // comprehension with more than one generator
	ErrCmpNestedIf     = "E-CMP-002" // comprehension with unsupported filter shape
	ErrZipArity        = "E-ZIP-001" // zip() called with other than 2 iterables
	ErrRangeArity      = "E-ZIP-002" // range() called with an unsupported arity
	ErrTypMerge        = "E-TYP-001" // two branches disagree on a variable's type
	ErrTypUnknownLeaks = "E-TYP-002" // Unknown reached a Target declaration
	AssertInternal     = "A-001"     // internal invariant violated; always a bug
)

// DiagnosticError is one reported condition, attached to the token that
// triggered it.
type DiagnosticError struct {
	Code     string
	Severity Severity
	Token    token.Token
	Message  string
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s [%s]", e.Severity, e.Token.Line, e.Token.Column, e.Message, e.Code)
}

// severityForCode infers a DiagnosticError's severity from its code prefix.
func severityForCode(code string) Severity {
	switch {
	case len(code) >= 1 && code[0] == 'W':
		return SeverityWarning
	case len(code) >= 1 && code[0] == 'A':
		return SeverityFatal
	default:
		return SeverityError
	}
}

// NewError builds a DiagnosticError, formatting Message with fmt.Sprintf
// when args are supplied.
func NewError(code string, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:     code,
		Severity: severityForCode(code),
		Token:    tok,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewWarning is NewError with the severity forced to SeverityWarning,
// regardless of the code prefix; used for soft diagnostics raised outside
// the W-* code ranges (e.g. a config override silently adjusting a type).
func NewWarning(code string, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	e := NewError(code, tok, format, args...)
	e.Severity = SeverityWarning
	return e
}

// Collector deduplicates DiagnosticErrors by "line:col:code" and exposes
// them in insertion order.
type Collector struct {
	seen map[string]*DiagnosticError
	keys []string
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]*DiagnosticError)}
}

// Add records err, ignoring a duplicate (same line, column, and code).
func (c *Collector) Add(err *DiagnosticError) {
	if err == nil {
		return
	}
	key := fmt.Sprintf("%d:%d:%s", err.Token.Line, err.Token.Column, err.Code)
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = err
	c.keys = append(c.keys, key)
}

// AddAll records every element of errs.
func (c *Collector) AddAll(errs []*DiagnosticError) {
	for _, e := range errs {
		c.Add(e)
	}
}

// HasFatal reports whether any collected diagnostic is SeverityFatal.
func (c *Collector) HasFatal() bool {
	for _, k := range c.keys {
		if c.seen[k].Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// HasErrors reports whether any collected diagnostic is SeverityError or
// worse.
func (c *Collector) HasErrors() bool {
	for _, k := range c.keys {
		if c.seen[k].Severity != SeverityWarning {
			return true
		}
	}
	return false
}

// All returns every collected diagnostic, in insertion order.
func (c *Collector) All() []*DiagnosticError {
	out := make([]*DiagnosticError, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.seen[k])
	}
	return out
}
